package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

func share(id, amount string) *api.Share {
	return &api.Share{ParticipantID: id, Amount: dec(amount)}
}

func addPurchase(t *testing.T, env *testEnv, req *api.AddPurchaseRequest) *api.Purchase {
	t.Helper()
	resp, err := env.ledger.AddPurchase(context.Background(), connect.NewRequest(req))
	require.NoError(t, err, "AddPurchase(%s) failed", req.Title)
	return resp.Msg.Purchase
}

func balancesOf(t *testing.T, env *testEnv, tripID string) map[string]decimal.Decimal {
	t.Helper()
	resp, err := env.ledger.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{TripID: tripID}))
	require.NoError(t, err, "GetBalances failed")
	out := make(map[string]decimal.Decimal, len(resp.Msg.Balances))
	for _, b := range resp.Msg.Balances {
		out[b.ParticipantID] = b.Net
	}
	return out
}

func settlementsOf(t *testing.T, env *testEnv, tripID string) []*api.Settlement {
	t.Helper()
	resp, err := env.ledger.SimplifyDebts(context.Background(), connect.NewRequest(&api.SimplifyDebtsRequest{TripID: tripID}))
	require.NoError(t, err, "SimplifyDebts failed")
	return resp.Msg.Settlements
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "amount = %s, want %s %v", got, want, msgAndArgs)
}

func assertSettlement(t *testing.T, got *api.Settlement, from, to, amount string) {
	t.Helper()
	assert.Equal(t, from, got.From)
	assert.Equal(t, to, got.To)
	assertAmount(t, amount, got.Amount, from, "->", to)
}

func TestAddPurchase_EqualSplitDefault(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Hostel", bobID, carolID)

	p := addPurchase(t, env, &api.AddPurchaseRequest{
		TripID:      trip.ID,
		Title:       "Dinner",
		TotalAmount: dec("100"),
		PaidBy:      []*api.Share{share(aliceID, "100")},
	})

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	require.Len(t, p.SplitBetween, 3)
	for i, want := range []string{"33.34", "33.33", "33.33"} {
		assertAmount(t, want, p.SplitBetween[i].Amount, "share", i)
	}
}

func TestAddPurchase_DropsZeroShares(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Beach", bobID, carolID)

	p := addPurchase(t, env, &api.AddPurchaseRequest{
		TripID:       trip.ID,
		Title:        "Surfboards",
		TotalAmount:  dec("60"),
		PaidBy:       []*api.Share{share(aliceID, "60"), share(bobID, "0")},
		SplitBetween: []*api.Share{share(aliceID, "0"), share(bobID, "30"), share(carolID, "30")},
	})

	assert.Len(t, p.PaidBy, 1)
	assert.Len(t, p.SplitBetween, 2)
}

func TestAddPurchase_Validation(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Validation", bobID)

	tests := []struct {
		name string
		req  *api.AddPurchaseRequest
		code connect.Code
	}{
		{
			name: "missing title",
			req:  &api.AddPurchaseRequest{TripID: trip.ID, TotalAmount: dec("10"), PaidBy: []*api.Share{share(aliceID, "10")}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero total",
			req:  &api.AddPurchaseRequest{TripID: trip.ID, Title: "Free", TotalAmount: dec("0"), PaidBy: []*api.Share{share(aliceID, "0")}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "sub-cent total",
			req:  &api.AddPurchaseRequest{TripID: trip.ID, Title: "Gum", TotalAmount: dec("0.004"), PaidBy: []*api.Share{share(aliceID, "0.004")}},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "no payer",
			req:  &api.AddPurchaseRequest{TripID: trip.ID, Title: "Taxi", TotalAmount: dec("10")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "payer sum mismatch",
			req: &api.AddPurchaseRequest{
				TripID: trip.ID, Title: "Taxi", TotalAmount: dec("10"),
				PaidBy: []*api.Share{share(aliceID, "9.98")},
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "split sum mismatch",
			req: &api.AddPurchaseRequest{
				TripID: trip.ID, Title: "Taxi", TotalAmount: dec("10"),
				PaidBy:       []*api.Share{share(aliceID, "10")},
				SplitBetween: []*api.Share{share(aliceID, "5"), share(bobID, "4")},
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "non-member",
			req: &api.AddPurchaseRequest{
				TripID: trip.ID, Title: "Taxi", TotalAmount: dec("10"),
				PaidBy:       []*api.Share{share(carolID, "10")},
				SplitBetween: []*api.Share{share(aliceID, "5"), share(bobID, "5")},
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown trip",
			req: &api.AddPurchaseRequest{
				TripID: "nonexistent-id", Title: "Taxi", TotalAmount: dec("10"),
				PaidBy: []*api.Share{share(aliceID, "10")},
			},
			code: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.ledger.AddPurchase(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}

	t.Run("payer sum within tolerance", func(t *testing.T) {
		addPurchase(t, env, &api.AddPurchaseRequest{
			TripID: trip.ID, Title: "Rounded", TotalAmount: dec("10"),
			PaidBy:       []*api.Share{share(aliceID, "9.99")},
			SplitBetween: []*api.Share{share(aliceID, "5"), share(bobID, "5")},
		})
	})
}

// Scenario A: one purchase paid by A, split equally between A, B and C.
func TestSimplifyDebts_SinglePayer(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Scenario A", bobID, carolID)

	addPurchase(t, env, &api.AddPurchaseRequest{
		TripID:       trip.ID,
		Title:        "Hotel",
		TotalAmount:  dec("150"),
		PaidBy:       []*api.Share{share(aliceID, "150")},
		SplitBetween: []*api.Share{share(aliceID, "50"), share(bobID, "50"), share(carolID, "50")},
	})

	balances := balancesOf(t, env, trip.ID)
	for id, want := range map[string]string{aliceID: "100", bobID: "-50", carolID: "-50"} {
		assertAmount(t, want, balances[id], "balance", id)
	}

	settlements := settlementsOf(t, env, trip.ID)
	require.Len(t, settlements, 2)
	assertSettlement(t, settlements[0], bobID, aliceID, "50")
	assertSettlement(t, settlements[1], carolID, aliceID, "50")
	assert.Equal(t, "$50.00", settlements[0].Formatted)
}

// Scenario B: the payer does not share the cost.
func TestSimplifyDebts_PayerExcluded(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Scenario B", bobID, carolID)

	addPurchase(t, env, &api.AddPurchaseRequest{
		TripID:       trip.ID,
		Title:        "Tickets",
		TotalAmount:  dec("150"),
		PaidBy:       []*api.Share{share(aliceID, "150")},
		SplitBetween: []*api.Share{share(bobID, "75"), share(carolID, "75")},
	})

	settlements := settlementsOf(t, env, trip.ID)
	require.Len(t, settlements, 2)
	assertSettlement(t, settlements[0], bobID, aliceID, "75")
	assertSettlement(t, settlements[1], carolID, aliceID, "75")
}

// Scenarios C and D: reciprocal purchases and a three-way cycle net to zero.
func TestSimplifyDebts_Netting(t *testing.T) {
	t.Run("reciprocal", func(t *testing.T) {
		env := setupTestServer(t)
		trip := createTrip(t, env, "Scenario C", bobID)

		addPurchase(t, env, &api.AddPurchaseRequest{
			TripID: trip.ID, Title: "Lunch", TotalAmount: dec("40"),
			PaidBy:       []*api.Share{share(aliceID, "40")},
			SplitBetween: []*api.Share{share(bobID, "40")},
		})
		addPurchase(t, env, &api.AddPurchaseRequest{
			TripID: trip.ID, Title: "Dinner", TotalAmount: dec("40"),
			PaidBy:       []*api.Share{share(bobID, "40")},
			SplitBetween: []*api.Share{share(aliceID, "40")},
		})

		assert.Empty(t, settlementsOf(t, env, trip.ID))
	})

	t.Run("cycle", func(t *testing.T) {
		env := setupTestServer(t)
		trip := createTrip(t, env, "Scenario D", bobID, carolID)

		pairs := [][2]string{{bobID, aliceID}, {carolID, bobID}, {aliceID, carolID}}
		for _, p := range pairs {
			addPurchase(t, env, &api.AddPurchaseRequest{
				TripID: trip.ID, Title: "IOU", TotalAmount: dec("10"),
				PaidBy:       []*api.Share{share(p[0], "10")},
				SplitBetween: []*api.Share{share(p[1], "10")},
			})
		}

		for id, b := range balancesOf(t, env, trip.ID) {
			assertAmount(t, "0", b, "balance", id)
		}
		assert.Empty(t, settlementsOf(t, env, trip.ID))
	})
}

func TestGetBalances(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Summary", bobID, carolID)

	addPurchase(t, env, &api.AddPurchaseRequest{
		TripID:       trip.ID,
		Title:        "Groceries",
		TotalAmount:  dec("90"),
		PaidBy:       []*api.Share{share(aliceID, "60"), share(bobID, "30")},
		SplitBetween: []*api.Share{share(aliceID, "30"), share(bobID, "30"), share(carolID, "30")},
	})

	resp, err := env.ledger.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{TripID: trip.ID}))
	require.NoError(t, err, "GetBalances failed")
	assert.Equal(t, "USD", resp.Msg.Currency)
	require.Len(t, resp.Msg.Balances, 3)

	alice := resp.Msg.Balances[0]
	assert.Equal(t, aliceID, alice.ParticipantID, "expected Alice first")
	assert.Equal(t, "Alice", alice.DisplayName)
	assertAmount(t, "60", alice.TotalPaid, "paid")
	assertAmount(t, "30", alice.TotalOwed, "owed")
	assertAmount(t, "30", alice.Net, "net")
	assert.Equal(t, "+$30.00", alice.Formatted)

	carol := resp.Msg.Balances[2]
	assertAmount(t, "-30", carol.Net)
	assert.Equal(t, "-$30.00", carol.Formatted)
}

func TestGetBalances_NewMemberStartsAtZero(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Late joiner", bobID)

	addPurchase(t, env, &api.AddPurchaseRequest{
		TripID: trip.ID, Title: "Fuel", TotalAmount: dec("20"),
		PaidBy: []*api.Share{share(aliceID, "20")},
	})
	_, err := env.trips.JoinTrip(context.Background(), as(carolID, &api.JoinTripRequest{Code: trip.Code}))
	require.NoError(t, err, "JoinTrip failed")

	balances := balancesOf(t, env, trip.ID)
	require.Len(t, balances, 3, "expected an entry for every participant")
	assertAmount(t, "0", balances[carolID], "Carol")
}

func TestRemovePurchase(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := createTrip(t, env, "Removal", bobID)

	keep := addPurchase(t, env, &api.AddPurchaseRequest{
		TripID: trip.ID, Title: "Keep", TotalAmount: dec("10"),
		PaidBy: []*api.Share{share(aliceID, "10")},
	})
	drop := addPurchase(t, env, &api.AddPurchaseRequest{
		TripID: trip.ID, Title: "Drop", TotalAmount: dec("50"),
		PaidBy: []*api.Share{share(bobID, "50")},
	})

	_, err := env.ledger.RemovePurchase(ctx, connect.NewRequest(&api.RemovePurchaseRequest{PurchaseID: drop.ID}))
	require.NoError(t, err, "RemovePurchase failed")

	listResp, err := env.ledger.ListPurchases(ctx, connect.NewRequest(&api.ListPurchasesRequest{TripID: trip.ID}))
	require.NoError(t, err, "ListPurchases failed")
	require.Len(t, listResp.Msg.Purchases, 1)
	assert.Equal(t, keep.ID, listResp.Msg.Purchases[0].ID)

	balances := balancesOf(t, env, trip.ID)
	assertAmount(t, "5", balances[aliceID], "Alice")
	assertAmount(t, "-5", balances[bobID], "Bob")

	_, err = env.ledger.RemovePurchase(ctx, connect.NewRequest(&api.RemovePurchaseRequest{PurchaseID: drop.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListPurchases_Order(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env, "Order", bobID)

	titles := []string{"Breakfast", "Lunch", "Dinner"}
	for _, title := range titles {
		addPurchase(t, env, &api.AddPurchaseRequest{
			TripID: trip.ID, Title: title, TotalAmount: dec("12.50"),
			PaidBy: []*api.Share{share(bobID, "12.50")},
		})
	}

	resp, err := env.ledger.ListPurchases(context.Background(), connect.NewRequest(&api.ListPurchasesRequest{TripID: trip.ID}))
	require.NoError(t, err, "ListPurchases failed")
	got := make([]string, len(resp.Msg.Purchases))
	for i, p := range resp.Msg.Purchases {
		got[i] = p.Title
	}
	assert.Equal(t, titles, got)

	_, err = env.ledger.ListPurchases(context.Background(), connect.NewRequest(&api.ListPurchasesRequest{TripID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestPreviewShares(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	trip := createTrip(t, env, "Preview", bobID, carolID)

	t.Run("equal split over trip", func(t *testing.T) {
		resp, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{
			TripID:      trip.ID,
			TotalAmount: dec("120.50"),
		}))
		require.NoError(t, err, "PreviewShares failed")
		want := []string{"40.17", "40.17", "40.16"}
		require.Len(t, resp.Msg.Shares, len(want))
		for i, s := range resp.Msg.Shares {
			assertAmount(t, want[i], s.Amount, "share", i)
		}
	})

	t.Run("percentages", func(t *testing.T) {
		resp, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{
			TripID:      trip.ID,
			TotalAmount: dec("200"),
			Percentages: map[string]decimal.Decimal{aliceID: dec("50"), bobID: dec("30"), carolID: dec("20")},
		}))
		require.NoError(t, err, "PreviewShares failed")
		want := map[string]string{aliceID: "100", bobID: "60", carolID: "40"}
		require.Len(t, resp.Msg.Shares, len(want))
		for _, s := range resp.Msg.Shares {
			assertAmount(t, want[s.ParticipantID], s.Amount, s.ParticipantID)
		}
	})

	t.Run("percentages must total 100", func(t *testing.T) {
		_, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{
			TotalAmount: dec("200"),
			Percentages: map[string]decimal.Decimal{aliceID: dec("50"), bobID: dec("30")},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("sub-cent total", func(t *testing.T) {
		_, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{
			TotalAmount:    dec("0.004"),
			ParticipantIDs: []string{aliceID, bobID},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("non-member", func(t *testing.T) {
		_, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{
			TripID:         trip.ID,
			TotalAmount:    dec("10"),
			ParticipantIDs: []string{aliceID, "stranger"},
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("no trip and no ids", func(t *testing.T) {
		_, err := env.ledger.PreviewShares(ctx, connect.NewRequest(&api.PreviewSharesRequest{TotalAmount: dec("10")}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}
