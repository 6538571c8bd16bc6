package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/dnnywang/shareable-split-saga/internal/calculator"
	"github.com/dnnywang/shareable-split-saga/internal/metrics"
	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/internal/storage"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
	"github.com/dnnywang/shareable-split-saga/pkg/currency"
)

// LedgerService implements the Connect LedgerService. Balances and
// settlements are recomputed from the stored purchases on every call.
type LedgerService struct {
	store     storage.Store
	formatter *currency.Formatter
	metrics   *metrics.Metrics
}

// NewLedgerService creates a LedgerService. m may be nil.
func NewLedgerService(store storage.Store, formatter *currency.Formatter, m *metrics.Metrics) *LedgerService {
	return &LedgerService{store: store, formatter: formatter, metrics: m}
}

// AddPurchase validates and records a purchase. An empty split is filled with
// an equal split between all trip participants, and zero shares are dropped.
func (s *LedgerService) AddPurchase(ctx context.Context, req *connect.Request[api.AddPurchaseRequest]) (*connect.Response[api.AddPurchaseResponse], error) {
	slog.Info("AddPurchase request received",
		"trip_id", req.Msg.TripID,
		"title", req.Msg.Title,
		"total", req.Msg.TotalAmount,
		"payers", len(req.Msg.PaidBy),
		"split_count", len(req.Msg.SplitBetween),
	)

	if req.Msg.TripID == "" {
		return nil, connectError(errMissingID)
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("AddPurchase failed to load trip", "trip_id", req.Msg.TripID, "error", err)
		return nil, connectError(err)
	}

	split := calculator.DropZeroShares(fromAPIShares(req.Msg.SplitBetween))
	if len(req.Msg.SplitBetween) == 0 && req.Msg.TotalAmount.IsPositive() {
		split, err = calculator.EqualShares(req.Msg.TotalAmount, models.ParticipantIDs(trip.Participants))
		if err != nil {
			return nil, connectError(err)
		}
	}

	purchase := &models.Purchase{
		TripID:       trip.ID,
		Title:        strings.TrimSpace(req.Msg.Title),
		TotalAmount:  req.Msg.TotalAmount,
		PaidBy:       calculator.DropZeroShares(fromAPIShares(req.Msg.PaidBy)),
		SplitBetween: split,
	}

	if err := calculator.ValidatePurchase(*purchase, trip.Participants); err != nil {
		slog.Warn("AddPurchase validation failed", "trip_id", trip.ID, "error", err)
		return nil, connectError(err)
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		slog.Error("AddPurchase failed", "error", err)
		return nil, connectError(err)
	}
	s.metrics.PurchaseAdded()

	slog.Info("Purchase recorded", "trip_id", trip.ID, "purchase_id", purchase.ID)

	return connect.NewResponse(&api.AddPurchaseResponse{Purchase: toAPIPurchase(purchase)}), nil
}

// RemovePurchase deletes a purchase wholesale.
func (s *LedgerService) RemovePurchase(ctx context.Context, req *connect.Request[api.RemovePurchaseRequest]) (*connect.Response[api.RemovePurchaseResponse], error) {
	slog.Info("RemovePurchase request received", "purchase_id", req.Msg.PurchaseID)

	if req.Msg.PurchaseID == "" {
		return nil, connectError(errMissingID)
	}

	if err := s.store.DeletePurchase(ctx, req.Msg.PurchaseID); err != nil {
		slog.Error("RemovePurchase failed", "purchase_id", req.Msg.PurchaseID, "error", err)
		return nil, connectError(err)
	}
	s.metrics.PurchaseRemoved()

	slog.Info("Purchase removed", "purchase_id", req.Msg.PurchaseID)
	return connect.NewResponse(&api.RemovePurchaseResponse{}), nil
}

// ListPurchases returns a trip's purchases in the order they were recorded.
func (s *LedgerService) ListPurchases(ctx context.Context, req *connect.Request[api.ListPurchasesRequest]) (*connect.Response[api.ListPurchasesResponse], error) {
	slog.Info("ListPurchases request received", "trip_id", req.Msg.TripID)

	_, purchases, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.Purchase, len(purchases))
	for i := range purchases {
		out[i] = toAPIPurchase(&purchases[i])
	}

	return connect.NewResponse(&api.ListPurchasesResponse{Purchases: out}), nil
}

// GetBalances returns every participant's paid, owed and net amounts.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "trip_id", req.Msg.TripID)

	trip, purchases, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, connectError(err)
	}

	summary, err := calculator.Summarize(trip.Participants, purchases)
	if err != nil {
		slog.Error("GetBalances found inconsistent ledger", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	balances := make([]*api.MemberBalance, len(summary))
	for i, m := range summary {
		p, _ := models.FindParticipant(trip.Participants, m.ParticipantID)
		balances[i] = &api.MemberBalance{
			ParticipantID: m.ParticipantID,
			DisplayName:   p.DisplayName,
			TotalPaid:     m.TotalPaid,
			TotalOwed:     m.TotalOwed,
			Net:           m.Net,
			Formatted:     s.formatter.Signed(m.Net),
		}
	}

	slog.Info("GetBalances successful", "trip_id", trip.ID, "members", len(balances), "purchases", len(purchases))

	return connect.NewResponse(&api.GetBalancesResponse{
		Balances: balances,
		Currency: s.formatter.Code(),
	}), nil
}

// SimplifyDebts returns the suggested payments that settle the trip.
func (s *LedgerService) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	slog.Info("SimplifyDebts request received", "trip_id", req.Msg.TripID)

	trip, purchases, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, connectError(err)
	}

	balances, err := calculator.ComputeBalances(trip.Participants, purchases)
	if err != nil {
		slog.Error("SimplifyDebts found inconsistent ledger", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	settlements := calculator.Simplify(balances)
	if rest := calculator.Apply(balances, settlements); !rest.Settled() {
		slog.Warn("Settlements leave residual balances", "trip_id", trip.ID, "total", rest.Total())
	}
	s.metrics.ObserveSettlements(len(settlements))

	out := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = &api.Settlement{
			From:      st.From,
			To:        st.To,
			Amount:    st.Amount,
			Formatted: s.formatter.Format(st.Amount),
		}
	}

	slog.Info("SimplifyDebts successful", "trip_id", trip.ID, "settlements", len(out))

	return connect.NewResponse(&api.SimplifyDebtsResponse{
		Settlements: out,
		Currency:    s.formatter.Code(),
	}), nil
}

// PreviewShares computes shares for a total without recording anything.
func (s *LedgerService) PreviewShares(ctx context.Context, req *connect.Request[api.PreviewSharesRequest]) (*connect.Response[api.PreviewSharesResponse], error) {
	var members []models.Participant
	if req.Msg.TripID != "" {
		trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
		if err != nil {
			return nil, connectError(err)
		}
		members = trip.Participants
	}

	var (
		shares []models.Share
		err    error
	)
	if len(req.Msg.Percentages) > 0 {
		shares, err = calculator.PercentShares(req.Msg.TotalAmount, req.Msg.Percentages)
	} else {
		ids := req.Msg.ParticipantIDs
		if len(ids) == 0 {
			ids = models.ParticipantIDs(members)
		}
		shares, err = calculator.EqualShares(req.Msg.TotalAmount, ids)
	}
	if err != nil {
		return nil, connectError(err)
	}

	if members != nil {
		for _, sh := range shares {
			if _, ok := models.FindParticipant(members, sh.ParticipantID); !ok {
				return nil, connectError(fmt.Errorf("%w: %s", calculator.ErrReferentialIntegrity, sh.ParticipantID))
			}
		}
	}

	return connect.NewResponse(&api.PreviewSharesResponse{Shares: toAPIShares(shares)}), nil
}

// loadLedger fetches a trip and its purchases.
func (s *LedgerService) loadLedger(ctx context.Context, tripID string) (*models.Trip, []models.Purchase, error) {
	if tripID == "" {
		return nil, nil, errMissingID
	}
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Error("Failed to load trip", "trip_id", tripID, "error", err)
		return nil, nil, err
	}
	purchases, err := s.store.ListPurchasesByTrip(ctx, tripID)
	if err != nil {
		slog.Error("Failed to load purchases", "trip_id", tripID, "error", err)
		return nil, nil, err
	}
	return trip, purchases, nil
}
