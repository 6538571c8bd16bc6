package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnnywang/shareable-split-saga/internal/metrics"
	"github.com/dnnywang/shareable-split-saga/internal/middleware"
	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/internal/storage/sqlite"
	"github.com/dnnywang/shareable-split-saga/pkg/api/apiconnect"
	"github.com/dnnywang/shareable-split-saga/pkg/currency"
)

const testUserHeader = "X-Test-User"

// Seeded users. IDs sort in the order listed.
const (
	aliceID = "user-a"
	bobID   = "user-b"
	carolID = "user-c"
)

// testAuthInterceptor puts the user named by the X-Test-User header into the
// context, defaulting to Alice.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := req.Header().Get(testUserHeader)
			if userID == "" {
				userID = aliceID
			}
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			return next(ctx, req)
		}
	}
}

// as builds a request sent on behalf of userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type testEnv struct {
	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics
	trips   apiconnect.TripServiceClient
	ledger  apiconnect.LedgerServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database
// with Alice, Bob and Carol registered.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	now := time.Now().Unix()
	for _, u := range []*models.User{
		{ID: aliceID, Email: "alice@example.com", Username: "Alice", Glyph: "🦊", CreatedAt: now, UpdatedAt: now},
		{ID: bobID, Email: "bob@example.com", Username: "Bob", Glyph: "🐻", CreatedAt: now, UpdatedAt: now},
		{ID: carolID, Email: "carol@example.com", Username: "Carol", Glyph: "🐙", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, store.CreateUser(context.Background(), u), "failed to seed user")
	}

	m := metrics.New()
	interceptors := connect.WithInterceptors(testAuthInterceptor(), middleware.LoggingInterceptor(m))

	tripPath, tripHandler := apiconnect.NewTripServiceHandler(NewTripService(store), interceptors)
	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(
		NewLedgerService(store, currency.MustFormatter("USD"), m),
		interceptors,
	)

	mux := http.NewServeMux()
	mux.Handle(tripPath, tripHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:   store,
		metrics: m,
		trips:   apiconnect.NewTripServiceClient(http.DefaultClient, server.URL),
		ledger:  apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err, "expected %v error", want)
	assert.Equal(t, want, connect.CodeOf(err), "unexpected code for %v", err)
}
