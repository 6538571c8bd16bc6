package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitsaga.v1.LedgerService"

// Fully-qualified procedure names, as they appear in URL paths and in
// connect.Spec.Procedure.
const (
	LedgerServiceAddPurchaseProcedure    = "/splitsaga.v1.LedgerService/AddPurchase"
	LedgerServiceRemovePurchaseProcedure = "/splitsaga.v1.LedgerService/RemovePurchase"
	LedgerServiceListPurchasesProcedure  = "/splitsaga.v1.LedgerService/ListPurchases"
	LedgerServiceGetBalancesProcedure    = "/splitsaga.v1.LedgerService/GetBalances"
	LedgerServiceSimplifyDebtsProcedure  = "/splitsaga.v1.LedgerService/SimplifyDebts"
	LedgerServicePreviewSharesProcedure  = "/splitsaga.v1.LedgerService/PreviewShares"
)

// LedgerServiceClient is a client for the splitsaga.v1.LedgerService service.
type LedgerServiceClient interface {
	AddPurchase(context.Context, *connect.Request[api.AddPurchaseRequest]) (*connect.Response[api.AddPurchaseResponse], error)
	RemovePurchase(context.Context, *connect.Request[api.RemovePurchaseRequest]) (*connect.Response[api.RemovePurchaseResponse], error)
	ListPurchases(context.Context, *connect.Request[api.ListPurchasesRequest]) (*connect.Response[api.ListPurchasesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	PreviewShares(context.Context, *connect.Request[api.PreviewSharesRequest]) (*connect.Response[api.PreviewSharesResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitsaga.v1.LedgerService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &ledgerServiceClient{
		addPurchase: connect.NewClient[api.AddPurchaseRequest, api.AddPurchaseResponse](
			httpClient,
			baseURL+LedgerServiceAddPurchaseProcedure,
			opts...,
		),
		removePurchase: connect.NewClient[api.RemovePurchaseRequest, api.RemovePurchaseResponse](
			httpClient,
			baseURL+LedgerServiceRemovePurchaseProcedure,
			opts...,
		),
		listPurchases: connect.NewClient[api.ListPurchasesRequest, api.ListPurchasesResponse](
			httpClient,
			baseURL+LedgerServiceListPurchasesProcedure,
			opts...,
		),
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](
			httpClient,
			baseURL+LedgerServiceGetBalancesProcedure,
			opts...,
		),
		simplifyDebts: connect.NewClient[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse](
			httpClient,
			baseURL+LedgerServiceSimplifyDebtsProcedure,
			opts...,
		),
		previewShares: connect.NewClient[api.PreviewSharesRequest, api.PreviewSharesResponse](
			httpClient,
			baseURL+LedgerServicePreviewSharesProcedure,
			opts...,
		),
	}
}

type ledgerServiceClient struct {
	addPurchase    *connect.Client[api.AddPurchaseRequest, api.AddPurchaseResponse]
	removePurchase *connect.Client[api.RemovePurchaseRequest, api.RemovePurchaseResponse]
	listPurchases  *connect.Client[api.ListPurchasesRequest, api.ListPurchasesResponse]
	getBalances    *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	simplifyDebts  *connect.Client[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse]
	previewShares  *connect.Client[api.PreviewSharesRequest, api.PreviewSharesResponse]
}

func (c *ledgerServiceClient) AddPurchase(ctx context.Context, req *connect.Request[api.AddPurchaseRequest]) (*connect.Response[api.AddPurchaseResponse], error) {
	return c.addPurchase.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemovePurchase(ctx context.Context, req *connect.Request[api.RemovePurchaseRequest]) (*connect.Response[api.RemovePurchaseResponse], error) {
	return c.removePurchase.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListPurchases(ctx context.Context, req *connect.Request[api.ListPurchasesRequest]) (*connect.Response[api.ListPurchasesResponse], error) {
	return c.listPurchases.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	return c.simplifyDebts.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) PreviewShares(ctx context.Context, req *connect.Request[api.PreviewSharesRequest]) (*connect.Response[api.PreviewSharesResponse], error) {
	return c.previewShares.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the server side of splitsaga.v1.LedgerService,
// which records purchases and derives balances and settlements.
type LedgerServiceHandler interface {
	AddPurchase(context.Context, *connect.Request[api.AddPurchaseRequest]) (*connect.Response[api.AddPurchaseResponse], error)
	RemovePurchase(context.Context, *connect.Request[api.RemovePurchaseRequest]) (*connect.Response[api.RemovePurchaseResponse], error)
	ListPurchases(context.Context, *connect.Request[api.ListPurchasesRequest]) (*connect.Response[api.ListPurchasesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	PreviewShares(context.Context, *connect.Request[api.PreviewSharesRequest]) (*connect.Response[api.PreviewSharesResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	addPurchaseHandler := connect.NewUnaryHandler(
		LedgerServiceAddPurchaseProcedure,
		svc.AddPurchase,
		opts...,
	)
	removePurchaseHandler := connect.NewUnaryHandler(
		LedgerServiceRemovePurchaseProcedure,
		svc.RemovePurchase,
		opts...,
	)
	listPurchasesHandler := connect.NewUnaryHandler(
		LedgerServiceListPurchasesProcedure,
		svc.ListPurchases,
		opts...,
	)
	getBalancesHandler := connect.NewUnaryHandler(
		LedgerServiceGetBalancesProcedure,
		svc.GetBalances,
		opts...,
	)
	simplifyDebtsHandler := connect.NewUnaryHandler(
		LedgerServiceSimplifyDebtsProcedure,
		svc.SimplifyDebts,
		opts...,
	)
	previewSharesHandler := connect.NewUnaryHandler(
		LedgerServicePreviewSharesProcedure,
		svc.PreviewShares,
		opts...,
	)
	return "/splitsaga.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceAddPurchaseProcedure:
			addPurchaseHandler.ServeHTTP(w, r)
		case LedgerServiceRemovePurchaseProcedure:
			removePurchaseHandler.ServeHTTP(w, r)
		case LedgerServiceListPurchasesProcedure:
			listPurchasesHandler.ServeHTTP(w, r)
		case LedgerServiceGetBalancesProcedure:
			getBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceSimplifyDebtsProcedure:
			simplifyDebtsHandler.ServeHTTP(w, r)
		case LedgerServicePreviewSharesProcedure:
			previewSharesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
