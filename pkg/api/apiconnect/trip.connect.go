package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "splitsaga.v1.TripService"

// Fully-qualified procedure names, as they appear in URL paths and in
// connect.Spec.Procedure.
const (
	TripServiceCreateTripProcedure = "/splitsaga.v1.TripService/CreateTrip"
	TripServiceJoinTripProcedure   = "/splitsaga.v1.TripService/JoinTrip"
	TripServiceGetTripProcedure    = "/splitsaga.v1.TripService/GetTrip"
	TripServiceListTripsProcedure  = "/splitsaga.v1.TripService/ListTrips"
	TripServiceUpdateTripProcedure = "/splitsaga.v1.TripService/UpdateTrip"
)

// TripServiceClient is a client for the splitsaga.v1.TripService service.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
}

// NewTripServiceClient constructs a client for the splitsaga.v1.TripService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &tripServiceClient{
		createTrip: connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](
			httpClient,
			baseURL+TripServiceCreateTripProcedure,
			opts...,
		),
		joinTrip: connect.NewClient[api.JoinTripRequest, api.JoinTripResponse](
			httpClient,
			baseURL+TripServiceJoinTripProcedure,
			opts...,
		),
		getTrip: connect.NewClient[api.GetTripRequest, api.GetTripResponse](
			httpClient,
			baseURL+TripServiceGetTripProcedure,
			opts...,
		),
		listTrips: connect.NewClient[api.ListTripsRequest, api.ListTripsResponse](
			httpClient,
			baseURL+TripServiceListTripsProcedure,
			opts...,
		),
		updateTrip: connect.NewClient[api.UpdateTripRequest, api.UpdateTripResponse](
			httpClient,
			baseURL+TripServiceUpdateTripProcedure,
			opts...,
		),
	}
}

type tripServiceClient struct {
	createTrip *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	joinTrip   *connect.Client[api.JoinTripRequest, api.JoinTripResponse]
	getTrip    *connect.Client[api.GetTripRequest, api.GetTripResponse]
	listTrips  *connect.Client[api.ListTripsRequest, api.ListTripsResponse]
	updateTrip *connect.Client[api.UpdateTripRequest, api.UpdateTripResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	return c.joinTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	return c.updateTrip.CallUnary(ctx, req)
}

// TripServiceHandler is implemented by the server side of splitsaga.v1.TripService,
// which manages trips and their membership.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error)
	UpdateTrip(context.Context, *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	createTripHandler := connect.NewUnaryHandler(
		TripServiceCreateTripProcedure,
		svc.CreateTrip,
		opts...,
	)
	joinTripHandler := connect.NewUnaryHandler(
		TripServiceJoinTripProcedure,
		svc.JoinTrip,
		opts...,
	)
	getTripHandler := connect.NewUnaryHandler(
		TripServiceGetTripProcedure,
		svc.GetTrip,
		opts...,
	)
	listTripsHandler := connect.NewUnaryHandler(
		TripServiceListTripsProcedure,
		svc.ListTrips,
		opts...,
	)
	updateTripHandler := connect.NewUnaryHandler(
		TripServiceUpdateTripProcedure,
		svc.UpdateTrip,
		opts...,
	)
	return "/splitsaga.v1.TripService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TripServiceCreateTripProcedure:
			createTripHandler.ServeHTTP(w, r)
		case TripServiceJoinTripProcedure:
			joinTripHandler.ServeHTTP(w, r)
		case TripServiceGetTripProcedure:
			getTripHandler.ServeHTTP(w, r)
		case TripServiceListTripsProcedure:
			listTripsHandler.ServeHTTP(w, r)
		case TripServiceUpdateTripProcedure:
			updateTripHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
