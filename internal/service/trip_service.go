package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/dnnywang/shareable-split-saga/internal/middleware"
	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/internal/storage"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

// TripService implements the Connect TripService.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// currentUser loads the authenticated caller.
func (s *TripService) currentUser(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, errAuthRequired
	}
	return s.store.GetUserByID(ctx, userID)
}

// CreateTrip creates a trip with the caller as its first participant.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received", "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connectError(errMissingName)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		slog.Error("CreateTrip failed to load user", "error", err)
		return nil, connectError(err)
	}

	trip := &models.Trip{
		Name:         name,
		Description:  strings.TrimSpace(req.Msg.Description),
		Glyph:        req.Msg.Glyph,
		CreatedBy:    user.ID,
		Participants: []models.Participant{user.AsParticipant()},
	}

	// Save to storage (generates ID, Code and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "code", trip.Code)

	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// JoinTrip adds the caller to the trip with the given join code.
// Joining a trip the caller already belongs to returns the trip unchanged.
func (s *TripService) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	slog.Info("JoinTrip request received", "code", req.Msg.Code)

	code := strings.TrimSpace(req.Msg.Code)
	if code == "" {
		return nil, connectError(errMissingCode)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	trip, err := s.store.GetTripByCode(ctx, code)
	if err != nil {
		slog.Warn("JoinTrip unknown code", "code", code, "error", err)
		return nil, connectError(err)
	}

	if trip.HasParticipant(user.ID) {
		slog.Info("JoinTrip caller already a member", "trip_id", trip.ID, "user_id", user.ID)
		return connect.NewResponse(&api.JoinTripResponse{Trip: toAPITrip(trip)}), nil
	}

	err = s.store.AddParticipant(ctx, trip.ID, user.AsParticipant())
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		slog.Error("JoinTrip failed", "trip_id", trip.ID, "error", err)
		return nil, connectError(err)
	}

	trip, err = s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		slog.Error("Failed to fetch joined trip", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Trip joined", "trip_id", trip.ID, "user_id", user.ID, "participants", len(trip.Participants))

	return connect.NewResponse(&api.JoinTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	if req.Msg.TripID == "" {
		return nil, connectError(errMissingID)
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips returns the caller's trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connectError(errAuthRequired)
	}

	trips, err := s.store.ListTripsByParticipant(ctx, userID)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, connectError(err)
	}

	apiTrips := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		apiTrips[i] = toAPITrip(trip)
	}

	slog.Info("ListTrips successful", "user_id", userID, "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{Trips: apiTrips}), nil
}

// UpdateTrip edits the name, description and glyph of a trip.
func (s *TripService) UpdateTrip(ctx context.Context, req *connect.Request[api.UpdateTripRequest]) (*connect.Response[api.UpdateTripResponse], error) {
	slog.Info("UpdateTrip request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	if req.Msg.TripID == "" {
		return nil, connectError(errMissingID)
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connectError(errMissingName)
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		slog.Error("UpdateTrip failed", "trip_id", req.Msg.TripID, "error", err)
		return nil, connectError(err)
	}

	trip.Name = name
	trip.Description = strings.TrimSpace(req.Msg.Description)
	trip.Glyph = req.Msg.Glyph

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Trip updated", "trip_id", trip.ID)

	return connect.NewResponse(&api.UpdateTripResponse{Trip: toAPITrip(trip)}), nil
}
