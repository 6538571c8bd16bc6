// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique key (email, trip code,
	// trip membership) is already taken.
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for trip, purchase and user storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	TripStore
	PurchaseStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// TripStore persists trips and their participant lists.
type TripStore interface {
	// CreateTrip persists a new trip with its initial participants.
	// ID, Code and CreatedAt are populated by the store when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip and its participants in join order.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// GetTripByCode retrieves a trip by its join code.
	GetTripByCode(ctx context.Context, code string) (*models.Trip, error)

	// ListTripsByParticipant returns every trip the participant belongs to,
	// newest first.
	ListTripsByParticipant(ctx context.Context, participantID string) ([]*models.Trip, error)

	// UpdateTrip updates name, description and glyph of an existing trip.
	UpdateTrip(ctx context.Context, trip *models.Trip) error

	// AddParticipant appends a participant to a trip.
	// Returns ErrAlreadyExists if the participant is already a member.
	AddParticipant(ctx context.Context, tripID string, participant models.Participant) error
}

// PurchaseStore persists purchases. Purchases are never updated in place.
type PurchaseStore interface {
	// CreatePurchase persists a purchase with all its shares atomically.
	// ID and CreatedAt are populated by the store when empty.
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error

	// GetPurchase retrieves a purchase by ID.
	GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error)

	// ListPurchasesByTrip returns a trip's purchases in creation order.
	ListPurchasesByTrip(ctx context.Context, tripID string) ([]models.Purchase, error)

	// DeletePurchase removes a purchase and its shares.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUser saves the user's username and glyph and refreshes the
	// copies held on every trip the user has joined.
	UpdateUser(ctx context.Context, user *models.User) error
}
