// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlitedriver "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const (
	codeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength    = 6
	codeAttempts  = 5
	busyTimeoutMs = 5000
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dbPath, busyTimeoutMs)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip and its initial participants.
// A fresh join code is drawn until one is free.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}

	presetCode := trip.Code != ""
	for attempt := 0; attempt < codeAttempts; attempt++ {
		if !presetCode {
			code, err := generateCode()
			if err != nil {
				return fmt.Errorf("failed to generate trip code: %w", err)
			}
			trip.Code = code
		}

		err := s.insertTrip(ctx, trip)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) || presetCode {
			return err
		}
	}
	return fmt.Errorf("failed to allocate a unique trip code after %d attempts", codeAttempts)
}

func (s *SQLiteStore) insertTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, glyph, code, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Description, trip.Glyph, trip.Code, trip.CreatedBy, trip.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i, p := range trip.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trip_participants (trip_id, participant_id, display_name, glyph, position)
			 VALUES (?, ?, ?, ?, ?)`,
			trip.ID, p.ID, p.DisplayName, p.Glyph, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID, including its participants.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.getTripWhere(ctx, "id = ?", tripID)
}

// GetTripByCode retrieves a trip by its join code.
func (s *SQLiteStore) GetTripByCode(ctx context.Context, code string) (*models.Trip, error) {
	return s.getTripWhere(ctx, "code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

func (s *SQLiteStore) getTripWhere(ctx context.Context, where string, arg any) (*models.Trip, error) {
	trip := &models.Trip{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, glyph, code, created_by, created_at FROM trips WHERE "+where,
		arg,
	).Scan(&trip.ID, &trip.Name, &trip.Description, &trip.Glyph, &trip.Code, &trip.CreatedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %v: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	trip.CreatedAt = time.Unix(0, createdAt).UTC()

	participants, err := s.listParticipants(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Participants = participants

	return trip, nil
}

func (s *SQLiteStore) listParticipants(ctx context.Context, tripID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant_id, display_name, glyph FROM trip_participants
		 WHERE trip_id = ? ORDER BY position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Glyph); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// ListTripsByParticipant returns every trip the participant belongs to, newest first.
func (s *SQLiteStore) ListTripsByParticipant(ctx context.Context, participantID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id FROM trips t
		 JOIN trip_participants tp ON tp.trip_id = t.id
		 WHERE tp.participant_id = ?
		 ORDER BY t.created_at DESC, t.rowid DESC`,
		participantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// UpdateTrip updates the editable details of a trip.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE trips SET name = ?, description = ?, glyph = ? WHERE id = ?",
		trip.Name, trip.Description, trip.Glyph, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}
	return nil
}

// AddParticipant appends a participant at the end of the trip's member list.
func (s *SQLiteStore) AddParticipant(ctx context.Context, tripID string, p models.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trip_participants (trip_id, participant_id, display_name, glyph, position)
		 SELECT ?, ?, ?, ?, COALESCE(MAX(position) + 1, 0) FROM trip_participants WHERE trip_id = ?`,
		tripID, p.ID, p.DisplayName, p.Glyph, tripID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("participant %s: %w", p.ID, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// generateCode draws a random join code from an alphabet without look-alike
// characters (no I, O, 0 or 1).
func generateCode() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// isUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
