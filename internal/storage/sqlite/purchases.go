package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/internal/storage"
)

const (
	sharePaid  = "paid"
	shareSplit = "split"
)

// CreatePurchase persists a new purchase and its shares in one transaction.
func (s *SQLiteStore) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchases (id, trip_id, title, total_amount, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		purchase.ID, purchase.TripID, purchase.Title, purchase.TotalAmount, purchase.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	for kind, shares := range map[string][]models.Share{sharePaid: purchase.PaidBy, shareSplit: purchase.SplitBetween} {
		for i, share := range shares {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO purchase_shares (purchase_id, kind, position, participant_id, amount)
				 VALUES (?, ?, ?, ?, ?)`,
				purchase.ID, kind, i, share.ParticipantID, share.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s share: %w", kind, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPurchase retrieves a purchase by ID, including its shares.
func (s *SQLiteStore) GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, title, total_amount, created_at FROM purchases WHERE id = ?`,
		purchaseID,
	).Scan(&purchase.ID, &purchase.TripID, &purchase.Title, &purchase.TotalAmount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase %s: %w", purchaseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	purchase.CreatedAt = time.Unix(0, createdAt).UTC()

	byPurchase := map[string]*models.Purchase{purchase.ID: purchase}
	if err := s.loadShares(ctx, "purchase_id = ?", purchase.ID, byPurchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchasesByTrip retrieves all purchases of a trip, oldest first.
func (s *SQLiteStore) ListPurchasesByTrip(ctx context.Context, tripID string) ([]models.Purchase, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, title, total_amount, created_at
		 FROM purchases WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by trip: %w", err)
	}

	var purchases []*models.Purchase
	for rows.Next() {
		purchase := &models.Purchase{}
		var createdAt int64
		if err := rows.Scan(&purchase.ID, &purchase.TripID, &purchase.Title, &purchase.TotalAmount, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchase.CreatedAt = time.Unix(0, createdAt).UTC()
		purchases = append(purchases, purchase)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	byPurchase := make(map[string]*models.Purchase, len(purchases))
	for _, p := range purchases {
		byPurchase[p.ID] = p
	}
	err = s.loadShares(ctx,
		"purchase_id IN (SELECT id FROM purchases WHERE trip_id = ?)", tripID, byPurchase)
	if err != nil {
		return nil, err
	}

	out := make([]models.Purchase, len(purchases))
	for i, p := range purchases {
		out[i] = *p
	}
	return out, nil
}

// loadShares fills PaidBy and SplitBetween of the given purchases from the
// share rows matching where.
func (s *SQLiteStore) loadShares(ctx context.Context, where string, arg any, byPurchase map[string]*models.Purchase) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT purchase_id, kind, participant_id, amount FROM purchase_shares
		 WHERE `+where+` ORDER BY purchase_id, kind, position`,
		arg,
	)
	if err != nil {
		return fmt.Errorf("failed to get purchase shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var purchaseID, kind string
		var share models.Share
		if err := rows.Scan(&purchaseID, &kind, &share.ParticipantID, &share.Amount); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		purchase, ok := byPurchase[purchaseID]
		if !ok {
			continue
		}
		switch kind {
		case sharePaid:
			purchase.PaidBy = append(purchase.PaidBy, share)
		case shareSplit:
			purchase.SplitBetween = append(purchase.SplitBetween, share)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}

// DeletePurchase removes a purchase by ID. Shares are removed by cascade.
func (s *SQLiteStore) DeletePurchase(ctx context.Context, purchaseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM purchases WHERE id = ?", purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("purchase %s: %w", purchaseID, storage.ErrNotFound)
	}
	return nil
}
