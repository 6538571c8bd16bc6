package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Share is one participant's part of a purchase, either paid or owed.
type Share struct {
	ParticipantID string
	Amount        decimal.Decimal
}

// Purchase is a single expense recorded against a trip.
//
// A purchase is created atomically and never edited afterwards; removing it
// deletes it wholesale. Before a purchase is admitted, the sum of PaidBy and the
// sum of SplitBetween must each equal TotalAmount within 0.01.
type Purchase struct {
	// ID is the unique identifier for the purchase (UUID format).
	ID string

	// TripID is the trip this purchase belongs to.
	TripID string

	// Title is the human-readable name (e.g., "Hotel Booking").
	Title string

	// TotalAmount is the full price of the purchase. Always positive.
	TotalAmount decimal.Decimal

	// PaidBy lists who paid and how much.
	PaidBy []Share

	// SplitBetween lists who shares the cost and how much each owes.
	SplitBetween []Share

	// CreatedAt is when the purchase was recorded.
	CreatedAt time.Time
}

// ParticipantIDs returns every participant ID referenced by the purchase,
// payers first, without duplicates.
func (p Purchase) ParticipantIDs() []string {
	seen := make(map[string]bool, len(p.PaidBy)+len(p.SplitBetween))
	var ids []string
	for _, shares := range [][]Share{p.PaidBy, p.SplitBetween} {
		for _, s := range shares {
			if !seen[s.ParticipantID] {
				seen[s.ParticipantID] = true
				ids = append(ids, s.ParticipantID)
			}
		}
	}
	return ids
}

// SumShares adds up the amounts of the given shares.
func SumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}
