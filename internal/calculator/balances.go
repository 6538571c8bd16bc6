package calculator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

var epsilon = decimal.New(1, -2)

// Epsilon returns the currency-unit tolerance (0.01) below which a balance
// or a sum mismatch is treated as zero.
func Epsilon() decimal.Decimal { return epsilon }

// Balances maps participant IDs to their net position.
// Positive = is owed money, negative = owes money.
//
// A Balances value returned by ComputeBalances has exactly one entry per
// participant, including participants without any purchase activity.
type Balances map[string]decimal.Decimal

// Get returns the balance for id, or zero when id is unknown.
func (b Balances) Get(id string) decimal.Decimal {
	if v, ok := b[id]; ok {
		return v
	}
	return decimal.Zero
}

// IDs returns the participant IDs in ascending order.
func (b Balances) IDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Total returns the sum of every balance. For balances derived from valid
// purchases it is within Epsilon of zero.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range b.IDs() {
		total = total.Add(b[id])
	}
	return total
}

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for id, v := range b {
		out[id] = v
	}
	return out
}

// Settled reports whether every balance is within Epsilon of zero.
func (b Balances) Settled() bool {
	for _, v := range b {
		if v.Abs().GreaterThan(epsilon) {
			return false
		}
	}
	return true
}

// ReferenceError reports a purchase that references a participant outside the
// participant set.
type ReferenceError struct {
	PurchaseID    string
	ParticipantID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("purchase %q references unknown participant %q", e.PurchaseID, e.ParticipantID)
}

func (e *ReferenceError) Unwrap() error { return ErrReferentialIntegrity }

// ComputeBalances folds purchases into a net balance per participant.
//
// Algorithm:
//   - every participant starts at exactly zero
//   - for each purchase, each payer gains the amount they paid
//   - for each purchase, each sharer loses the amount they owe
//
// A purchase referencing an ID outside participants is rejected with a
// *ReferenceError and no balances are returned. The inputs are never modified.
func ComputeBalances(participants []models.Participant, purchases []models.Purchase) (Balances, error) {
	balances := make(Balances, len(participants))
	for _, p := range participants {
		balances[p.ID] = decimal.Zero
	}

	for _, purchase := range purchases {
		for _, id := range purchase.ParticipantIDs() {
			if _, ok := balances[id]; !ok {
				return nil, &ReferenceError{PurchaseID: purchase.ID, ParticipantID: id}
			}
		}

		for _, payer := range purchase.PaidBy {
			balances[payer.ParticipantID] = balances[payer.ParticipantID].Add(payer.Amount)
		}
		for _, debtor := range purchase.SplitBetween {
			balances[debtor.ParticipantID] = balances[debtor.ParticipantID].Sub(debtor.Amount)
		}
	}

	return balances, nil
}
