package calculator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

var hundred = decimal.NewFromInt(100)

// EqualShares splits total evenly between ids, in cents.
// Leftover cents go to the first ids in the given order, so 120.50 split three
// ways is 40.17, 40.17, 40.16.
func EqualShares(total decimal.Decimal, ids []string) ([]models.Share, error) {
	if len(ids) == 0 {
		return nil, ErrNoParticipants
	}
	if !total.IsPositive() {
		return nil, ErrInvalidAmount
	}

	cents := total.Shift(2).Round(0).IntPart()
	if cents == 0 {
		return nil, fmt.Errorf("%w: %s rounds to zero cents", ErrInvalidAmount, total)
	}
	n := int64(len(ids))
	base, rem := cents/n, cents%n

	shares := make([]models.Share, len(ids))
	for i, id := range ids {
		c := base
		if int64(i) < rem {
			c++
		}
		shares[i] = models.Share{ParticipantID: id, Amount: decimal.New(c, -2)}
	}
	return shares, nil
}

// PercentShares converts per-participant percentages into amounts of total.
//
// Percentages must add up to 100 within Epsilon. Zero percentages are skipped.
// Amounts are rounded to cents and the rounding residue is given to the largest
// share (ties by ID) so the shares add up to total exactly. Shares are returned
// in ID order.
func PercentShares(total decimal.Decimal, percents map[string]decimal.Decimal) ([]models.Share, error) {
	if len(percents) == 0 {
		return nil, ErrNoParticipants
	}
	if !total.IsPositive() {
		return nil, ErrInvalidAmount
	}

	ids := make([]string, 0, len(percents))
	sum := decimal.Zero
	for id, pct := range percents {
		if pct.IsNegative() {
			return nil, ErrInvalidAmount
		}
		sum = sum.Add(pct)
		if !pct.IsZero() {
			ids = append(ids, id)
		}
	}
	if !withinTolerance(sum, hundred) {
		return nil, ErrPercentSumMismatch
	}
	slices.Sort(ids)

	shares := make([]models.Share, len(ids))
	allocated := decimal.Zero
	largest := 0
	for i, id := range ids {
		amount := total.Mul(percents[id]).Div(hundred).Round(2)
		shares[i] = models.Share{ParticipantID: id, Amount: amount}
		allocated = allocated.Add(amount)
		if amount.GreaterThan(shares[largest].Amount) {
			largest = i
		}
	}

	if residue := total.Sub(allocated); !residue.IsZero() {
		shares[largest].Amount = shares[largest].Amount.Add(residue)
	}
	return shares, nil
}

// DropZeroShares returns shares without zero amounts, keeping order.
func DropZeroShares(shares []models.Share) []models.Share {
	out := make([]models.Share, 0, len(shares))
	for _, s := range shares {
		if !s.Amount.IsZero() {
			out = append(out, s)
		}
	}
	return out
}

