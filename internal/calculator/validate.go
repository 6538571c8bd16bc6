package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

var (
	ErrMissingTitle         = errors.New("title is required")
	ErrInvalidAmount        = errors.New("amount must be a positive finite number")
	ErrNoPayerSelected      = errors.New("at least one payer must be selected")
	ErrNoDebtorSelected     = errors.New("at least one participant must share the cost")
	ErrPayerSumMismatch     = errors.New("paid amounts must add up to the total")
	ErrSplitSumMismatch     = errors.New("split amounts must add up to the total")
	ErrReferentialIntegrity = errors.New("participant is not a member of the trip")
	ErrPercentSumMismatch   = errors.New("percentages must add up to 100")
	ErrNoParticipants       = errors.New("must have at least one participant")
)

// ValidationError ties a validation failure to the purchase field it concerns.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidatePurchase checks the invariants a purchase must satisfy before it is
// admitted to a trip. It returns the first failure as a *ValidationError.
func ValidatePurchase(p models.Purchase, participants []models.Participant) error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrMissingTitle}
	}
	if !p.TotalAmount.IsPositive() {
		return &ValidationError{Field: "total_amount", Err: ErrInvalidAmount}
	}
	if len(p.PaidBy) == 0 {
		return &ValidationError{Field: "paid_by", Err: ErrNoPayerSelected}
	}
	if len(p.SplitBetween) == 0 {
		return &ValidationError{Field: "split_between", Err: ErrNoDebtorSelected}
	}
	if err := checkShares("paid_by", p.PaidBy); err != nil {
		return err
	}
	if err := checkShares("split_between", p.SplitBetween); err != nil {
		return err
	}
	if !withinTolerance(models.SumShares(p.PaidBy), p.TotalAmount) {
		return &ValidationError{Field: "paid_by", Err: ErrPayerSumMismatch}
	}
	if !withinTolerance(models.SumShares(p.SplitBetween), p.TotalAmount) {
		return &ValidationError{Field: "split_between", Err: ErrSplitSumMismatch}
	}

	members := make(map[string]bool, len(participants))
	for _, m := range participants {
		members[m.ID] = true
	}
	for _, id := range p.ParticipantIDs() {
		if !members[id] {
			return &ValidationError{
				Field: "participant_id",
				Err:   &ReferenceError{PurchaseID: p.ID, ParticipantID: id},
			}
		}
	}

	return nil
}

func checkShares(field string, shares []models.Share) error {
	for _, s := range shares {
		if s.ParticipantID == "" {
			return &ValidationError{Field: field, Err: ErrReferentialIntegrity}
		}
		if s.Amount.IsNegative() {
			return &ValidationError{Field: field, Err: ErrInvalidAmount}
		}
	}
	return nil
}

// withinTolerance reports whether a and b differ by at most Epsilon.
func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(epsilon)
}
