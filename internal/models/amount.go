package models

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNonFiniteAmount is returned by ParseAmount for NaN and infinite inputs.
var ErrNonFiniteAmount = errors.New("amount must be a finite number")

// ParseAmount converts a floating point amount into a decimal amount.
// decimal.NewFromFloat panics on NaN and infinities, so they are rejected here.
func ParseAmount(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNonFiniteAmount
	}
	return decimal.NewFromFloat(f), nil
}
