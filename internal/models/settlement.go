package models

import "github.com/shopspring/decimal"

// Settlement is a recommended payment between two trip participants.
// It is an output of debt simplification and is never persisted.
type Settlement struct {
	// From is the participant who pays (a debtor).
	From string

	// To is the participant who receives (a creditor).
	To string

	// Amount is the positive payment amount.
	Amount decimal.Decimal
}
