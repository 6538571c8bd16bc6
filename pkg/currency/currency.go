// Package currency formats decimal amounts for display with go-money.
package currency

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCode is used when no currency is configured.
const DefaultCode = "USD"

// Formatter renders amounts in one ISO 4217 currency.
type Formatter struct {
	code     string
	fraction int32
}

// NewFormatter returns a formatter for the given currency code.
func NewFormatter(code string) (*Formatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCode
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{code: cur.Code, fraction: int32(cur.Fraction)}, nil
}

// MustFormatter is like NewFormatter but panics on an unknown code.
func MustFormatter(code string) *Formatter {
	f, err := NewFormatter(code)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code.
func (f *Formatter) Code() string {
	return f.code
}

// Money converts an amount in major units to minor units, rounding half away
// from zero at the currency's precision.
func (f *Formatter) Money(amount decimal.Decimal) *money.Money {
	minor := amount.Shift(f.fraction).Round(0)
	return money.New(minor.IntPart(), f.code)
}

// Format renders an amount, e.g. "$12.34" or "-$0.50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.Money(amount).Display()
}

// Signed renders an amount with an explicit "+" for positive values, the way
// balances are shown to members.
func (f *Formatter) Signed(amount decimal.Decimal) string {
	m := f.Money(amount)
	if m.IsPositive() {
		return "+" + m.Display()
	}
	return m.Display()
}
