package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

// position is a creditor or debtor during simplification. amount is always the
// positive magnitude still to be received or paid.
type position struct {
	id     string
	amount decimal.Decimal
}

// Simplify reduces balances to a short list of payments that settles the group.
//
// Algorithm (greedy matching):
//   - balances within Epsilon of zero are ignored
//   - creditors are sorted by balance descending, debtors by balance ascending
//     (most negative first); equal amounts are ordered by participant ID
//   - the head debtor pays the head creditor min(debt, credit), and whichever
//     side is within Epsilon of zero afterwards leaves its list
//
// Each step clears at least one head, so at most creditors+debtors-1 payments
// are emitted. Applying all of them (see Apply) brings every balance within
// Epsilon of zero.
//
// The result is not guaranteed to use the fewest possible payments: finding
// that is a subset-partition problem, and some cross-cancelling groups can be
// settled in fewer hops than the greedy order produces.
func Simplify(balances Balances) []models.Settlement {
	var creditors, debtors []position
	for id, b := range balances {
		switch {
		case b.GreaterThan(epsilon):
			creditors = append(creditors, position{id: id, amount: b})
		case b.LessThan(epsilon.Neg()):
			debtors = append(debtors, position{id: id, amount: b.Neg()})
		}
	}
	sortPositions(creditors)
	sortPositions(debtors)

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		settlements = append(settlements, models.Settlement{
			From:   debtor.id,
			To:     creditor.id,
			Amount: amount,
		})

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.Abs().LessThanOrEqual(epsilon) {
			i++
		}
		if creditor.amount.Abs().LessThanOrEqual(epsilon) {
			j++
		}
	}

	return settlements
}

// sortPositions orders by amount descending, then by ID ascending.
func sortPositions(ps []position) {
	slices.SortFunc(ps, func(a, b position) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
}

// Apply returns a copy of balances with every settlement paid: the payer's
// balance rises by the amount and the receiver's falls by it.
func Apply(balances Balances, settlements []models.Settlement) Balances {
	out := balances.Clone()
	for _, s := range settlements {
		out[s.From] = out.Get(s.From).Add(s.Amount)
		out[s.To] = out.Get(s.To).Sub(s.Amount)
	}
	return out
}
