package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

// MemberBalance represents the balance information for one trip participant.
type MemberBalance struct {
	ParticipantID string
	TotalPaid     decimal.Decimal // Total amount paid across all purchases
	TotalOwed     decimal.Decimal // Total share of purchase costs
	Net           decimal.Decimal // Positive = owed money, Negative = owes money
}

// Summarize breaks every participant's balance down into what they paid and
// what they owe, ordered by participant ID.
func Summarize(participants []models.Participant, purchases []models.Purchase) ([]MemberBalance, error) {
	balances, err := ComputeBalances(participants, purchases)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]decimal.Decimal, len(balances))
	owed := make(map[string]decimal.Decimal, len(balances))
	for _, purchase := range purchases {
		for _, s := range purchase.PaidBy {
			paid[s.ParticipantID] = paid[s.ParticipantID].Add(s.Amount)
		}
		for _, s := range purchase.SplitBetween {
			owed[s.ParticipantID] = owed[s.ParticipantID].Add(s.Amount)
		}
	}

	ids := balances.IDs()
	summary := make([]MemberBalance, len(ids))
	for i, id := range ids {
		summary[i] = MemberBalance{
			ParticipantID: id,
			TotalPaid:     paid[id],
			TotalOwed:     owed[id],
			Net:           balances[id],
		}
	}
	return summary, nil
}
