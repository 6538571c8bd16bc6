package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func people(ids ...string) []models.Participant {
	ps := make([]models.Participant, len(ids))
	for i, id := range ids {
		ps[i] = models.Participant{ID: id, DisplayName: id}
	}
	return ps
}

// shares builds shares from alternating id/amount pairs: shares("A", "10", "B", "5").
func shares(pairs ...string) []models.Share {
	out := make([]models.Share, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Share{ParticipantID: pairs[i], Amount: dec(pairs[i+1])})
	}
	return out
}

func purchase(id, total string, paidBy, splitBetween []models.Share) models.Purchase {
	return models.Purchase{
		ID:           id,
		Title:        id,
		TotalAmount:  dec(total),
		PaidBy:       paidBy,
		SplitBetween: splitBetween,
	}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "amount = %s, want %s %v", got, want, msgAndArgs)
}
