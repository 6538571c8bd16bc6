package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

func TestValidatePurchase(t *testing.T) {
	members := people("A", "B", "C")

	tests := []struct {
		name      string
		purchase  models.Purchase
		wantErr   error
		wantField string
	}{
		{
			name:     "valid purchase",
			purchase: purchase("Dinner", "90", shares("A", "90"), shares("A", "30", "B", "30", "C", "30")),
		},
		{
			name:     "rounding within tolerance",
			purchase: purchase("Groceries", "100", shares("A", "100"), shares("A", "33.33", "B", "33.33", "C", "33.33")),
		},
		{
			name: "missing title",
			purchase: func() models.Purchase {
				p := purchase("x", "10", shares("A", "10"), shares("B", "10"))
				p.Title = "   "
				return p
			}(),
			wantErr:   ErrMissingTitle,
			wantField: "title",
		},
		{
			name:      "zero total",
			purchase:  purchase("Zero", "0", shares("A", "0"), shares("B", "0")),
			wantErr:   ErrInvalidAmount,
			wantField: "total_amount",
		},
		{
			name:      "negative total",
			purchase:  purchase("Refund", "-10", shares("A", "-10"), shares("B", "-10")),
			wantErr:   ErrInvalidAmount,
			wantField: "total_amount",
		},
		{
			name:      "no payer",
			purchase:  purchase("Taxi", "10", nil, shares("B", "10")),
			wantErr:   ErrNoPayerSelected,
			wantField: "paid_by",
		},
		{
			name:      "no debtor",
			purchase:  purchase("Taxi", "10", shares("A", "10"), nil),
			wantErr:   ErrNoDebtorSelected,
			wantField: "split_between",
		},
		{
			name:      "negative share",
			purchase:  purchase("Taxi", "10", shares("A", "15", "B", "-5"), shares("B", "10")),
			wantErr:   ErrInvalidAmount,
			wantField: "paid_by",
		},
		{
			name:      "payer sum mismatch",
			purchase:  purchase("Hotel", "450", shares("A", "400"), shares("A", "150", "B", "150", "C", "150")),
			wantErr:   ErrPayerSumMismatch,
			wantField: "paid_by",
		},
		{
			name:      "split sum mismatch",
			purchase:  purchase("Hotel", "450", shares("A", "450"), shares("A", "150", "B", "150", "C", "149.98")),
			wantErr:   ErrSplitSumMismatch,
			wantField: "split_between",
		},
		{
			name:      "unknown participant",
			purchase:  purchase("Hotel", "20", shares("A", "20"), shares("A", "10", "stranger", "10")),
			wantErr:   ErrReferentialIntegrity,
			wantField: "participant_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePurchase(tt.purchase, members)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}
