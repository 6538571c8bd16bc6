package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnnywang/shareable-split-saga/internal/models"
)

func TestEqualShares(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		ids     []string
		want    []string
		wantErr error
	}{
		{
			name:  "even split",
			total: "150",
			ids:   []string{"A", "B", "C"},
			want:  []string{"50", "50", "50"},
		},
		{
			name:  "leftover cents go to the first ids",
			total: "120.50",
			ids:   []string{"user-1", "user-2", "user-3"},
			want:  []string{"40.17", "40.17", "40.16"},
		},
		{
			name:  "single participant takes everything",
			total: "9.99",
			ids:   []string{"A"},
			want:  []string{"9.99"},
		},
		{
			name:    "no participants should error",
			total:   "10",
			ids:     nil,
			wantErr: ErrNoParticipants,
		},
		{
			name:    "zero total should error",
			total:   "0",
			ids:     []string{"A"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "sub-cent total should error",
			total:   "0.004",
			ids:     []string{"A", "B"},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EqualShares(dec(tt.total), tt.ids)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, tt.ids[i], got[i].ParticipantID)
				assertAmount(t, want, got[i].Amount, tt.ids[i])
			}
			assertAmount(t, tt.total, models.SumShares(got))
		})
	}
}

func TestPercentShares(t *testing.T) {
	pct := func(m map[string]string) map[string]decimal.Decimal {
		out := make(map[string]decimal.Decimal, len(m))
		for k, v := range m {
			out[k] = dec(v)
		}
		return out
	}

	t.Run("single payer at 100 percent", func(t *testing.T) {
		got, err := PercentShares(dec("80"), pct(map[string]string{"A": "100", "B": "0"}))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].ParticipantID)
		assertAmount(t, "80", got[0].Amount)
	})

	t.Run("thirds are rounded and the residue goes to the first largest share", func(t *testing.T) {
		got, err := PercentShares(dec("100"), pct(map[string]string{
			"C": "33.333333",
			"A": "33.333333",
			"B": "33.333334",
		}))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "A", got[0].ParticipantID)
		assert.Equal(t, "B", got[1].ParticipantID)
		assert.Equal(t, "C", got[2].ParticipantID)
		assertAmount(t, "33.34", got[0].Amount)
		assertAmount(t, "33.33", got[1].Amount)
		assertAmount(t, "33.33", got[2].Amount)
		assertAmount(t, "100", models.SumShares(got))
	})

	t.Run("uneven weights", func(t *testing.T) {
		got, err := PercentShares(dec("200"), pct(map[string]string{"A": "75", "B": "25"}))
		require.NoError(t, err)
		assertAmount(t, "150", got[0].Amount)
		assertAmount(t, "50", got[1].Amount)
	})

	t.Run("percentages must total 100", func(t *testing.T) {
		_, err := PercentShares(dec("50"), pct(map[string]string{"A": "60", "B": "30"}))
		assert.ErrorIs(t, err, ErrPercentSumMismatch)
	})

	t.Run("negative percentage", func(t *testing.T) {
		_, err := PercentShares(dec("50"), pct(map[string]string{"A": "110", "B": "-10"}))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := PercentShares(dec("50"), nil)
		assert.ErrorIs(t, err, ErrNoParticipants)
	})
}

func TestDropZeroShares(t *testing.T) {
	got := DropZeroShares(shares("A", "10", "B", "0", "C", "5"))
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ParticipantID)
	assert.Equal(t, "C", got[1].ParticipantID)
}
