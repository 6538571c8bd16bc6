package service

import (
	"time"

	"github.com/dnnywang/shareable-split-saga/internal/models"
	"github.com/dnnywang/shareable-split-saga/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Glyph:     u.Glyph,
		CreatedAt: time.Unix(u.CreatedAt, 0).UTC(),
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	participants := make([]*api.Participant, len(t.Participants))
	for i, p := range t.Participants {
		participants[i] = &api.Participant{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Glyph:       p.Glyph,
		}
	}
	return &api.Trip{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Glyph:        t.Glyph,
		Code:         t.Code,
		Participants: participants,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

func toAPIShares(shares []models.Share) []*api.Share {
	out := make([]*api.Share, len(shares))
	for i, s := range shares {
		out[i] = &api.Share{ParticipantID: s.ParticipantID, Amount: s.Amount}
	}
	return out
}

// fromAPIShares converts request shares, skipping nil entries.
func fromAPIShares(shares []*api.Share) []models.Share {
	out := make([]models.Share, 0, len(shares))
	for _, s := range shares {
		if s == nil {
			continue
		}
		out = append(out, models.Share{ParticipantID: s.ParticipantID, Amount: s.Amount})
	}
	return out
}

func toAPIPurchase(p *models.Purchase) *api.Purchase {
	return &api.Purchase{
		ID:           p.ID,
		TripID:       p.TripID,
		Title:        p.Title,
		TotalAmount:  p.TotalAmount,
		PaidBy:       toAPIShares(p.PaidBy),
		SplitBetween: toAPIShares(p.SplitBetween),
		CreatedAt:    p.CreatedAt,
	}
}
