package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as decimal strings ("12.34") in currency major units.

// Share is one participant's part of what was paid or consumed.
type Share struct {
	ParticipantID string          `json:"participant_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Purchase is a recorded expense of a trip.
type Purchase struct {
	ID           string          `json:"id"`
	TripID       string          `json:"trip_id"`
	Title        string          `json:"title"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidBy       []*Share        `json:"paid_by"`
	SplitBetween []*Share        `json:"split_between"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AddPurchaseRequest records a purchase. When SplitBetween is empty the total
// is split equally between all trip participants.
type AddPurchaseRequest struct {
	TripID       string          `json:"trip_id"`
	Title        string          `json:"title"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidBy       []*Share        `json:"paid_by"`
	SplitBetween []*Share        `json:"split_between,omitempty"`
}

type AddPurchaseResponse struct {
	Purchase *Purchase `json:"purchase"`
}

type RemovePurchaseRequest struct {
	PurchaseID string `json:"purchase_id"`
}

type RemovePurchaseResponse struct{}

type ListPurchasesRequest struct {
	TripID string `json:"trip_id"`
}

type ListPurchasesResponse struct {
	Purchases []*Purchase `json:"purchases"`
}

// MemberBalance is a participant's position in a trip. Positive Net means the
// group owes the participant.
type MemberBalance struct {
	ParticipantID string          `json:"participant_id"`
	DisplayName   string          `json:"display_name"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalOwed     decimal.Decimal `json:"total_owed"`
	Net           decimal.Decimal `json:"net"`
	Formatted     string          `json:"formatted"`
}

type GetBalancesRequest struct {
	TripID string `json:"trip_id"`
}

type GetBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
	Currency string           `json:"currency"`
}

// Settlement is a suggested payment from a debtor to a creditor.
type Settlement struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type SimplifyDebtsRequest struct {
	TripID string `json:"trip_id"`
}

type SimplifyDebtsResponse struct {
	Settlements []*Settlement `json:"settlements"`
	Currency    string        `json:"currency"`
}

// PreviewSharesRequest turns a total into shares without storing anything.
// Percentages, keyed by participant id, must add up to 100. When empty the
// total is split equally between ParticipantIDs, or between all trip
// participants when TripID is set and ParticipantIDs is empty.
type PreviewSharesRequest struct {
	TripID         string                     `json:"trip_id,omitempty"`
	TotalAmount    decimal.Decimal            `json:"total_amount"`
	ParticipantIDs []string                   `json:"participant_ids,omitempty"`
	Percentages    map[string]decimal.Decimal `json:"percentages,omitempty"`
}

type PreviewSharesResponse struct {
	Shares []*Share `json:"shares"`
}
