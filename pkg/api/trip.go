package api

import "time"

// Participant is a trip member.
type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Glyph       string `json:"glyph,omitempty"`
}

// Trip is a group of participants sharing purchases.
type Trip struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Glyph        string         `json:"glyph,omitempty"`
	Code         string         `json:"code"`
	Participants []*Participant `json:"participants"`
	CreatedBy    string         `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
}

type CreateTripRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Glyph       string `json:"glyph,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type JoinTripRequest struct {
	Code string `json:"code"`
}

type JoinTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

// UpdateTripRequest replaces name, description and glyph. Name is required.
type UpdateTripRequest struct {
	TripID      string `json:"trip_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Glyph       string `json:"glyph"`
}

type UpdateTripResponse struct {
	Trip *Trip `json:"trip"`
}
