package models

import "time"

// Trip is a group of participants sharing purchases.
// New members join with the trip's Code.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Weekend Getaway").
	Name string

	// Description is optional free text.
	Description string

	// Glyph is a short visual marker for the trip, usually an emoji.
	Glyph string

	// Code is the 6-character join code.
	Code string

	// Participants is the authoritative, de-duplicated member list, in join order.
	Participants []Participant

	// CreatedBy is the user ID of the trip creator.
	CreatedBy string

	// CreatedAt is when the trip was created.
	CreatedAt time.Time
}

// HasParticipant reports whether id is a member of the trip.
func (t *Trip) HasParticipant(id string) bool {
	_, ok := FindParticipant(t.Participants, id)
	return ok
}
