package models

// Participant is a member of a trip.
// Participants are immutable once created and referenced by ID from purchases.
type Participant struct {
	// ID is the participant identity. For registered users it equals the user ID.
	ID string

	// DisplayName is the name shown to other members.
	DisplayName string

	// Glyph is a short visual marker (usually an emoji) shown next to the name.
	Glyph string
}

// ParticipantIDs returns the IDs of participants in their given order.
func ParticipantIDs(participants []Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}

// FindParticipant returns the participant with the given ID, if present.
func FindParticipant(participants []Participant, id string) (Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}
