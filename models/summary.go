package models

// MatchSummary aggregates one processing run for the operator dashboard
type MatchSummary struct {
	TotalParticipants       int `json:"total_participants"`
	TotalMatches            int `json:"total_matches"`
	RomanticMatches         int `json:"romantic_matches"`
	PlatonicMatches         int `json:"platonic_matches"`
	ParticipantsWithMatches int `json:"participants_with_matches"`
	MatchRate               int `json:"match_rate"` // percent, rounded to nearest integer
}

// ParticipantMatches is one participant's result sheet, used to render the
// results email. A participant with no matches still gets a well-formed entry
// with empty lists.
type ParticipantMatches struct {
	ParticipantID   string        `json:"participant_id"`
	Name            string        `json:"participant_name"`
	Email           string        `json:"email"`
	RomanticMatches []ContactInfo `json:"romantic_matches"`
	PlatonicMatches []ContactInfo `json:"platonic_matches"`
}
