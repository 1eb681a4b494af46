package models

import "time"

// SelectionSession is a single-use, time-boxed capability: possession of the
// token authorizes one participant to submit selections for one event.
// Sessions are never deleted; submittedAt and invalidatedAt are each written
// at most once.
type SelectionSession struct {
	Token         string  `dynamodbav:"token" json:"token"` // Partition Key, bearer capability
	EventID       string  `dynamodbav:"eventId" json:"event_id"`
	ParticipantID string  `dynamodbav:"participantId" json:"participant_id"` // Used in participant-index GSI
	CreatedAt     string  `dynamodbav:"createdAt" json:"created_at"`
	ExpiresAt     string  `dynamodbav:"expiresAt" json:"expires_at"`
	SubmittedAt   *string `dynamodbav:"submittedAt,omitempty" json:"submitted_at,omitempty"`
	InvalidatedAt *string `dynamodbav:"invalidatedAt,omitempty" json:"invalidated_at,omitempty"`
}

// SelectionSessionsTable is the DynamoDB table name for selection sessions
const SelectionSessionsTable = "SelectionSessions"

// SessionParticipantIndex is the GSI for querying sessions by participant
const SessionParticipantIndex = "participant-index"

// IsExpired reports whether the session deadline has passed at the given time.
// An unparseable expiry counts as expired rather than open-ended.
func (s *SelectionSession) IsExpired(at time.Time) bool {
	expires, err := time.Parse(time.RFC3339, s.ExpiresAt)
	if err != nil {
		return true
	}
	return at.After(expires)
}

// IsSubmitted reports whether the session's one submission has happened
func (s *SelectionSession) IsSubmitted() bool {
	return s.SubmittedAt != nil
}

// IsInvalidated reports whether the token was revoked by a later reissue
func (s *SelectionSession) IsInvalidated() bool {
	return s.InvalidatedAt != nil
}

// IsOpen reports whether the session can still accept a submission at the given time
func (s *SelectionSession) IsOpen(at time.Time) bool {
	return !s.IsSubmitted() && !s.IsInvalidated() && !s.IsExpired(at)
}
