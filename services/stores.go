package services

import (
	"context"
	"time"

	"datenight_server/models"
)

// Store interfaces keep the session, validation and matching services
// storage-agnostic. Production runs on DynamoDB (dynamo_stores.go); tests and
// local development run on the in-memory implementation (memory_stores.go).

// EventStore persists events and their lifecycle timestamps
type EventStore interface {
	PutEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	UpdateEventStatus(ctx context.Context, eventID, status string, at time.Time) error
	MarkSelectionLinksSent(ctx context.Context, eventID string, at time.Time) error
	MarkMatchesProcessed(ctx context.Context, eventID string, at time.Time) error
}

// ParticipantStore persists participants, queryable per event
type ParticipantStore interface {
	PutParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	ListEventParticipants(ctx context.Context, eventID string) ([]models.Participant, error)
	SetCheckedIn(ctx context.Context, participantID string, at time.Time) error
}

// SessionStore persists selection sessions. Sessions are append-plus-two-flags:
// created once, then submittedAt or invalidatedAt written at most once each,
// never deleted.
type SessionStore interface {
	PutSession(ctx context.Context, session *models.SelectionSession) error
	GetSession(ctx context.Context, token string) (*models.SelectionSession, error)
	ListParticipantSessions(ctx context.Context, eventID, participantID string) ([]models.SelectionSession, error)

	// MarkSubmitted transitions submittedAt from unset to at as an atomic
	// compare-and-swap; a session that already has submittedAt set fails
	// with ErrAlreadySubmitted and stays untouched.
	MarkSubmitted(ctx context.Context, token string, at time.Time) error

	// InvalidateSession revokes an open session (reissue policy). Sessions
	// that were already submitted are left as-is.
	InvalidateSession(ctx context.Context, token string, at time.Time) error
}

// SelectionStore persists submitted selections as immutable batches
type SelectionStore interface {
	PutSelections(ctx context.Context, selections []models.Selection) error
	ListEventSelections(ctx context.Context, eventID string) ([]models.Selection, error)
}

// MatchStore persists resolved matches. Replacement is the only write:
// processing is idempotent and overlapping runs must not duplicate records.
type MatchStore interface {
	ReplaceEventMatches(ctx context.Context, eventID string, matches []models.Match) error
	ListEventMatches(ctx context.Context, eventID string) ([]models.Match, error)
}
