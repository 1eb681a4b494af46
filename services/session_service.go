package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"datenight_server/metrics"
	"datenight_server/models"
	"datenight_server/utils"
)

// DefaultSelectionTTL is the selection window granted with each link
const DefaultSelectionTTL = 24 * time.Hour

// SessionService issues and resolves selection sessions
type SessionService struct {
	Events       EventStore
	Participants ParticipantStore
	Sessions     SessionStore
	TTL          time.Duration
	BaseURL      string
}

// IssuedSession is one freshly issued session plus the data the email needs
type IssuedSession struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Email           string `json:"email"`
	Token           string `json:"token"`
	SelectionLink   string `json:"selection_link"`
	ExpiresAt       string `json:"expires_at"`
}

// SessionView is everything the selection page needs for one token
type SessionView struct {
	Session     *models.SelectionSession
	Participant *models.Participant
	Event       *models.Event
	Selectable  []models.Participant
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSelectionTTL
}

// IssueSessions creates one fresh session per checked-in participant of a
// completed event. Outstanding open sessions for those participants are
// invalidated first, so at any moment at most one token per participant is
// live. Sessions are never deleted.
func (s *SessionService) IssueSessions(ctx context.Context, eventID string) ([]IssuedSession, error) {
	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.CanDistributeSelections() {
		return nil, fmt.Errorf("%w: selection links require a completed event", ErrNotEligible)
	}

	participants, err := s.Participants.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var checkedIn []models.Participant
	for _, participant := range participants {
		if participant.CheckedIn {
			checkedIn = append(checkedIn, participant)
		}
	}
	if len(checkedIn) == 0 {
		return nil, ErrNoCheckedInParticipants
	}

	log.Printf("📧 Issuing selection sessions for event %s (%d checked-in participants)", eventID, len(checkedIn))

	now := time.Now()
	expiresAt := now.Add(s.ttl())

	issued := make([]IssuedSession, 0, len(checkedIn))
	for _, participant := range checkedIn {
		existing, err := s.Sessions.ListParticipantSessions(ctx, eventID, participant.ParticipantID)
		if err != nil {
			return nil, err
		}
		for _, old := range existing {
			if old.IsOpen(now) {
				if err := s.Sessions.InvalidateSession(ctx, old.Token, now); err != nil {
					return nil, err
				}
				log.Printf("🔒 Invalidated outstanding session for participant %s", participant.ParticipantID)
			}
		}

		session := &models.SelectionSession{
			Token:         utils.NewSelectionToken(),
			EventID:       eventID,
			ParticipantID: participant.ParticipantID,
			CreatedAt:     now.UTC().Format(time.RFC3339),
			ExpiresAt:     expiresAt.UTC().Format(time.RFC3339),
		}
		if err := s.Sessions.PutSession(ctx, session); err != nil {
			return nil, err
		}

		issued = append(issued, IssuedSession{
			ParticipantID:   participant.ParticipantID,
			ParticipantName: participant.Name,
			Email:           participant.Email,
			Token:           session.Token,
			SelectionLink:   s.BaseURL + "/select/" + session.Token,
			ExpiresAt:       session.ExpiresAt,
		})
		metrics.SessionsIssued.Inc()
	}

	if err := s.Events.MarkSelectionLinksSent(ctx, eventID, now); err != nil {
		return nil, err
	}

	return issued, nil
}

// GetSessionView resolves a token into the data the selection page shows.
// Unknown and invalidated tokens both come back as ErrSessionNotFound; the
// response never says why a token is not usable.
func (s *SessionService) GetSessionView(ctx context.Context, token string) (*SessionView, error) {
	session, err := s.Sessions.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsInvalidated() {
		return nil, ErrSessionNotFound
	}
	if session.IsSubmitted() {
		return nil, ErrAlreadySubmitted
	}
	if session.IsExpired(time.Now()) {
		return nil, ErrSessionExpired
	}

	participant, err := s.Participants.GetParticipant(ctx, session.ParticipantID)
	if err != nil {
		return nil, err
	}
	event, err := s.Events.GetEvent(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.Participants.ListEventParticipants(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	return &SessionView{
		Session:     session,
		Participant: participant,
		Event:       event,
		Selectable:  SelectableParticipants(event, participant, participants),
	}, nil
}

// SelectableParticipants returns the participants the given participant must
// select on: every other checked-in participant, minus same-gender entries
// unless the event allows them.
func SelectableParticipants(event *models.Event, self *models.Participant, participants []models.Participant) []models.Participant {
	var selectable []models.Participant
	for _, candidate := range participants {
		if !candidate.CheckedIn || candidate.ParticipantID == self.ParticipantID {
			continue
		}
		if !event.AllowSameGenderSelection && candidate.Gender == self.Gender {
			continue
		}
		selectable = append(selectable, candidate)
	}
	return selectable
}
