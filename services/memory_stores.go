package services

import (
	"context"
	"sync"
	"time"

	"datenight_server/models"
)

// MemoryStore is an in-memory implementation of every store interface. It
// backs local development mode (STORAGE_BACKEND=memory) and the test suite.
// Its MarkSubmitted mirrors the DynamoDB conditional update: a compare-and-
// swap on submittedAt under one lock.
type MemoryStore struct {
	mu           sync.RWMutex
	events       map[string]models.Event
	participants map[string]models.Participant
	sessions     map[string]models.SelectionSession
	selections   map[string]map[string]models.Selection // eventId -> pairKey -> selection
	matches      map[string][]models.Match              // eventId -> matches
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:       make(map[string]models.Event),
		participants: make(map[string]models.Participant),
		sessions:     make(map[string]models.SelectionSession),
		selections:   make(map[string]map[string]models.Selection),
		matches:      make(map[string][]models.Match),
	}
}

// --- EventStore ---

func (s *MemoryStore) PutEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.EventID] = *event
	return nil
}

func (s *MemoryStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (s *MemoryStore) UpdateEventStatus(ctx context.Context, eventID, status string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	event.Status = status
	event.UpdatedAt = at.UTC().Format(time.RFC3339)
	s.events[eventID] = event
	return nil
}

func (s *MemoryStore) MarkSelectionLinksSent(ctx context.Context, eventID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	ts := at.UTC().Format(time.RFC3339)
	event.SelectionLinksSentAt = &ts
	event.UpdatedAt = ts
	s.events[eventID] = event
	return nil
}

func (s *MemoryStore) MarkMatchesProcessed(ctx context.Context, eventID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	ts := at.UTC().Format(time.RFC3339)
	event.MatchesProcessedAt = &ts
	event.UpdatedAt = ts
	s.events[eventID] = event
	return nil
}

// --- ParticipantStore ---

func (s *MemoryStore) PutParticipant(ctx context.Context, participant *models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[participant.ParticipantID] = *participant
	return nil
}

func (s *MemoryStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participant, ok := s.participants[participantID]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return &participant, nil
}

func (s *MemoryStore) ListEventParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var participants []models.Participant
	for _, participant := range s.participants {
		if participant.EventID == eventID {
			participants = append(participants, participant)
		}
	}
	return participants, nil
}

func (s *MemoryStore) SetCheckedIn(ctx context.Context, participantID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	participant, ok := s.participants[participantID]
	if !ok {
		return ErrParticipantNotFound
	}
	participant.CheckedIn = true
	participant.CheckedInAt = at.UTC().Format(time.RFC3339)
	s.participants[participantID] = participant
	return nil
}

// --- SessionStore ---

func (s *MemoryStore) PutSession(ctx context.Context, session *models.SelectionSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

func (s *MemoryStore) GetSession(ctx context.Context, token string) (*models.SelectionSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemoryStore) ListParticipantSessions(ctx context.Context, eventID, participantID string) ([]models.SelectionSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []models.SelectionSession
	for _, session := range s.sessions {
		if session.EventID == eventID && session.ParticipantID == participantID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *MemoryStore) MarkSubmitted(ctx context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	if session.SubmittedAt != nil {
		return ErrAlreadySubmitted
	}
	ts := at.UTC().Format(time.RFC3339)
	session.SubmittedAt = &ts
	s.sessions[token] = session
	return nil
}

func (s *MemoryStore) InvalidateSession(ctx context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	if session.SubmittedAt != nil {
		return nil
	}
	ts := at.UTC().Format(time.RFC3339)
	session.InvalidatedAt = &ts
	s.sessions[token] = session
	return nil
}

// --- SelectionStore ---

func (s *MemoryStore) PutSelections(ctx context.Context, selections []models.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, selection := range selections {
		eventSelections, ok := s.selections[selection.EventID]
		if !ok {
			eventSelections = make(map[string]models.Selection)
			s.selections[selection.EventID] = eventSelections
		}
		eventSelections[selection.PairKey] = selection
	}
	return nil
}

func (s *MemoryStore) ListEventSelections(ctx context.Context, eventID string) ([]models.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var selections []models.Selection
	for _, selection := range s.selections[eventID] {
		selections = append(selections, selection)
	}
	return selections, nil
}

// --- MatchStore ---

func (s *MemoryStore) ReplaceEventMatches(ctx context.Context, eventID string, matches []models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replacement := make([]models.Match, len(matches))
	copy(replacement, matches)
	s.matches[eventID] = replacement
	return nil
}

func (s *MemoryStore) ListEventMatches(ctx context.Context, eventID string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]models.Match, len(s.matches[eventID]))
	copy(matches, s.matches[eventID])
	return matches, nil
}
