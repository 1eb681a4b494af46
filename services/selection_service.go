package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"datenight_server/metrics"
	"datenight_server/models"
)

// SelectionService validates and records a session's single submission
type SelectionService struct {
	Events       EventStore
	Participants ParticipantStore
	Sessions     SessionStore
	Selections   SelectionStore
}

// SelectionEntry is one row of the submitted selection form
type SelectionEntry struct {
	SelectedParticipantID string `json:"selected_participant_id"`
	SelectionType         string `json:"selection_type"`
}

// SubmitResult reports an accepted submission
type SubmitResult struct {
	ParticipantID    string         `json:"participant_id"`
	EventID          string         `json:"event_id"`
	SelectionCount   int            `json:"selection_count"`
	SelectionSummary map[string]int `json:"selection_summary"`
	SubmittedAt      string         `json:"submitted_at"`
}

// SubmitSelections performs the gatekeeping for a submission and persists it.
// Validation is all-or-nothing: any failure rejects the whole batch and the
// client must resubmit a corrected set.
//
// The write order is selections first, mark-submitted second. The conditional
// mark is the single commit point: if two requests race, exactly one wins the
// swap and the loser gets ErrAlreadySubmitted. A crash between the two writes
// leaves orphaned selections behind an open session, which a retry simply
// overwrites (selections are keyed per pair).
func (s *SelectionService) SubmitSelections(ctx context.Context, token string, entries []SelectionEntry) (*SubmitResult, error) {
	result, err := s.submit(ctx, token, entries)
	if err != nil {
		metrics.SubmissionsRejected.Inc()
		return nil, err
	}
	metrics.SubmissionsAccepted.Inc()
	return result, nil
}

func (s *SelectionService) submit(ctx context.Context, token string, entries []SelectionEntry) (*SubmitResult, error) {
	now := time.Now()

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
	if session.IsExpired(now) {
		return nil, ErrSessionExpired
	}

	event, err := s.Events.GetEvent(ctx, session.EventID)
	if err != nil {
		return nil, err
	}
	if event.ProcessingStarted() {
		return nil, ErrProcessingStarted
	}

	participant, err := s.Participants.GetParticipant(ctx, session.ParticipantID)
	if err != nil {
		return nil, err
	}
	participants, err := s.Participants.ListEventParticipants(ctx, session.EventID)
	if err != nil {
		return nil, err
	}

	selectable := SelectableParticipants(event, participant, participants)
	selectableIDs := make(map[string]bool, len(selectable))
	for _, candidate := range selectable {
		selectableIDs[candidate.ParticipantID] = true
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if !models.IsValidSelectionType(entry.SelectionType) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelectionType, entry.SelectionType)
		}
		if !selectableIDs[entry.SelectedParticipantID] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, entry.SelectedParticipantID)
		}
		if seen[entry.SelectedParticipantID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTarget, entry.SelectedParticipantID)
		}
		seen[entry.SelectedParticipantID] = true
	}
	if len(seen) != len(selectableIDs) {
		return nil, fmt.Errorf("%w: got %d of %d", ErrIncompleteSelection, len(seen), len(selectableIDs))
	}

	createdAt := now.UTC().Format(time.RFC3339)
	selections := make([]models.Selection, 0, len(entries))
	summary := make(map[string]int)
	for _, entry := range entries {
		selections = append(selections, models.Selection{
			EventID:               session.EventID,
			PairKey:               models.SelectionPairKey(session.ParticipantID, entry.SelectedParticipantID),
			ParticipantID:         session.ParticipantID,
			SelectedParticipantID: entry.SelectedParticipantID,
			SelectionType:         entry.SelectionType,
			CreatedAt:             createdAt,
		})
		summary[entry.SelectionType]++
	}

	if err := s.Selections.PutSelections(ctx, selections); err != nil {
		return nil, err
	}
	if err := s.Sessions.MarkSubmitted(ctx, token, now); err != nil {
		return nil, err
	}

	log.Printf("📝 Selections submitted: participant %s, event %s (%d selections)",
		session.ParticipantID, session.EventID, len(selections))

	return &SubmitResult{
		ParticipantID:    session.ParticipantID,
		EventID:          session.EventID,
		SelectionCount:   len(selections),
		SelectionSummary: summary,
		SubmittedAt:      createdAt,
	}, nil
}
