package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"datenight_server/models"

	"github.com/google/uuid"
)

// EventService handles event lifecycle and participant registration/check-in
type EventService struct {
	Events       EventStore
	Participants ParticipantStore
}

// CreateEvent creates a new event in the upcoming state
func (s *EventService) CreateEvent(ctx context.Context, name, date, venue string, allowSameGenderSelection bool) (*models.Event, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	event := &models.Event{
		EventID:                  uuid.New().String(),
		Name:                     name,
		Date:                     date,
		Venue:                    venue,
		Status:                   models.EventStatusUpcoming,
		AllowSameGenderSelection: allowSameGenderSelection,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.Events.PutEvent(ctx, event); err != nil {
		return nil, err
	}

	log.Printf("📅 Event created: %s (%s)", event.Name, event.EventID)
	return event, nil
}

// GetEvent fetches a single event
func (s *EventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return s.Events.GetEvent(ctx, eventID)
}

// UpdateStatus moves an event along its lifecycle. Only the forward
// transitions upcoming→active→completed are legal.
func (s *EventService) UpdateStatus(ctx context.Context, eventID, status string) (*models.Event, error) {
	if !models.IsValidEventStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionEventStatus(event.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, event.Status, status)
	}

	now := time.Now()
	if err := s.Events.UpdateEventStatus(ctx, eventID, status, now); err != nil {
		return nil, err
	}

	event.Status = status
	event.UpdatedAt = now.UTC().Format(time.RFC3339)
	log.Printf("🔄 Event %s status changed to: %s", eventID, status)
	return event, nil
}

// RegisterParticipant adds a participant to an event that has not yet ended
func (s *EventService) RegisterParticipant(ctx context.Context, eventID, name, email, phone string, age int, gender string) (*models.Participant, error) {
	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == models.EventStatusCompleted {
		return nil, fmt.Errorf("%w: event already completed", ErrNotEligible)
	}

	participant := &models.Participant{
		ParticipantID: uuid.New().String(),
		EventID:       eventID,
		Name:          name,
		Email:         email,
		Phone:         phone,
		Age:           age,
		Gender:        gender,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Participants.PutParticipant(ctx, participant); err != nil {
		return nil, err
	}

	log.Printf("👤 Participant registered: %s for event %s", participant.Name, eventID)
	return participant, nil
}

// CheckInParticipant marks physical attendance. Allowed only while the event
// is active.
func (s *EventService) CheckInParticipant(ctx context.Context, eventID, participantID string) (*models.Participant, error) {
	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.CanCheckIn() {
		return nil, fmt.Errorf("%w: check-in requires an active event", ErrNotEligible)
	}

	participant, err := s.Participants.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant.EventID != eventID {
		return nil, ErrParticipantNotFound
	}

	now := time.Now()
	if err := s.Participants.SetCheckedIn(ctx, participantID, now); err != nil {
		return nil, err
	}

	participant.CheckedIn = true
	participant.CheckedInAt = now.UTC().Format(time.RFC3339)
	log.Printf("✅ Checked in: %s (%s)", participant.Name, participantID)
	return participant, nil
}
