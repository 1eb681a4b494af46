package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datenight_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore implements every store interface on top of DynamoDB.
// Table and index names follow the models package constants.
type DynamoStore struct {
	Dynamo *DynamoService
}

// NewDynamoStore creates a store backed by the given DynamoDB wrapper
func NewDynamoStore(dynamo *DynamoService) *DynamoStore {
	return &DynamoStore{Dynamo: dynamo}
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// --- EventStore ---

func (s *DynamoStore) PutEvent(ctx context.Context, event *models.Event) error {
	return s.Dynamo.PutItem(ctx, models.EventsTable, event)
}

func (s *DynamoStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	item, err := s.Dynamo.GetItem(ctx, models.EventsTable, stringKey("eventId", eventID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var event models.Event
	if err := attributevalue.UnmarshalMap(item, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func (s *DynamoStore) UpdateEventStatus(ctx context.Context, eventID, status string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.EventsTable,
		"SET #s = :status, updatedAt = :updatedAt",
		stringKey("eventId", eventID),
		map[string]types.AttributeValue{
			":status":    &types.AttributeValueMemberS{Value: status},
			":updatedAt": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		map[string]string{"#s": "status"},
		"")
	return err
}

func (s *DynamoStore) MarkSelectionLinksSent(ctx context.Context, eventID string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.EventsTable,
		"SET selectionLinksSentAt = :at, updatedAt = :at",
		stringKey("eventId", eventID),
		map[string]types.AttributeValue{
			":at": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		nil,
		"")
	return err
}

func (s *DynamoStore) MarkMatchesProcessed(ctx context.Context, eventID string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.EventsTable,
		"SET matchesProcessedAt = :at, updatedAt = :at",
		stringKey("eventId", eventID),
		map[string]types.AttributeValue{
			":at": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		nil,
		"")
	return err
}

// --- ParticipantStore ---

func (s *DynamoStore) PutParticipant(ctx context.Context, participant *models.Participant) error {
	return s.Dynamo.PutItem(ctx, models.ParticipantsTable, participant)
}

func (s *DynamoStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	item, err := s.Dynamo.GetItem(ctx, models.ParticipantsTable, stringKey("participantId", participantID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	var participant models.Participant
	if err := attributevalue.UnmarshalMap(item, &participant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}
	return &participant, nil
}

func (s *DynamoStore) ListEventParticipants(ctx context.Context, eventID string) ([]models.Participant, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ParticipantsTable, models.ParticipantEventIndex,
		"eventId = :eventId",
		map[string]types.AttributeValue{
			":eventId": &types.AttributeValueMemberS{Value: eventID},
		},
		nil)
	if err != nil {
		return nil, err
	}

	var participants []models.Participant
	if err := attributevalue.UnmarshalListOfMaps(items, &participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}
	return participants, nil
}

func (s *DynamoStore) SetCheckedIn(ctx context.Context, participantID string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.ParticipantsTable,
		"SET checkedIn = :checkedIn, checkedInAt = :at",
		stringKey("participantId", participantID),
		map[string]types.AttributeValue{
			":checkedIn": &types.AttributeValueMemberBOOL{Value: true},
			":at":        &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		nil,
		"")
	return err
}

// --- SessionStore ---

func (s *DynamoStore) PutSession(ctx context.Context, session *models.SelectionSession) error {
	return s.Dynamo.PutItem(ctx, models.SelectionSessionsTable, session)
}

func (s *DynamoStore) GetSession(ctx context.Context, token string) (*models.SelectionSession, error) {
	item, err := s.Dynamo.GetItem(ctx, models.SelectionSessionsTable, stringKey("token", token))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session models.SelectionSession
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *DynamoStore) ListParticipantSessions(ctx context.Context, eventID, participantID string) ([]models.SelectionSession, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.SelectionSessionsTable, models.SessionParticipantIndex,
		"participantId = :participantId",
		map[string]types.AttributeValue{
			":participantId": &types.AttributeValueMemberS{Value: participantID},
		},
		nil)
	if err != nil {
		return nil, err
	}

	var sessions []models.SelectionSession
	if err := attributevalue.UnmarshalListOfMaps(items, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	filtered := sessions[:0]
	for _, session := range sessions {
		if session.EventID == eventID {
			filtered = append(filtered, session)
		}
	}
	return filtered, nil
}

// MarkSubmitted sets submittedAt under the condition that it was never set.
// The condition makes concurrent submits race safely: exactly one request
// wins the swap, every other one gets ErrAlreadySubmitted.
func (s *DynamoStore) MarkSubmitted(ctx context.Context, token string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.SelectionSessionsTable,
		"SET submittedAt = :at",
		stringKey("token", token),
		map[string]types.AttributeValue{
			":at": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		nil,
		"attribute_not_exists(submittedAt)")
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return ErrAlreadySubmitted
		}
		return err
	}
	return nil
}

func (s *DynamoStore) InvalidateSession(ctx context.Context, token string, at time.Time) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.SelectionSessionsTable,
		"SET invalidatedAt = :at",
		stringKey("token", token),
		map[string]types.AttributeValue{
			":at": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
		},
		nil,
		"attribute_not_exists(submittedAt)")
	if err != nil {
		// A submitted session no longer needs revoking
		if errors.Is(err, ErrConditionFailed) {
			return nil
		}
		return err
	}
	return nil
}

// --- SelectionStore ---

func (s *DynamoStore) PutSelections(ctx context.Context, selections []models.Selection) error {
	writeRequests := make([]types.WriteRequest, 0, len(selections))
	for _, selection := range selections {
		item, err := attributevalue.MarshalMap(selection)
		if err != nil {
			return fmt.Errorf("failed to marshal selection: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	return s.Dynamo.BatchWriteItems(ctx, models.SelectionsTable, writeRequests)
}

func (s *DynamoStore) ListEventSelections(ctx context.Context, eventID string) ([]models.Selection, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.SelectionsTable,
		"eventId = :eventId",
		map[string]types.AttributeValue{
			":eventId": &types.AttributeValueMemberS{Value: eventID},
		},
		nil)
	if err != nil {
		return nil, err
	}

	var selections []models.Selection
	if err := attributevalue.UnmarshalListOfMaps(items, &selections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selections: %w", err)
	}
	return selections, nil
}

// --- MatchStore ---

// ReplaceEventMatches deletes the event's existing matches and writes the new
// set. Match ids are deterministic, so a concurrent duplicate run converges
// on the same records instead of appending.
func (s *DynamoStore) ReplaceEventMatches(ctx context.Context, eventID string, matches []models.Match) error {
	existing, err := s.ListEventMatches(ctx, eventID)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		deleteRequests := make([]types.WriteRequest, 0, len(existing))
		for _, match := range existing {
			deleteRequests = append(deleteRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"eventId": &types.AttributeValueMemberS{Value: match.EventID},
						"matchId": &types.AttributeValueMemberS{Value: match.MatchID},
					},
				},
			})
		}
		if err := s.Dynamo.BatchWriteItems(ctx, models.MatchesTable, deleteRequests); err != nil {
			return err
		}
	}

	if len(matches) == 0 {
		return nil
	}

	putRequests := make([]types.WriteRequest, 0, len(matches))
	for _, match := range matches {
		item, err := attributevalue.MarshalMap(match)
		if err != nil {
			return fmt.Errorf("failed to marshal match: %w", err)
		}
		putRequests = append(putRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	return s.Dynamo.BatchWriteItems(ctx, models.MatchesTable, putRequests)
}

func (s *DynamoStore) ListEventMatches(ctx context.Context, eventID string) ([]models.Match, error) {
	items, err := s.Dynamo.QueryItems(ctx, models.MatchesTable,
		"eventId = :eventId",
		map[string]types.AttributeValue{
			":eventId": &types.AttributeValueMemberS{Value: eventID},
		},
		nil)
	if err != nil {
		return nil, err
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}
	return matches, nil
}
