package models

// Participant represents one registered attendee of an event
type Participant struct {
	ParticipantID string `dynamodbav:"participantId" json:"participant_id"` // Partition Key
	EventID       string `dynamodbav:"eventId" json:"event_id"`             // Used in event-index GSI
	Name          string `dynamodbav:"name" json:"name"`
	Email         string `dynamodbav:"email" json:"email"`
	Phone         string `dynamodbav:"phone" json:"phone"`
	Age           int    `dynamodbav:"age" json:"age"`
	Gender        string `dynamodbav:"gender" json:"gender"`
	CheckedIn     bool   `dynamodbav:"checkedIn" json:"checked_in"`
	CheckedInAt   string `dynamodbav:"checkedInAt,omitempty" json:"checked_in_at,omitempty"`
	CreatedAt     string `dynamodbav:"createdAt" json:"created_at"`
}

// ParticipantsTable is the DynamoDB table name for participants
const ParticipantsTable = "Participants"

// ParticipantEventIndex is the GSI for querying participants by event
const ParticipantEventIndex = "event-index"
