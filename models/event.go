package models

// Event represents one speed-dating event
type Event struct {
	EventID                  string  `dynamodbav:"eventId" json:"event_id"` // Partition Key
	Name                     string  `dynamodbav:"name" json:"name"`
	Date                     string  `dynamodbav:"date" json:"date"`
	Venue                    string  `dynamodbav:"venue" json:"venue"`
	Status                   string  `dynamodbav:"status" json:"status"` // upcoming, active, completed
	AllowSameGenderSelection bool    `dynamodbav:"allowSameGenderSelection" json:"allow_same_gender_selection"`
	SelectionLinksSentAt     *string `dynamodbav:"selectionLinksSentAt,omitempty" json:"selection_links_sent_at,omitempty"`
	MatchesProcessedAt       *string `dynamodbav:"matchesProcessedAt,omitempty" json:"matches_processed_at,omitempty"`
	CreatedAt                string  `dynamodbav:"createdAt" json:"created_at"`
	UpdatedAt                string  `dynamodbav:"updatedAt" json:"updated_at"`
}

// EventsTable is the DynamoDB table name for events
const EventsTable = "Events"

// CanCheckIn reports whether participants may check in (only while the event is running)
func (e *Event) CanCheckIn() bool {
	return e.Status == EventStatusActive
}

// CanDistributeSelections reports whether selection links may be sent
// (only after the event has wrapped up)
func (e *Event) CanDistributeSelections() bool {
	return e.Status == EventStatusCompleted
}

// CanProcessMatches reports whether match processing may run
// (only after selection links went out)
func (e *Event) CanProcessMatches() bool {
	return e.Status == EventStatusCompleted && e.SelectionLinksSentAt != nil
}

// ProcessingStarted reports whether match processing has already run for this event
func (e *Event) ProcessingStarted() bool {
	return e.MatchesProcessedAt != nil
}
