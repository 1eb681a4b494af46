package models

// Selection is one participant's stated disposition toward one other
// participant. Written once as part of a session's submission batch, never
// mutated. The pair key keeps the (event, source, target) triple unique.
type Selection struct {
	EventID               string `dynamodbav:"eventId" json:"event_id"` // Partition Key
	PairKey               string `dynamodbav:"pairKey" json:"-"`        // Sort Key: participantId#selectedParticipantId
	ParticipantID         string `dynamodbav:"participantId" json:"participant_id"`
	SelectedParticipantID string `dynamodbav:"selectedParticipantId" json:"selected_participant_id"`
	SelectionType         string `dynamodbav:"selectionType" json:"selection_type"` // Pass, Friend, Match, Match & Friend
	CreatedAt             string `dynamodbav:"createdAt" json:"created_at"`
}

// SelectionsTable is the DynamoDB table name for selections
const SelectionsTable = "Selections"

// SelectionPairKey builds the sort key for a directed selection
func SelectionPairKey(participantID, selectedParticipantID string) string {
	return participantID + "#" + selectedParticipantID
}
