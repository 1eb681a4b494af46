package models

// ContactInfo is the contact payload disclosed to the other side of a match.
// Phone is only present for romantic matches.
type ContactInfo struct {
	Name  string `dynamodbav:"name" json:"name"`
	Email string `dynamodbav:"email" json:"email"`
	Phone string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
}

// Match is a resolved mutual outcome between two participants. Matches are
// derived data: processing replaces the whole set for an event, so match ids
// are deterministic per (event, pair) and reruns overwrite rather than append.
type Match struct {
	EventID             string      `dynamodbav:"eventId" json:"event_id"` // Partition Key
	MatchID             string      `dynamodbav:"matchId" json:"match_id"` // Sort Key
	Participant1ID      string      `dynamodbav:"participant1Id" json:"participant1_id"`
	Participant2ID      string      `dynamodbav:"participant2Id" json:"participant2_id"`
	MatchType           string      `dynamodbav:"matchType" json:"match_type"` // romantic_match, platonic_match
	Participant1Contact ContactInfo `dynamodbav:"participant1Contact" json:"participant1_contact"`
	Participant2Contact ContactInfo `dynamodbav:"participant2Contact" json:"participant2_contact"`
	CreatedAt           string      `dynamodbav:"createdAt" json:"created_at"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"
