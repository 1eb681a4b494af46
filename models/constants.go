package models

// Selection types a participant can pick for another participant.
// These are the exact wire values the selection form submits.
const (
	SelectionTypePass           = "Pass"
	SelectionTypeFriend         = "Friend"
	SelectionTypeMatch          = "Match"
	SelectionTypeMatchAndFriend = "Match & Friend"
)

// Match types produced by the resolution engine
const (
	MatchTypeNone     = "no_match"
	MatchTypeRomantic = "romantic_match"
	MatchTypePlatonic = "platonic_match"
)

// Event statuses
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
)

// IsValidSelectionType reports whether s is one of the four selection types
func IsValidSelectionType(s string) bool {
	switch s {
	case SelectionTypePass, SelectionTypeFriend, SelectionTypeMatch, SelectionTypeMatchAndFriend:
		return true
	}
	return false
}

// IsValidEventStatus reports whether s is a known event status
func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusCompleted:
		return true
	}
	return false
}

// legal event status transitions
var eventTransitions = map[string][]string{
	EventStatusUpcoming:  {EventStatusActive},
	EventStatusActive:    {EventStatusCompleted},
	EventStatusCompleted: {},
}

// CanTransitionEventStatus reports whether an event may move from one status to another
func CanTransitionEventStatus(from, to string) bool {
	for _, next := range eventTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
