package services

import "errors"

// Sentinel errors surfaced by the selection/matching core. Controllers map
// these to HTTP statuses; everything else is treated as a 500.
var (
	// ErrSessionNotFound covers unknown, malformed and revoked tokens alike
	// so a caller cannot probe which tokens exist.
	ErrSessionNotFound = errors.New("selection session not found")

	// ErrSessionExpired means the 24h selection window has closed.
	ErrSessionExpired = errors.New("selection session expired")

	// ErrAlreadySubmitted means the session's single submission already
	// happened; replays and double-clicks land here.
	ErrAlreadySubmitted = errors.New("selections already submitted")

	// ErrProcessingStarted rejects submissions arriving after match
	// processing has run for the event.
	ErrProcessingStarted = errors.New("match processing already started for this event")

	// ErrNotEligible covers operations attempted in the wrong event state,
	// e.g. check-in outside an active event or link distribution before
	// the event completed.
	ErrNotEligible = errors.New("operation not allowed in current event state")

	// ErrNoCheckedInParticipants means link distribution found nobody to send to.
	ErrNoCheckedInParticipants = errors.New("no checked-in participants found")

	// Submission content errors. The whole submission is rejected; there is
	// no partial acceptance.
	ErrIncompleteSelection  = errors.New("selections must cover every selectable participant")
	ErrUnknownTarget        = errors.New("selection targets a participant outside the selectable set")
	ErrDuplicateTarget      = errors.New("duplicate selection target")
	ErrInvalidSelectionType = errors.New("invalid selection type")

	ErrInvalidTransition   = errors.New("invalid event status transition")
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
)
