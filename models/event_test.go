package models

import (
	"testing"
	"time"
)

func TestCanTransitionEventStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{EventStatusUpcoming, EventStatusActive, true},
		{EventStatusActive, EventStatusCompleted, true},
		{EventStatusUpcoming, EventStatusCompleted, false},
		{EventStatusActive, EventStatusUpcoming, false},
		{EventStatusCompleted, EventStatusActive, false},
		{EventStatusCompleted, EventStatusUpcoming, false},
		{EventStatusCompleted, EventStatusCompleted, false},
		{"archived", EventStatusActive, false},
	}

	for _, tc := range cases {
		if got := CanTransitionEventStatus(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransitionEventStatus(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestEventGates(t *testing.T) {
	event := &Event{EventID: "evt1", Status: EventStatusActive}
	if !event.CanCheckIn() {
		t.Error("check-in must be open while the event is active")
	}
	if event.CanDistributeSelections() {
		t.Error("selection links must wait for completion")
	}

	event.Status = EventStatusCompleted
	if event.CanCheckIn() {
		t.Error("check-in must close once the event completes")
	}
	if !event.CanDistributeSelections() {
		t.Error("completed events distribute selection links")
	}

	// Matching needs the links to have gone out first
	if event.CanProcessMatches() {
		t.Error("matching must wait for link distribution")
	}
	sent := time.Now().UTC().Format(time.RFC3339)
	event.SelectionLinksSentAt = &sent
	if !event.CanProcessMatches() {
		t.Error("completed event with links sent must allow matching")
	}

	if event.ProcessingStarted() {
		t.Error("processing has not started yet")
	}
	event.MatchesProcessedAt = &sent
	if !event.ProcessingStarted() {
		t.Error("processing marker must flip ProcessingStarted")
	}
}

func TestIsValidSelectionType(t *testing.T) {
	for _, valid := range []string{SelectionTypePass, SelectionTypeFriend, SelectionTypeMatch, SelectionTypeMatchAndFriend} {
		if !IsValidSelectionType(valid) {
			t.Errorf("%q must be a valid selection type", valid)
		}
	}
	for _, invalid := range []string{"", "pass", "match & friend", "Maybe"} {
		if IsValidSelectionType(invalid) {
			t.Errorf("%q must not be a valid selection type", invalid)
		}
	}
}

func TestSelectionSessionClock(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	session := &SelectionSession{
		Token:     "tok",
		ExpiresAt: now.Add(time.Hour).Format(time.RFC3339),
	}

	if session.IsExpired(now) {
		t.Error("session expiring in an hour is not expired")
	}
	if session.IsExpired(now.Add(59 * time.Minute)) {
		t.Error("session is still inside its window")
	}
	if !session.IsExpired(now.Add(2 * time.Hour)) {
		t.Error("session past its window must read as expired")
	}
	if !session.IsOpen(now) {
		t.Error("fresh session must be open")
	}

	submitted := now.Format(time.RFC3339)
	session.SubmittedAt = &submitted
	if session.IsOpen(now) {
		t.Error("submitted session is not open")
	}

	garbled := &SelectionSession{Token: "tok2", ExpiresAt: "not-a-timestamp"}
	if !garbled.IsExpired(now) {
		t.Error("unparseable expiry must fail closed")
	}
}
