package services

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"

	"datenight_server/models"
)

var allSelectionTypes = []string{
	models.SelectionTypePass,
	models.SelectionTypeFriend,
	models.SelectionTypeMatch,
	models.SelectionTypeMatchAndFriend,
}

func TestDetermineMatchTypeScenarios(t *testing.T) {
	cases := []struct {
		first, second, want string
	}{
		{models.SelectionTypeMatch, models.SelectionTypeMatch, models.MatchTypeRomantic},
		{models.SelectionTypeFriend, models.SelectionTypeFriend, models.MatchTypePlatonic},
		{models.SelectionTypeMatch, models.SelectionTypeFriend, models.MatchTypeNone},
		{models.SelectionTypePass, models.SelectionTypeMatchAndFriend, models.MatchTypeNone},
		{models.SelectionTypeMatchAndFriend, models.SelectionTypeMatch, models.MatchTypeRomantic},
		{models.SelectionTypeMatchAndFriend, models.SelectionTypeFriend, models.MatchTypePlatonic},
		// Mutual "Match & Friend" satisfies both rules; romantic wins the tie-break
		{models.SelectionTypeMatchAndFriend, models.SelectionTypeMatchAndFriend, models.MatchTypeRomantic},
		{models.SelectionTypePass, models.SelectionTypePass, models.MatchTypeNone},
	}

	for _, tc := range cases {
		if got := DetermineMatchType(tc.first, tc.second); got != tc.want {
			t.Errorf("DetermineMatchType(%q, %q) = %q, want %q", tc.first, tc.second, got, tc.want)
		}
	}
}

func TestDetermineMatchTypeCommutative(t *testing.T) {
	for _, first := range allSelectionTypes {
		for _, second := range allSelectionTypes {
			forward := DetermineMatchType(first, second)
			backward := DetermineMatchType(second, first)
			if forward != backward {
				t.Errorf("not commutative: (%q, %q) = %q but (%q, %q) = %q",
					first, second, forward, second, first, backward)
			}
		}
	}
}

func TestDetermineMatchTypePassDominates(t *testing.T) {
	for _, other := range allSelectionTypes {
		if got := DetermineMatchType(models.SelectionTypePass, other); got != models.MatchTypeNone {
			t.Errorf("DetermineMatchType(Pass, %q) = %q, want %q", other, got, models.MatchTypeNone)
		}
	}
}

func TestDetermineMatchTypeCompleteness(t *testing.T) {
	// Every ordered combination of the four types must resolve to a known
	// outcome, and unknown inputs must fall through to no match.
	for _, first := range allSelectionTypes {
		for _, second := range allSelectionTypes {
			switch DetermineMatchType(first, second) {
			case models.MatchTypeNone, models.MatchTypeRomantic, models.MatchTypePlatonic:
			default:
				t.Errorf("DetermineMatchType(%q, %q) returned an unknown outcome", first, second)
			}
		}
	}
	if got := DetermineMatchType("Maybe", models.SelectionTypeMatch); got != models.MatchTypeNone {
		t.Errorf("unknown selection type resolved to %q, want %q", got, models.MatchTypeNone)
	}
}

func testParticipants() []models.Participant {
	return []models.Participant{
		{ParticipantID: "p001", EventID: "evt1", Name: "Sarah", Email: "sarah@email.com", Phone: "555-0101", Gender: "Female", CheckedIn: true},
		{ParticipantID: "p002", EventID: "evt1", Name: "Mike", Email: "mike@email.com", Phone: "555-0102", Gender: "Male", CheckedIn: true},
		{ParticipantID: "p003", EventID: "evt1", Name: "Emma", Email: "emma@email.com", Phone: "555-0103", Gender: "Female", CheckedIn: true},
		{ParticipantID: "p004", EventID: "evt1", Name: "James", Email: "james@email.com", Phone: "555-0104", Gender: "Male", CheckedIn: true},
	}
}

func selection(source, target, selectionType string) models.Selection {
	return models.Selection{
		EventID:               "evt1",
		PairKey:               models.SelectionPairKey(source, target),
		ParticipantID:         source,
		SelectedParticipantID: target,
		SelectionType:         selectionType,
	}
}

func TestRunMatchingMutualOutcomes(t *testing.T) {
	selections := []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatch),
		selection("p002", "p001", models.SelectionTypeMatch),
		selection("p001", "p004", models.SelectionTypeFriend),
		selection("p004", "p001", models.SelectionTypeFriend),
		selection("p003", "p002", models.SelectionTypeMatch),
		selection("p002", "p003", models.SelectionTypeFriend),
	}

	matches := RunMatching("evt1", selections, testParticipants(), time.Now())

	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	byPair := make(map[string]models.Match)
	for _, match := range matches {
		byPair[match.Participant1ID+"#"+match.Participant2ID] = match
	}

	romantic, ok := byPair["p001#p002"]
	if !ok || romantic.MatchType != models.MatchTypeRomantic {
		t.Fatalf("expected romantic match for p001/p002, got %+v", byPair)
	}
	// Romantic matches disclose phone numbers on both sides
	if romantic.Participant1Contact.Phone != "555-0101" || romantic.Participant2Contact.Phone != "555-0102" {
		t.Errorf("romantic match must disclose phones, got %+v / %+v",
			romantic.Participant1Contact, romantic.Participant2Contact)
	}
	if romantic.Participant1Contact.Email != "sarah@email.com" {
		t.Errorf("unexpected contact email: %q", romantic.Participant1Contact.Email)
	}

	platonic, ok := byPair["p001#p004"]
	if !ok || platonic.MatchType != models.MatchTypePlatonic {
		t.Fatalf("expected platonic match for p001/p004, got %+v", byPair)
	}
	// Platonic matches withhold phones
	if platonic.Participant1Contact.Phone != "" || platonic.Participant2Contact.Phone != "" {
		t.Errorf("platonic match must not disclose phones, got %+v / %+v",
			platonic.Participant1Contact, platonic.Participant2Contact)
	}

	// p002/p003 was Match vs Friend: incompatible, no record
	if _, ok := byPair["p002#p003"]; ok {
		t.Error("Match vs Friend pair must not produce a match record")
	}
}

func TestRunMatchingIgnoresOneSidedPairs(t *testing.T) {
	// p002 never submitted anything about p001: the pair is unresolved,
	// which is different from an expressed Pass.
	selections := []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatch),
	}

	matches := RunMatching("evt1", selections, testParticipants(), time.Now())
	if len(matches) != 0 {
		t.Fatalf("one-sided pair must produce no outcome, got %d matches", len(matches))
	}
}

func TestRunMatchingDeterministic(t *testing.T) {
	selections := []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatchAndFriend),
		selection("p002", "p001", models.SelectionTypeMatch),
		selection("p003", "p004", models.SelectionTypeFriend),
		selection("p004", "p003", models.SelectionTypeMatchAndFriend),
		selection("p001", "p004", models.SelectionTypePass),
		selection("p004", "p001", models.SelectionTypeMatch),
	}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first := RunMatching("evt1", selections, testParticipants(), now)

	// Same selection set in a different order must reproduce the identical
	// match set, ids included.
	shuffled := []models.Selection{selections[4], selections[1], selections[5], selections[0], selections[3], selections[2]}
	second := RunMatching("evt1", shuffled, testParticipants(), now)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("matching is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	if len(first) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(first))
	}
	if first[0].MatchType != models.MatchTypeRomantic || first[1].MatchType != models.MatchTypePlatonic {
		t.Errorf("unexpected outcomes: %q, %q", first[0].MatchType, first[1].MatchType)
	}
}

func TestBuildMatchSummary(t *testing.T) {
	participants := testParticipants()
	matches := RunMatching("evt1", []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatch),
		selection("p002", "p001", models.SelectionTypeMatch),
	}, participants, time.Now())

	summary := BuildMatchSummary(matches, participants)
	if summary.TotalParticipants != 4 || summary.TotalMatches != 1 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.RomanticMatches != 1 || summary.PlatonicMatches != 0 {
		t.Fatalf("unexpected per-type counts: %+v", summary)
	}
	if summary.ParticipantsWithMatches != 2 {
		t.Fatalf("expected 2 participants with matches, got %d", summary.ParticipantsWithMatches)
	}
	// 2 of 4 participants matched
	if summary.MatchRate != 50 {
		t.Errorf("expected match rate 50, got %d", summary.MatchRate)
	}
}

func TestBuildMatchSummaryRoundsMatchRate(t *testing.T) {
	participants := []models.Participant{
		{ParticipantID: "a"}, {ParticipantID: "b"}, {ParticipantID: "c"},
	}
	matches := []models.Match{
		{Participant1ID: "a", Participant2ID: "b", MatchType: models.MatchTypePlatonic},
	}

	summary := BuildMatchSummary(matches, participants)
	// 2/3 = 66.67 rounds to 67
	if summary.MatchRate != 67 {
		t.Errorf("expected match rate 67, got %d", summary.MatchRate)
	}

	empty := BuildMatchSummary(nil, nil)
	if empty.MatchRate != 0 || empty.TotalMatches != 0 {
		t.Errorf("empty summary must be all zeros, got %+v", empty)
	}
}

func TestProcessMatchesIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sent := time.Now().UTC().Format(time.RFC3339)
	event := &models.Event{
		EventID:              "evt1",
		Name:                 "Singles Night",
		Status:               models.EventStatusCompleted,
		SelectionLinksSentAt: &sent,
	}
	if err := store.PutEvent(ctx, event); err != nil {
		t.Fatal(err)
	}
	for _, participant := range testParticipants() {
		p := participant
		if err := store.PutParticipant(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.PutSelections(ctx, []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatch),
		selection("p002", "p001", models.SelectionTypeMatchAndFriend),
		selection("p003", "p004", models.SelectionTypeFriend),
		selection("p004", "p003", models.SelectionTypeFriend),
	}); err != nil {
		t.Fatal(err)
	}

	service := &MatchService{Events: store, Participants: store, Selections: store, Matches: store}

	firstSummary, err := service.ProcessMatches(ctx, "evt1")
	if err != nil {
		t.Fatalf("first processing run failed: %v", err)
	}
	firstMatches, _ := store.ListEventMatches(ctx, "evt1")

	secondSummary, err := service.ProcessMatches(ctx, "evt1")
	if err != nil {
		t.Fatalf("second processing run failed: %v", err)
	}
	secondMatches, _ := store.ListEventMatches(ctx, "evt1")

	if !reflect.DeepEqual(firstSummary, secondSummary) {
		t.Errorf("summaries differ between runs: %+v vs %+v", firstSummary, secondSummary)
	}
	if len(firstMatches) != len(secondMatches) {
		t.Fatalf("reprocessing changed the match count: %d vs %d", len(firstMatches), len(secondMatches))
	}
	sortMatches := func(matches []models.Match) {
		sort.Slice(matches, func(i, j int) bool { return matches[i].MatchID < matches[j].MatchID })
	}
	sortMatches(firstMatches)
	sortMatches(secondMatches)
	for i := range firstMatches {
		if firstMatches[i].MatchID != secondMatches[i].MatchID || firstMatches[i].MatchType != secondMatches[i].MatchType {
			t.Errorf("reprocessing changed match %d: %+v vs %+v", i, firstMatches[i], secondMatches[i])
		}
	}
}

func TestProcessMatchesRequiresDistribution(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.PutEvent(ctx, &models.Event{EventID: "evt1", Status: models.EventStatusCompleted}); err != nil {
		t.Fatal(err)
	}

	service := &MatchService{Events: store, Participants: store, Selections: store, Matches: store}
	if _, err := service.ProcessMatches(ctx, "evt1"); err == nil {
		t.Fatal("processing before link distribution must fail")
	}
}

func TestParticipantResultsIncludesEmptySheets(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, participant := range testParticipants() {
		p := participant
		if err := store.PutParticipant(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	matches := RunMatching("evt1", []models.Selection{
		selection("p001", "p002", models.SelectionTypeMatch),
		selection("p002", "p001", models.SelectionTypeMatch),
	}, testParticipants(), time.Now())
	if err := store.ReplaceEventMatches(ctx, "evt1", matches); err != nil {
		t.Fatal(err)
	}

	service := &MatchService{Events: store, Participants: store, Selections: store, Matches: store}
	results, err := service.ParticipantResults(ctx, "evt1")
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 4 {
		t.Fatalf("every participant gets a result sheet, got %d of 4", len(results))
	}

	byID := make(map[string]models.ParticipantMatches)
	for _, result := range results {
		byID[result.ParticipantID] = result
	}

	sarah := byID["p001"]
	if len(sarah.RomanticMatches) != 1 || sarah.RomanticMatches[0].Phone != "555-0102" {
		t.Errorf("expected Sarah to receive Mike's phone, got %+v", sarah.RomanticMatches)
	}

	// Unmatched participants still get a well-formed empty sheet
	emma := byID["p003"]
	if emma.RomanticMatches == nil || emma.PlatonicMatches == nil {
		t.Error("empty result sheet must have empty lists, not nil")
	}
	if len(emma.RomanticMatches) != 0 || len(emma.PlatonicMatches) != 0 {
		t.Errorf("expected no matches for Emma, got %+v", emma)
	}
}
