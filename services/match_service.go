package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"datenight_server/metrics"
	"datenight_server/models"

	"github.com/google/uuid"
)

// MatchService resolves submitted selections into mutual matches and reports
// on them
type MatchService struct {
	Events       EventStore
	Participants ParticipantStore
	Selections   SelectionStore
	Matches      MatchStore
}

// DetermineMatchType combines the two directed selections of a pair into one
// outcome. The reduction is symmetric: swapping the arguments never changes
// the result.
//
//   - Pass on either side wins over everything.
//   - Both sides willing to date (Match or Match & Friend) -> romantic.
//   - Both sides willing to befriend (Friend or Match & Friend) -> platonic.
//     Romantic is checked first, so mutual "Match & Friend" resolves
//     romantically.
//   - Plain Match against plain Friend satisfies neither rule -> no match.
//
// Every other input, including unknown strings, falls through to no match.
func DetermineMatchType(first, second string) string {
	if first == models.SelectionTypePass || second == models.SelectionTypePass {
		return models.MatchTypeNone
	}

	wantsRomance := func(selection string) bool {
		return selection == models.SelectionTypeMatch || selection == models.SelectionTypeMatchAndFriend
	}
	wantsFriendship := func(selection string) bool {
		return selection == models.SelectionTypeFriend || selection == models.SelectionTypeMatchAndFriend
	}

	if wantsRomance(first) && wantsRomance(second) {
		return models.MatchTypeRomantic
	}
	if wantsFriendship(first) && wantsFriendship(second) {
		return models.MatchTypePlatonic
	}
	return models.MatchTypeNone
}

// ContactInfoForMatch returns the contact payloads each side may see.
// Romantic matches disclose name, email and phone; platonic matches withhold
// the phone. The policy is fixed, not per-event.
func ContactInfoForMatch(matchType string, participant1, participant2 *models.Participant) (models.ContactInfo, models.ContactInfo) {
	switch matchType {
	case models.MatchTypeRomantic:
		return models.ContactInfo{Name: participant1.Name, Email: participant1.Email, Phone: participant1.Phone},
			models.ContactInfo{Name: participant2.Name, Email: participant2.Email, Phone: participant2.Phone}
	case models.MatchTypePlatonic:
		return models.ContactInfo{Name: participant1.Name, Email: participant1.Email},
			models.ContactInfo{Name: participant2.Name, Email: participant2.Email}
	}
	return models.ContactInfo{}, models.ContactInfo{}
}

// matchID derives a stable id for a pair so that reprocessing an unchanged
// selection set reproduces identical records.
func matchID(eventID, participant1ID, participant2ID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("datenight:"+eventID+":"+participant1ID+"#"+participant2ID)).String()
}

// RunMatching computes the match set for an event from its full selection
// set. Pure: no storage access, deterministic output order (sorted pair
// keys). A pair only produces a match when both directions were submitted;
// one-sided pairs are unresolved, which is distinct from an expressed Pass.
func RunMatching(eventID string, selections []models.Selection, participants []models.Participant, now time.Time) []models.Match {
	participantsByID := make(map[string]*models.Participant, len(participants))
	for i := range participants {
		participantsByID[participants[i].ParticipantID] = &participants[i]
	}

	selectionTypes := make(map[string]string, len(selections))
	for _, selection := range selections {
		selectionTypes[models.SelectionPairKey(selection.ParticipantID, selection.SelectedParticipantID)] = selection.SelectionType
	}

	pairSeen := make(map[string]bool)
	var pairKeys []string
	pairMembers := make(map[string][2]string)
	for _, selection := range selections {
		first, second := selection.ParticipantID, selection.SelectedParticipantID
		if second < first {
			first, second = second, first
		}
		key := first + "#" + second
		if pairSeen[key] {
			continue
		}
		pairSeen[key] = true
		pairKeys = append(pairKeys, key)
		pairMembers[key] = [2]string{first, second}
	}
	sort.Strings(pairKeys)

	createdAt := now.UTC().Format(time.RFC3339)
	var matches []models.Match
	for _, key := range pairKeys {
		members := pairMembers[key]

		forward, forwardOK := selectionTypes[models.SelectionPairKey(members[0], members[1])]
		backward, backwardOK := selectionTypes[models.SelectionPairKey(members[1], members[0])]
		if !forwardOK || !backwardOK {
			continue
		}

		matchType := DetermineMatchType(forward, backward)
		if matchType == models.MatchTypeNone {
			continue
		}

		participant1 := participantsByID[members[0]]
		participant2 := participantsByID[members[1]]
		if participant1 == nil || participant2 == nil {
			continue
		}

		contact1, contact2 := ContactInfoForMatch(matchType, participant1, participant2)
		matches = append(matches, models.Match{
			EventID:             eventID,
			MatchID:             matchID(eventID, members[0], members[1]),
			Participant1ID:      members[0],
			Participant2ID:      members[1],
			MatchType:           matchType,
			Participant1Contact: contact1,
			Participant2Contact: contact2,
			CreatedAt:           createdAt,
		})
	}

	return matches
}

// ProcessMatches runs the resolution engine for an event, replaces the stored
// match set and returns the summary. Safe to run repeatedly: the computation
// is a pure read and persistence replaces rather than appends.
func (s *MatchService) ProcessMatches(ctx context.Context, eventID string) (*models.MatchSummary, error) {
	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.CanProcessMatches() {
		return nil, fmt.Errorf("%w: match processing requires selection links to have been sent", ErrNotEligible)
	}

	selections, err := s.Selections.ListEventSelections(ctx, eventID)
	if err != nil {
		return nil, err
	}
	participants, err := s.Participants.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	log.Printf("🔄 Processing %d selections from %d participants for event %s",
		len(selections), len(participants), eventID)

	now := time.Now()
	matches := RunMatching(eventID, selections, participants, now)

	if err := s.Matches.ReplaceEventMatches(ctx, eventID, matches); err != nil {
		return nil, err
	}
	if err := s.Events.MarkMatchesProcessed(ctx, eventID, now); err != nil {
		return nil, err
	}

	metrics.MatchesComputed.Add(float64(len(matches)))
	log.Printf("✅ Generated %d matches for event %s", len(matches), eventID)

	return BuildMatchSummary(matches, participants), nil
}

// BuildMatchSummary folds a match set into per-event statistics
func BuildMatchSummary(matches []models.Match, participants []models.Participant) *models.MatchSummary {
	summary := &models.MatchSummary{
		TotalParticipants: len(participants),
		TotalMatches:      len(matches),
	}

	matched := make(map[string]bool)
	for _, match := range matches {
		switch match.MatchType {
		case models.MatchTypeRomantic:
			summary.RomanticMatches++
		case models.MatchTypePlatonic:
			summary.PlatonicMatches++
		}
		matched[match.Participant1ID] = true
		matched[match.Participant2ID] = true
	}
	summary.ParticipantsWithMatches = len(matched)

	if len(participants) > 0 {
		summary.MatchRate = int(float64(len(matched))/float64(len(participants))*100 + 0.5)
	}
	return summary
}

// ParticipantResults groups the stored matches into one result sheet per
// participant, ordered by participant id. Every participant gets an entry;
// no matches means empty lists, not an error.
func (s *MatchService) ParticipantResults(ctx context.Context, eventID string) ([]models.ParticipantMatches, error) {
	participants, err := s.Participants.ListEventParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}
	matches, err := s.Matches.ListEventMatches(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resultsByID := make(map[string]*models.ParticipantMatches, len(participants))
	for _, participant := range participants {
		resultsByID[participant.ParticipantID] = &models.ParticipantMatches{
			ParticipantID:   participant.ParticipantID,
			Name:            participant.Name,
			Email:           participant.Email,
			RomanticMatches: []models.ContactInfo{},
			PlatonicMatches: []models.ContactInfo{},
		}
	}

	for _, match := range matches {
		result1 := resultsByID[match.Participant1ID]
		result2 := resultsByID[match.Participant2ID]
		if result1 == nil || result2 == nil {
			continue
		}
		switch match.MatchType {
		case models.MatchTypeRomantic:
			result1.RomanticMatches = append(result1.RomanticMatches, match.Participant2Contact)
			result2.RomanticMatches = append(result2.RomanticMatches, match.Participant1Contact)
		case models.MatchTypePlatonic:
			result1.PlatonicMatches = append(result1.PlatonicMatches, match.Participant2Contact)
			result2.PlatonicMatches = append(result2.PlatonicMatches, match.Participant1Contact)
		}
	}

	results := make([]models.ParticipantMatches, 0, len(resultsByID))
	for _, result := range resultsByID {
		results = append(results, *result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ParticipantID < results[j].ParticipantID
	})
	return results, nil
}
