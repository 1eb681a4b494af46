package controllers

import (
	"log"
	"net/http"
	"time"

	"datenight_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles match processing and result distribution
type MatchController struct {
	MatchService  *services.MatchService
	Notifications *services.NotificationService
	Archive       *services.ArchiveService
	Events        services.EventStore
	Matches       services.MatchStore
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService, notifications *services.NotificationService, archive *services.ArchiveService, events services.EventStore, matches services.MatchStore) *MatchController {
	return &MatchController{
		MatchService:  matchService,
		Notifications: notifications,
		Archive:       archive,
		Events:        events,
		Matches:       matches,
	}
}

// HandleProcessMatches - Run the resolution engine for an event
func (c *MatchController) HandleProcessMatches(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	summary, err := c.MatchService.ProcessMatches(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if c.Archive != nil {
		matches, err := c.Matches.ListEventMatches(r.Context(), eventID)
		if err == nil {
			err = c.Archive.ArchiveMatchResults(r.Context(), eventID, summary, matches)
		}
		if err != nil {
			// Archiving is best-effort; the matches are already persisted
			log.Printf("⚠️ Failed to archive match results for event %s: %v", eventID, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Matches processed successfully",
		"event_id":     eventID,
		"summary":      summary,
		"processed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleSendMatchResults - Email every participant their result sheet
func (c *MatchController) HandleSendMatchResults(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !event.ProcessingStarted() {
		respondError(w, http.StatusConflict, "Matches have not been processed for this event")
		return
	}

	results, err := c.MatchService.ParticipantResults(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	type emailResult struct {
		ParticipantID        string `json:"participant_id"`
		ParticipantName      string `json:"participant_name"`
		Email                string `json:"email"`
		RomanticMatchesCount int    `json:"romantic_matches_count"`
		PlatonicMatchesCount int    `json:"platonic_matches_count"`
		EmailSent            bool   `json:"email_sent"`
	}

	emailResults := make([]emailResult, 0, len(results))
	sent := 0
	for _, result := range results {
		err := c.Notifications.SendMatchResults(r.Context(), result, event)
		if err != nil {
			log.Printf("❌ Failed to send match results to %s: %v", result.Email, err)
		} else {
			sent++
		}
		emailResults = append(emailResults, emailResult{
			ParticipantID:        result.ParticipantID,
			ParticipantName:      result.Name,
			Email:                result.Email,
			RomanticMatchesCount: len(result.RomanticMatches),
			PlatonicMatchesCount: len(result.PlatonicMatches),
			EmailSent:            err == nil,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Match results sent",
		"event_id":    eventID,
		"emails_sent": sent,
		"results":     emailResults,
	})
}
