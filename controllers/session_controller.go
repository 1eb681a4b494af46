package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"datenight_server/models"
	"datenight_server/services"

	"github.com/gorilla/mux"
)

// SessionController handles selection session issuance, lookup and submission
type SessionController struct {
	SessionService   *services.SessionService
	SelectionService *services.SelectionService
	Notifications    *services.NotificationService
	Events           services.EventStore
}

// NewSessionController initializes the controller
func NewSessionController(sessionService *services.SessionService, selectionService *services.SelectionService, notifications *services.NotificationService, events services.EventStore) *SessionController {
	return &SessionController{
		SessionService:   sessionService,
		SelectionService: selectionService,
		Notifications:    notifications,
		Events:           events,
	}
}

// HandleSendSelectionLinks - Issue sessions for every checked-in participant
// and email each one their selection link
func (c *SessionController) HandleSendSelectionLinks(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	issued, err := c.SessionService.IssueSessions(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	type emailResult struct {
		ParticipantID   string `json:"participant_id"`
		ParticipantName string `json:"participant_name"`
		Email           string `json:"email"`
		SelectionLink   string `json:"selection_link"`
		EmailSent       bool   `json:"email_sent"`
	}

	emailResults := make([]emailResult, 0, len(issued))
	sent := 0
	for _, session := range issued {
		err := c.Notifications.SendSelectionLink(r.Context(), session, event)
		if err != nil {
			log.Printf("❌ Failed to send selection link to %s: %v", session.Email, err)
		} else {
			sent++
		}
		emailResults = append(emailResults, emailResult{
			ParticipantID:   session.ParticipantID,
			ParticipantName: session.ParticipantName,
			Email:           session.Email,
			SelectionLink:   session.SelectionLink,
			EmailSent:       err == nil,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"message":          "Selection links sent",
		"event_id":         eventID,
		"sessions_created": len(issued),
		"emails_sent":      sent,
		"results":          emailResults,
	})
}

// HandleGetSession - Resolve a token into the data the selection page shows.
// Selectable participants are stripped to what the form needs; contact
// details are only ever disclosed through resolved matches.
func (c *SessionController) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	view, err := c.SessionService.GetSessionView(r.Context(), token)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	type selectableParticipant struct {
		ParticipantID string `json:"participant_id"`
		Name          string `json:"name"`
		Age           int    `json:"age"`
		Gender        string `json:"gender"`
	}

	selectable := make([]selectableParticipant, 0, len(view.Selectable))
	for _, participant := range view.Selectable {
		selectable = append(selectable, selectableParticipant{
			ParticipantID: participant.ParticipantID,
			Name:          participant.Name,
			Age:           participant.Age,
			Gender:        participant.Gender,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"participant": map[string]interface{}{
				"participant_id": view.Participant.ParticipantID,
				"name":           view.Participant.Name,
				"gender":         view.Participant.Gender,
				"event_id":       view.Participant.EventID,
			},
			"event": map[string]interface{}{
				"event_id": view.Event.EventID,
				"name":     view.Event.Name,
				"date":     view.Event.Date,
				"venue":    view.Event.Venue,
			},
			"expires_at":              view.Session.ExpiresAt,
			"selectable_participants": selectable,
		},
	})
}

// HandleSubmitSelections - Accept a session's single submission
func (c *SessionController) HandleSubmitSelections(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var request struct {
		Selections []services.SelectionEntry `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid selections data")
		return
	}
	if request.Selections == nil {
		respondError(w, http.StatusBadRequest, "Invalid selections data")
		return
	}
	for _, selection := range request.Selections {
		if selection.SelectedParticipantID == "" || selection.SelectionType == "" {
			respondError(w, http.StatusBadRequest, "Invalid selection format")
			return
		}
		if !models.IsValidSelectionType(selection.SelectionType) {
			respondError(w, http.StatusBadRequest,
				"Invalid selection type: "+selection.SelectionType+". Must be Pass, Friend, Match, or Match & Friend")
			return
		}
	}

	result, err := c.SelectionService.SubmitSelections(r.Context(), token, request.Selections)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Selections submitted successfully",
		"data":    result,
	})
}
