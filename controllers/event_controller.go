package controllers

import (
	"encoding/json"
	"net/http"

	"datenight_server/services"

	"github.com/gorilla/mux"
)

// EventController handles HTTP requests for event lifecycle and participants
type EventController struct {
	EventService *services.EventService
}

// NewEventController initializes the controller
func NewEventController(service *services.EventService) *EventController {
	return &EventController{EventService: service}
}

// HandleCreateEvent - Create a new event
func (c *EventController) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name                     string `json:"name"`
		Date                     string `json:"date"`
		Venue                    string `json:"venue"`
		AllowSameGenderSelection bool   `json:"allow_same_gender_selection"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Name == "" {
		respondError(w, http.StatusBadRequest, "Missing event name")
		return
	}

	event, err := c.EventService.CreateEvent(r.Context(), request.Name, request.Date, request.Venue, request.AllowSameGenderSelection)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "event": event})
}

// HandleGetEvent - Fetch a single event
func (c *EventController) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	event, err := c.EventService.GetEvent(r.Context(), eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "event": event})
}

// HandleUpdateStatus - Move an event along its lifecycle
func (c *EventController) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Status == "" {
		respondError(w, http.StatusBadRequest, "Missing eventId or status")
		return
	}

	event, err := c.EventService.UpdateStatus(r.Context(), eventID, request.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Event status updated to " + event.Status,
		"event":   event,
	})
}

// HandleRegisterParticipant - Register a participant for an event
func (c *EventController) HandleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var request struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Age    int    `json:"age"`
		Gender string `json:"gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.Name == "" || request.Email == "" {
		respondError(w, http.StatusBadRequest, "Missing participant name or email")
		return
	}

	participant, err := c.EventService.RegisterParticipant(r.Context(), eventID, request.Name, request.Email, request.Phone, request.Age, request.Gender)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "participant": participant})
}

// HandleCheckIn - Mark a participant as physically present
func (c *EventController) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	participant, err := c.EventService.CheckInParticipant(r.Context(), vars["eventId"], vars["participantId"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "participant": participant})
}
