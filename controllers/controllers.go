package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"datenight_server/services"
)

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Unknown tokens stay indistinguishable from malformed ones (404); expired
// and replayed sessions both use 410 like the original selection pages.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "Invalid or expired token")
	case errors.Is(err, services.ErrSessionExpired):
		respondError(w, http.StatusGone, "Selection period has expired")
	case errors.Is(err, services.ErrAlreadySubmitted):
		respondError(w, http.StatusGone, "Selections already submitted")
	case errors.Is(err, services.ErrProcessingStarted):
		respondError(w, http.StatusConflict, "Match processing has already started for this event")
	case errors.Is(err, services.ErrNotEligible), errors.Is(err, services.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNoCheckedInParticipants):
		respondError(w, http.StatusBadRequest, "No checked-in participants found")
	case errors.Is(err, services.ErrIncompleteSelection),
		errors.Is(err, services.ErrUnknownTarget),
		errors.Is(err, services.ErrDuplicateTarget),
		errors.Is(err, services.ErrInvalidSelectionType):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEventNotFound), errors.Is(err, services.ErrParticipantNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
