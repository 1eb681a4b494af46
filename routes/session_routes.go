package routes

import (
	"datenight_server/controllers"
	"datenight_server/services"

	"github.com/gorilla/mux"
)

// RegisterSessionRoutes sets up routes for selection session issuance,
// lookup and submission
func RegisterSessionRoutes(r *mux.Router, sessionService *services.SessionService, selectionService *services.SelectionService, notifications *services.NotificationService, events services.EventStore) {
	controller := controllers.NewSessionController(sessionService, selectionService, notifications, events)

	r.HandleFunc("/api/events/{eventId}/send-selection-links", controller.HandleSendSelectionLinks).Methods("POST")

	sessionRouter := r.PathPrefix("/api/selection-sessions").Subrouter()
	sessionRouter.HandleFunc("/{token}", controller.HandleGetSession).Methods("GET")
	sessionRouter.HandleFunc("/{token}/submit", controller.HandleSubmitSelections).Methods("POST")
}
