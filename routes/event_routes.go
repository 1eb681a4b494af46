package routes

import (
	"datenight_server/controllers"
	"datenight_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up routes for event lifecycle and participants
// under /api/events
func RegisterEventRoutes(r *mux.Router, eventService *services.EventService) {
	controller := controllers.NewEventController(eventService)

	eventRouter := r.PathPrefix("/api/events").Subrouter()
	eventRouter.HandleFunc("", controller.HandleCreateEvent).Methods("POST")
	eventRouter.HandleFunc("/{eventId}", controller.HandleGetEvent).Methods("GET")
	eventRouter.HandleFunc("/{eventId}/status", controller.HandleUpdateStatus).Methods("PUT")
	eventRouter.HandleFunc("/{eventId}/participants", controller.HandleRegisterParticipant).Methods("POST")
	eventRouter.HandleFunc("/{eventId}/participants/{participantId}/check-in", controller.HandleCheckIn).Methods("POST")
}
