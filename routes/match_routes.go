package routes

import (
	"datenight_server/controllers"
	"datenight_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match processing and result
// distribution
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, notifications *services.NotificationService, archive *services.ArchiveService, events services.EventStore, matches services.MatchStore) {
	controller := controllers.NewMatchController(matchService, notifications, archive, events, matches)

	r.HandleFunc("/api/events/{eventId}/process-matches", controller.HandleProcessMatches).Methods("POST")
	r.HandleFunc("/api/events/{eventId}/send-match-results", controller.HandleSendMatchResults).Methods("POST")
}
