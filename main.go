package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"datenight_server/metrics"
	"datenight_server/routes"
	"datenight_server/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	// Pick the storage backend. "memory" runs the whole service without AWS,
	// for local development.
	var (
		eventStore       services.EventStore
		participantStore services.ParticipantStore
		sessionStore     services.SessionStore
		selectionStore   services.SelectionStore
		matchStore       services.MatchStore
		archiveService   *services.ArchiveService
		emailSender      services.EmailSender
	)

	if os.Getenv("STORAGE_BACKEND") == "memory" {
		log.Println("Using in-memory storage (development mode)")
		store := services.NewMemoryStore()
		eventStore, participantStore, sessionStore, selectionStore, matchStore = store, store, store, store, store
		emailSender = &services.MockEmailSender{From: os.Getenv("FROM_EMAIL")}
	} else {
		log.Println("Initializing DynamoDB client...")
		cfg, err := services.LoadAWSConfig(context.Background())
		if err != nil {
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		dynamoService := &services.DynamoService{Client: services.InitializeDynamoDBClient()}
		store := services.NewDynamoStore(dynamoService)
		eventStore, participantStore, sessionStore, selectionStore, matchStore = store, store, store, store, store
		archiveService = services.NewArchiveServiceFromEnv(cfg)
		emailSender = services.NewEmailSenderFromEnv(cfg)
		log.Println("DynamoDB client initialized.")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	selectionTTL := services.DefaultSelectionTTL
	if hours := os.Getenv("SELECTION_TTL_HOURS"); hours != "" {
		if parsed, err := time.ParseDuration(hours + "h"); err == nil {
			selectionTTL = parsed
		}
	}

	// Initialize Services
	eventService := &services.EventService{Events: eventStore, Participants: participantStore}
	sessionService := &services.SessionService{
		Events:       eventStore,
		Participants: participantStore,
		Sessions:     sessionStore,
		TTL:          selectionTTL,
		BaseURL:      baseURL,
	}
	selectionService := &services.SelectionService{
		Events:       eventStore,
		Participants: participantStore,
		Sessions:     sessionStore,
		Selections:   selectionStore,
	}
	matchService := &services.MatchService{
		Events:       eventStore,
		Participants: participantStore,
		Selections:   selectionStore,
		Matches:      matchStore,
	}
	notificationService := &services.NotificationService{Sender: emailSender}

	metrics.Register()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Register routes
	routes.RegisterEventRoutes(r, eventService)
	routes.RegisterSessionRoutes(r, sessionService, selectionService, notificationService, eventStore)
	routes.RegisterMatchRoutes(r, matchService, notificationService, archiveService, eventStore, matchStore)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
