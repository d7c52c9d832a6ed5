package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"triviasnake/internal/service"
	"triviasnake/internal/transport/rest/handler"
	"triviasnake/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	LeaderboardService *service.LeaderboardService
	AdventureService   *service.AdventureService
	QuizService        *service.QuizAIService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	leaderboardHandler := handler.NewLeaderboardHandler(c.LeaderboardService)
	adventureHandler := handler.NewAdventureHandler(c.AdventureService)
	quizHandler := handler.NewQuizHandler(c.QuizService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// mux.Router.Use does not cover the fallback handlers, so they get
	// wrapped by hand. Unmatched paths and methods are client errors.
	r.NotFoundHandler = corsMiddleware(http.HandlerFunc(routeNotFound))
	r.MethodNotAllowedHandler = corsMiddleware(http.HandlerFunc(routeNotFound))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(authMW.WithUser)

	// Auth routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Leaderboard routes
	v1.HandleFunc("/leaderboard", leaderboardHandler.Top).Methods("GET", "OPTIONS")
	v1.HandleFunc("/leaderboard", leaderboardHandler.Submit).Methods("POST", "OPTIONS")

	// Adventure routes
	v1.HandleFunc("/adventures", adventureHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/adventures", adventureHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/adventures/{adventureId}", adventureHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/adventures/{adventureId}", adventureHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/adventures/{adventureId}", adventureHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/images/{imageId}", adventureHandler.Image).Methods("GET", "OPTIONS")

	// Quiz generation routes
	v1.HandleFunc("/generate-quiz", quizHandler.Generate).Methods("POST", "OPTIONS")

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(`{"error":"unsupported route"}`))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
