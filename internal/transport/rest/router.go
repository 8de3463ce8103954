package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/handler"
	"surveypulse/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	ResponseService *service.ResponseService
	ResultsService  *service.ResultsService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	resultsHandler := handler.NewResultsHandler(c.ResultsService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Respondent routes (any authenticated user)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/surveys/{surveyId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/surveys/{surveyId}/responses/me", responseHandler.HasResponded).Methods("GET", "OPTIONS")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/surveys/{surveyId}/results", resultsHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/overview", resultsHandler.Overview).Methods("GET", "OPTIONS")

	return r
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
