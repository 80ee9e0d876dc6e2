package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readiness/internal/service"
	"readiness/internal/transport/rest/handler"
	"readiness/internal/transport/rest/middleware"
	"readiness/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	AssessmentService  *service.AssessmentService
	ImprovementService *service.ImprovementService
	WSHub              *ws.Hub
	Gatherer           prometheus.Gatherer
	AllowedOrigins     []string
	Logger             *slog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	adminHandler := handler.NewAdminHandler(c.AssessmentService, c.ImprovementService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AllowedOrigins, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments/types", assessmentHandler.Types).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/types/{type}", assessmentHandler.Type).Methods("GET", "OPTIONS")
	v1.HandleFunc("/assessments/recommend", assessmentHandler.Recommend).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")
	v1.HandleFunc("/ws/assessments/{id}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// Respondent routes (require a token scoped to the session)
	respondentRoutes := v1.PathPrefix("/assessments/{id}").Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/question", assessmentHandler.Question).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/responses", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/abandon", assessmentHandler.Abandon).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/result", assessmentHandler.Result).Methods("GET", "OPTIONS")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/analytics/personas/{type}", adminHandler.PersonaDistribution).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/improvement/{type}/stats", adminHandler.VariantStats).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/improvement/{type}/variants", adminHandler.Variants).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && allowed[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
