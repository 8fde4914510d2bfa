package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"surveyforge/internal/service"
	"surveyforge/internal/transport/rest/handler"
	"surveyforge/internal/transport/rest/middleware"
	"surveyforge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService *service.SurveyService
	LogicService  *service.LogicService
	Logger        *logrus.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	logicHandler := handler.NewLogicHandler(c.LogicService)
	previewHandler := ws.NewPreviewHandler(c.LogicService, c.Logger)

	// CORS first, then request logging
	r.Use(corsMiddleware)
	r.Use(middleware.RequestLogging(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Survey CRUD
	v1.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")

	// Rule CRUD per question. The reorder route must register before the
	// {logicId} route so mux does not swallow "reorder" as an id.
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/logic/reorder", logicHandler.Reorder).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/logic", logicHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/logic", logicHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/logic/{logicId}", logicHandler.Update).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/logic/{logicId}", logicHandler.Delete).Methods("DELETE", "OPTIONS")

	// Logic map and evaluation preview (evaluate-logic is public: the
	// survey runner calls it without credentials)
	v1.HandleFunc("/surveys/{surveyId}/logic-map", logicHandler.Map).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/evaluate-logic", logicHandler.Evaluate).Methods("POST", "OPTIONS")

	// Live evaluation over WebSocket for the survey builder preview
	v1.HandleFunc("/ws/surveys/{surveyId}/preview", previewHandler.Preview).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
