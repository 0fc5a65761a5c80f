package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/argus/internal/api/handlers"
	"github.com/wonny/argus/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	evaluateHandler *handlers.EvaluateHandler,
	forecastHandler *handlers.ForecastHandler,
	screenerHandler *handlers.ScreenerHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Evaluation endpoints
	api.HandleFunc("/evaluate/{symbol}", evaluateHandler.Evaluate).Methods("GET")
	api.HandleFunc("/evaluate/{symbol}/dual", evaluateHandler.EvaluateDual).Methods("GET")

	// Forecast endpoints
	api.HandleFunc("/forecast/{symbol}", forecastHandler.Forecast).Methods("GET")
	api.HandleFunc("/forecast/{symbol}/project", forecastHandler.Project).Methods("GET")
	api.HandleFunc("/forecast/{symbol}/risk", forecastHandler.Risk).Methods("GET")

	// Screener / correlation endpoints
	api.HandleFunc("/screener", screenerHandler.Screen).Methods("POST")
	api.HandleFunc("/correlation", screenerHandler.Correlate).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "argus-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Call next handler
			next.ServeHTTP(w, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
