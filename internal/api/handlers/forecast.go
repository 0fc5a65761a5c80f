package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/argus/internal/engine"
	"github.com/wonny/argus/pkg/logger"
)

// Horizon defaults
const (
	defaultHorizonDays = 30
	defaultYears       = 5
	maxHorizonDays     = 365
	maxYears           = 30
)

// ForecastHandler handles forecast API endpoints
// ⭐ SSOT: 예측 API 핸들러는 이 구조체에서만
type ForecastHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(eng *engine.Engine, log *logger.Logger) *ForecastHandler {
	return &ForecastHandler{
		engine: eng,
		logger: log,
	}
}

// Forecast produces the blended short-horizon forecast
// GET /api/forecast/{symbol}?days=30
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	days, ok := queryInt(r, "days", defaultHorizonDays, maxHorizonDays)
	if !ok {
		respondError(w, http.StatusBadRequest, "days must be a positive integer")
		return
	}

	result, err := h.engine.Forecast(r.Context(), symbol, days)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Forecast failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Project builds the long-horizon scenario projection
// GET /api/forecast/{symbol}/project?years=5
func (h *ForecastHandler) Project(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	years, ok := queryInt(r, "years", defaultYears, maxYears)
	if !ok {
		respondError(w, http.StatusBadRequest, "years must be a positive integer")
		return
	}

	projection, err := h.engine.ProjectLongTerm(r.Context(), symbol, years)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Projection failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, projection)
}

// Risk computes the downside-risk statistics
// GET /api/forecast/{symbol}/risk
func (h *ForecastHandler) Risk(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	risk, err := h.engine.DownsideRisk(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Downside risk failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, risk)
}

// queryInt parses a bounded positive integer query parameter
func queryInt(r *http.Request, name string, fallback, max int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > max {
		return 0, false
	}
	return v, true
}
