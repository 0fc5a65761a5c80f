package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/argus/internal/engine"
	"github.com/wonny/argus/pkg/logger"
)

// EvaluateHandler handles recommendation API endpoints
// ⭐ SSOT: 평가 API 핸들러는 이 구조체에서만
type EvaluateHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewEvaluateHandler creates a new evaluate handler
func NewEvaluateHandler(eng *engine.Engine, log *logger.Logger) *EvaluateHandler {
	return &EvaluateHandler{
		engine: eng,
		logger: log,
	}
}

// Evaluate runs the combiner lens for one symbol
// GET /api/evaluate/{symbol}
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	rec, err := h.engine.EvaluateSymbol(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Evaluation failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// EvaluateDual runs both scoring lenses for one symbol
// GET /api/evaluate/{symbol}/dual
func (h *EvaluateHandler) EvaluateDual(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	set, err := h.engine.BuildSignalSet(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Signal set assembly failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.engine.EvaluateBothLenses(set))
}
