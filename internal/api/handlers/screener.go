package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wonny/argus/internal/contracts"
	"github.com/wonny/argus/internal/engine"
	"github.com/wonny/argus/pkg/logger"
)

// Batch size guard for screener and correlation requests
const maxBatchSymbols = 200

// ScreenerHandler handles screener and correlation API endpoints
// ⭐ SSOT: 스크리너/상관 API 핸들러는 이 구조체에서만
type ScreenerHandler struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewScreenerHandler creates a new screener handler
func NewScreenerHandler(eng *engine.Engine, log *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		engine: eng,
		logger: log,
	}
}

type screenRequest struct {
	Symbols   []string `json:"symbols"`
	Timeframe string   `json:"timeframe"`
}

// Screen ranks a symbol universe for one timeframe
// POST /api/screener
func (h *ScreenerHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var req screenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 || len(req.Symbols) > maxBatchSymbols {
		respondError(w, http.StatusBadRequest, "symbols must contain between 1 and 200 entries")
		return
	}

	tf := contracts.Timeframe(strings.ToUpper(req.Timeframe))
	entries, symbolErrs, err := h.engine.Screen(r.Context(), req.Symbols, tf)
	if err != nil {
		h.logger.WithError(err).Error("Screener run failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"timeframe": tf,
		"entries":   entries,
		"errors":    symbolErrs,
	})
}

type correlateRequest struct {
	Symbols []string `json:"symbols"`
}

// Correlate computes the correlation matrices for a symbol set
// POST /api/correlation
func (h *ScreenerHandler) Correlate(w http.ResponseWriter, r *http.Request) {
	var req correlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) < 2 || len(req.Symbols) > maxBatchSymbols {
		respondError(w, http.StatusBadRequest, "symbols must contain between 2 and 200 entries")
		return
	}

	matrix, score, symbolErrs, err := h.engine.Correlate(r.Context(), req.Symbols)
	if err != nil {
		h.logger.WithError(err).Error("Correlation run failed")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matrix":          matrix,
		"diversification": score,
		"errors":          symbolErrs,
	})
}
