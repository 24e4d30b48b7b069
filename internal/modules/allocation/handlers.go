package allocation

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fincompass/engine/internal/domain"
)

// Handler handles allocation HTTP requests
type Handler struct {
	calculator      *Calculator
	analyzer        *Analyzer
	defaultDriftPct float64
	log             zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(calculator *Calculator, analyzer *Analyzer, defaultDriftPct float64, log zerolog.Logger) *Handler {
	return &Handler{
		calculator:      calculator,
		analyzer:        analyzer,
		defaultDriftPct: defaultDriftPct,
		log:             log.With().Str("handler", "allocation").Logger(),
	}
}

// HandleCurrentAllocation derives the allocation from a holdings list
// POST /api/portfolio/allocation
func (h *Handler) HandleCurrentAllocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Holdings []domain.Holding `json:"holdings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	current, totalValue := h.calculator.CurrentAllocation(req.Holdings)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"current":     current,
		"total_value": totalValue,
	})
}

// HandleDrift analyzes drift between a current and target allocation
// POST /api/portfolio/drift
func (h *Handler) HandleDrift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Current      domain.AllocationMap `json:"current"`
		Target       domain.AllocationMap `json:"target"`
		ThresholdPct *float64             `json:"threshold_pct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	threshold := h.defaultDriftPct
	if req.ThresholdPct != nil {
		if *req.ThresholdPct < 0 {
			h.writeError(w, http.StatusBadRequest, "threshold_pct must not be negative")
			return
		}
		threshold = *req.ThresholdPct
	}

	report := h.analyzer.Analyze(req.Current, req.Target, threshold)
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
