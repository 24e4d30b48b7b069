package rebalancing

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/fincompass/engine/internal/domain"
)

// Handler handles rebalancing HTTP requests
type Handler struct {
	planner         *Planner
	defaultDriftPct float64
	log             zerolog.Logger
}

// NewHandler creates a new rebalancing handler
func NewHandler(planner *Planner, defaultDriftPct float64, log zerolog.Logger) *Handler {
	return &Handler{
		planner:         planner,
		defaultDriftPct: defaultDriftPct,
		log:             log.With().Str("handler", "rebalancing").Logger(),
	}
}

// HandleRebalance builds a rebalancing trade plan
// POST /api/portfolio/rebalance
func (h *Handler) HandleRebalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Holdings     []domain.Holding     `json:"holdings"`
		Target       domain.AllocationMap `json:"target"`
		ThresholdPct *float64             `json:"threshold_pct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Target) == 0 {
		h.writeError(w, http.StatusBadRequest, "target allocation is required")
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

	plan := h.planner.BuildPlan(req.Holdings, req.Target, threshold, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, plan)
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
