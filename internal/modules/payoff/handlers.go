package payoff

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincompass/engine/internal/domain"
)

// Handler handles payoff HTTP requests
type Handler struct {
	scheduler  *Scheduler
	comparator *Comparator
	log        zerolog.Logger
}

// NewHandler creates a new payoff handler
func NewHandler(scheduler *Scheduler, comparator *Comparator, log zerolog.Logger) *Handler {
	return &Handler{
		scheduler:  scheduler,
		comparator: comparator,
		log:        log.With().Str("handler", "payoff").Logger(),
	}
}

// ScheduleRequest is the payload for schedule and compare calls.
// Strategy is only required for schedule calls.
type ScheduleRequest struct {
	Debts        []domain.Debt   `json:"debts"`
	MonthlyExtra decimal.Decimal `json:"monthly_extra"`
	Strategy     string          `json:"strategy"`
}

// HandleSchedule runs the payoff simulation for one strategy
// POST /api/payoff/schedule
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.MonthlyExtra.IsNegative() {
		h.writeError(w, http.StatusBadRequest, "monthly_extra must not be negative")
		return
	}

	strategy, err := ParseStrategy(req.Strategy)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.scheduler.Simulate(req.Debts, req.MonthlyExtra, strategy, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, result)
}

// HandleCompare compares snowball and avalanche against the baseline
// POST /api/payoff/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.MonthlyExtra.IsNegative() {
		h.writeError(w, http.StatusBadRequest, "monthly_extra must not be negative")
		return
	}

	comparison := h.comparator.Compare(req.Debts, req.MonthlyExtra, time.Now().UTC())
	h.writeJSON(w, http.StatusOK, comparison)
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
