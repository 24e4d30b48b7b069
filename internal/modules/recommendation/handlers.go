package recommendation

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	recommender *Recommender
	log         zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(recommender *Recommender, log zerolog.Logger) *Handler {
	return &Handler{
		recommender: recommender,
		log:         log.With().Str("handler", "recommendation").Logger(),
	}
}

// HandleRecommendation derives a target allocation from a risk profile
// POST /api/portfolio/recommendation
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RiskScore int    `json:"risk_score"`
		Age       int    `json:"age"`
		Horizon   string `json:"horizon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	horizon, err := ParseHorizon(req.Horizon)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recommender.Recommend(req.RiskScore, req.Age, horizon)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
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
