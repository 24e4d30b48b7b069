package allocation

import "github.com/shopspring/decimal"

// Action is the rebalancing direction for one asset class.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// DriftEntry compares current against target allocation for one class.
// Drift is current minus target, in percentage points.
type DriftEntry struct {
	AssetClass     string  `json:"asset_class"`
	CurrentPct     float64 `json:"current_pct"`
	TargetPct      float64 `json:"target_pct"`
	Drift          float64 `json:"drift"`
	NeedsRebalance bool    `json:"needs_rebalance"`
	Action         Action  `json:"action"`
}

// DriftReport is the full drift analysis, entries sorted by absolute
// drift descending.
type DriftReport struct {
	Entries          []DriftEntry `json:"entries"`
	NeedsRebalancing bool         `json:"needs_rebalancing"`
	MaxDrift         float64      `json:"max_drift"`
	ThresholdPct     float64      `json:"threshold_pct"`
}

// ClassValue is the market value held in one asset class.
type ClassValue struct {
	AssetClass string          `json:"asset_class"`
	Value      decimal.Decimal `json:"value"`
}
