package rebalancing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/internal/modules/allocation"
)

// Trade is one currency-denominated rebalancing instruction.
// Amount is always a positive magnitude; Action carries the direction.
type Trade struct {
	AssetClass   string            `json:"asset_class"`
	Action       allocation.Action `json:"action"`
	Amount       decimal.Decimal   `json:"amount"`
	CurrentValue decimal.Decimal   `json:"current_value"`
	TargetValue  decimal.Decimal   `json:"target_value"`
}

// Plan is a complete rebalancing proposal. WithinTolerance distinguishes
// "no trades needed" from an empty plan.
type Plan struct {
	PlanID          string                 `json:"plan_id"`
	GeneratedAt     time.Time              `json:"generated_at"`
	TotalValue      decimal.Decimal        `json:"total_value"`
	Current         domain.AllocationMap   `json:"current"`
	Target          domain.AllocationMap   `json:"target"`
	Drift           allocation.DriftReport `json:"drift"`
	WithinTolerance bool                   `json:"within_tolerance"`
	Trades          []Trade                `json:"trades"`
}
