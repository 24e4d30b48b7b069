// Package rebalancing converts allocation drift into a concrete
// buy/sell trade plan.
package rebalancing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/internal/modules/allocation"
)

var hundred = decimal.NewFromInt(100)

// Planner builds rebalancing plans from holdings and a target
// allocation. Stateless and safe for concurrent use.
type Planner struct {
	calculator *allocation.Calculator
	analyzer   *allocation.Analyzer
	log        zerolog.Logger
}

// NewPlanner creates a rebalance planner.
func NewPlanner(calculator *allocation.Calculator, analyzer *allocation.Analyzer, log zerolog.Logger) *Planner {
	return &Planner{
		calculator: calculator,
		analyzer:   analyzer,
		log:        log.With().Str("service", "rebalance_planner").Logger(),
	}
}

// BuildPlan computes the current allocation, analyzes drift against the
// target, and converts every class over the threshold into a currency
// trade of target value minus current value. Trades come back sorted by
// amount descending.
//
// When no class exceeds the threshold the plan is explicitly marked
// WithinTolerance with an empty trade list.
func (p *Planner) BuildPlan(holdings []domain.Holding, target domain.AllocationMap, thresholdPct float64, now time.Time) Plan {
	current, totalValue := p.calculator.CurrentAllocation(holdings)
	drift := p.analyzer.Analyze(current, target, thresholdPct)

	plan := Plan{
		PlanID:      uuid.NewString(),
		GeneratedAt: now,
		TotalValue:  totalValue,
		Current:     current,
		Target:      target,
		Drift:       drift,
		Trades:      []Trade{},
	}

	if !drift.NeedsRebalancing {
		plan.WithinTolerance = true
		p.log.Debug().Str("plan_id", plan.PlanID).Msg("Portfolio within tolerance, no trades")
		return plan
	}

	currentValues := make(map[string]decimal.Decimal)
	for _, cv := range p.calculator.ClassValues(holdings) {
		currentValues[cv.AssetClass] = cv.Value
	}

	for _, entry := range drift.Entries {
		if !entry.NeedsRebalance {
			continue
		}

		targetValue := totalValue.Mul(decimal.NewFromFloat(entry.TargetPct)).Div(hundred).Round(2)
		currentValue := currentValues[entry.AssetClass]
		delta := targetValue.Sub(currentValue)

		action := allocation.ActionBuy
		if delta.IsNegative() {
			action = allocation.ActionSell
		}

		plan.Trades = append(plan.Trades, Trade{
			AssetClass:   entry.AssetClass,
			Action:       action,
			Amount:       delta.Abs(),
			CurrentValue: currentValue,
			TargetValue:  targetValue,
		})
	}

	sort.SliceStable(plan.Trades, func(i, j int) bool {
		return plan.Trades[i].Amount.GreaterThan(plan.Trades[j].Amount)
	})

	p.log.Debug().
		Str("plan_id", plan.PlanID).
		Int("trades", len(plan.Trades)).
		Str("total_value", totalValue.String()).
		Msg("Rebalance plan built")

	return plan
}
