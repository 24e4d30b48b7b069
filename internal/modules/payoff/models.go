package payoff

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Strategy selects the ordering applied to debts before simulation.
// It is a closed enum so a typo can never silently fall back to a
// default ordering.
type Strategy int

const (
	// StrategySnowball orders debts by ascending balance (smallest first).
	StrategySnowball Strategy = iota
	// StrategyAvalanche orders debts by descending interest rate
	// (costliest first).
	StrategyAvalanche
)

// String returns the wire name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySnowball:
		return "snowball"
	case StrategyAvalanche:
		return "avalanche"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a wire name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "snowball":
		return StrategySnowball, nil
	case "avalanche":
		return StrategyAvalanche, nil
	default:
		return 0, fmt.Errorf("unknown payoff strategy %q", name)
	}
}

// less reports whether debt a should be paid down before debt b under
// this strategy. Ties keep the caller's original order (stable sort).
func (s Strategy) less(a, b *debtState) bool {
	switch s {
	case StrategyAvalanche:
		return a.rate.GreaterThan(b.rate)
	default: // snowball
		return a.balance.LessThan(b.balance)
	}
}

// DebtPayment records one payment applied to one debt within a month.
// A focus debt that receives both its minimum and the extra pool gets
// two entries, the second flagged IsExtra.
type DebtPayment struct {
	DebtID       string          `json:"debt_id"`
	DebtName     string          `json:"debt_name"`
	Payment      decimal.Decimal `json:"payment"`
	Interest     decimal.Decimal `json:"interest"`
	Principal    decimal.Decimal `json:"principal"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	IsExtra      bool            `json:"is_extra"`
}

// ScheduleEntry is the immutable record of one simulated month.
type ScheduleEntry struct {
	Month                 int             `json:"month"`
	Payments              []DebtPayment   `json:"payments"`
	TotalPayment          decimal.Decimal `json:"total_payment"`
	RemainingDebtCount    int             `json:"remaining_debt_count"`
	TotalRemainingBalance decimal.Decimal `json:"total_remaining_balance"`
}

// PayoffOrderEntry records when a single debt reached payoff.
// PayoffDate is nil when the debt did not pay off within the horizon.
type PayoffOrderEntry struct {
	DebtID     string     `json:"debt_id"`
	DebtName   string     `json:"debt_name"`
	Month      int        `json:"month"` // 0 when unresolved
	PayoffDate *time.Time `json:"payoff_date"`
}

// Summary aggregates a full simulation run.
type Summary struct {
	Strategy       string             `json:"strategy"`
	TotalMonths    int                `json:"total_months"`
	TotalInterest  decimal.Decimal    `json:"total_interest"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	OriginalTotal  decimal.Decimal    `json:"original_total"`
	PayoffDate     *time.Time         `json:"payoff_date"`
	PayoffOrder    []PayoffOrderEntry `json:"payoff_order"`
	ReachedHorizon bool               `json:"reached_horizon"` // hit the safety cap with debt outstanding
}

// Result bundles the schedule and its summary for one strategy run.
type Result struct {
	PlanID   string          `json:"plan_id"`
	Schedule []ScheduleEntry `json:"schedule"`
	Summary  Summary         `json:"summary"`
}
