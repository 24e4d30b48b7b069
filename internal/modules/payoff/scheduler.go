// Package payoff simulates multi-month debt payoff plans under the
// snowball and avalanche strategies and compares them.
package payoff

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/internal/modules/amortization"
)

// paidOffEpsilon forgives sub-cent residues left by rounding: a balance
// at or below this counts as paid off.
var paidOffEpsilon = decimal.New(1, -2) // 0.01

// debtState is the scheduler's private mutable copy of one debt.
// Caller-owned Debt records are never written to.
type debtState struct {
	id          string
	name        string
	balance     decimal.Decimal
	rate        decimal.Decimal
	minPayment  decimal.Decimal
	paidOff     bool
	payoffMonth int
}

// Scheduler runs the month-by-month payoff simulation for one strategy.
// It holds no per-call state and is safe for concurrent use.
type Scheduler struct {
	maxMonths int
	log       zerolog.Logger
}

// NewScheduler creates a payoff scheduler. maxMonths is the safety cap on
// simulated months; a simulation that reaches it without paying off all
// debts is marked ReachedHorizon in its summary.
func NewScheduler(maxMonths int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		maxMonths: maxMonths,
		log:       log.With().Str("service", "payoff_scheduler").Logger(),
	}
}

// Simulate runs the full payoff simulation. start anchors the payoff
// dates in the summary; month 1 pays off one month after start.
//
// The extra pool (monthlyExtra plus the minimums of every debt already
// paid off, starting in the month it pays off) goes entirely to the first
// still-active debt in strategy order. Leftover pool after that debt pays
// off is not cascaded to the next debt within the same month; it simply
// returns to the pool on the next iteration.
func (s *Scheduler) Simulate(debts []domain.Debt, monthlyExtra decimal.Decimal, strategy Strategy, start time.Time) Result {
	if monthlyExtra.IsNegative() {
		monthlyExtra = decimal.Zero
	}

	states := newStates(debts, strategy)

	originalTotal := decimal.Zero
	for _, st := range states {
		originalTotal = originalTotal.Add(st.balance)
	}

	summary := Summary{
		Strategy:      strategy.String(),
		TotalInterest: decimal.Zero,
		TotalPaid:     decimal.Zero,
		OriginalTotal: originalTotal,
	}

	result := Result{
		PlanID:   uuid.NewString(),
		Schedule: []ScheduleEntry{},
	}

	if len(states) == 0 {
		result.Summary = summary
		return result
	}

	month := 0
	for activeCount(states) > 0 && month < s.maxMonths {
		month++
		entry := s.simulateMonth(states, monthlyExtra, month)

		summary.TotalPaid = summary.TotalPaid.Add(entry.TotalPayment)
		for _, p := range entry.Payments {
			summary.TotalInterest = summary.TotalInterest.Add(p.Interest)
		}

		result.Schedule = append(result.Schedule, entry)
	}

	summary.TotalMonths = month
	summary.ReachedHorizon = activeCount(states) > 0
	if !summary.ReachedHorizon && month > 0 {
		d := monthsAfter(start, month)
		summary.PayoffDate = &d
	}
	summary.PayoffOrder = payoffOrder(states, start)

	result.Summary = summary

	s.log.Debug().
		Str("strategy", strategy.String()).
		Int("months", month).
		Str("total_interest", summary.TotalInterest.String()).
		Bool("reached_horizon", summary.ReachedHorizon).
		Msg("Payoff simulation complete")

	return result
}

// simulateMonth advances every active debt by one month and records the
// payments made. Interest always accrues before any payment.
func (s *Scheduler) simulateMonth(states []*debtState, monthlyExtra decimal.Decimal, month int) ScheduleEntry {
	entry := ScheduleEntry{Month: month, Payments: []DebtPayment{}}

	// Pass 1: interest accrual and minimum payments, in strategy order.
	for _, st := range states {
		if st.paidOff {
			continue
		}

		interest := amortization.MonthlyInterest(st.balance, st.rate)
		st.balance = st.balance.Add(interest)

		payment := decimal.Min(st.minPayment, st.balance)
		st.balance = st.balance.Sub(payment).Round(2)

		if st.balance.Cmp(paidOffEpsilon) <= 0 {
			st.balance = decimal.Zero
			st.paidOff = true
			st.payoffMonth = month
		}

		entry.Payments = append(entry.Payments, DebtPayment{
			DebtID:       st.id,
			DebtName:     st.name,
			Payment:      payment,
			Interest:     interest,
			Principal:    payment.Sub(interest),
			BalanceAfter: st.balance,
		})
		entry.TotalPayment = entry.TotalPayment.Add(payment)
	}

	// Pass 2: the whole extra pool goes to the focus debt (first active
	// in strategy order), capped at its remaining balance. Minimums of
	// debts paid off during the simulation stay freed from their payoff
	// month onward.
	extraPool := monthlyExtra
	for _, st := range states {
		if st.paidOff && st.payoffMonth > 0 {
			extraPool = extraPool.Add(st.minPayment)
		}
	}
	if extraPool.IsPositive() {
		if focus := firstActive(states); focus != nil {
			extra := decimal.Min(extraPool, focus.balance)
			focus.balance = focus.balance.Sub(extra).Round(2)

			if focus.balance.Cmp(paidOffEpsilon) <= 0 {
				focus.balance = decimal.Zero
				focus.paidOff = true
				focus.payoffMonth = month
			}

			entry.Payments = append(entry.Payments, DebtPayment{
				DebtID:       focus.id,
				DebtName:     focus.name,
				Payment:      extra,
				Interest:     decimal.Zero,
				Principal:    extra,
				BalanceAfter: focus.balance,
				IsExtra:      true,
			})
			entry.TotalPayment = entry.TotalPayment.Add(extra)
		}
	}

	entry.RemainingDebtCount = activeCount(states)
	entry.TotalRemainingBalance = decimal.Zero
	for _, st := range states {
		entry.TotalRemainingBalance = entry.TotalRemainingBalance.Add(st.balance)
	}

	return entry
}

// newStates copies the caller's debts into mutable simulation state and
// orders them once for the given strategy. Debts that arrive already at
// or below the payoff epsilon start as paid off with no recorded month.
func newStates(debts []domain.Debt, strategy Strategy) []*debtState {
	states := make([]*debtState, 0, len(debts))
	for _, d := range debts {
		balance := d.CurrentBalance.Round(2)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		states = append(states, &debtState{
			id:         d.ID,
			name:       d.Name,
			balance:    balance,
			rate:       d.InterestRate,
			minPayment: d.MinimumPayment,
			paidOff:    balance.Cmp(paidOffEpsilon) <= 0,
		})
	}

	sort.SliceStable(states, func(i, j int) bool {
		return strategy.less(states[i], states[j])
	})

	return states
}

func activeCount(states []*debtState) int {
	n := 0
	for _, st := range states {
		if !st.paidOff {
			n++
		}
	}
	return n
}

func firstActive(states []*debtState) *debtState {
	for _, st := range states {
		if !st.paidOff {
			return st
		}
	}
	return nil
}

// payoffOrder lists debts by payoff month; debts that never paid off
// within the horizon sort last with a nil date.
func payoffOrder(states []*debtState, start time.Time) []PayoffOrderEntry {
	order := make([]PayoffOrderEntry, 0, len(states))
	for _, st := range states {
		e := PayoffOrderEntry{DebtID: st.id, DebtName: st.name, Month: st.payoffMonth}
		if st.paidOff && st.payoffMonth > 0 {
			d := monthsAfter(start, st.payoffMonth)
			e.PayoffDate = &d
		}
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		mi, mj := order[i].Month, order[j].Month
		if mi == 0 {
			return false
		}
		if mj == 0 {
			return true
		}
		return mi < mj
	})

	return order
}

func monthsAfter(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}
