// Package amortization provides the loan math primitives shared by the
// debt payoff simulator: monthly interest accrual, the standard annuity
// payment formula, and the closed-form months-to-payoff solution.
//
// All monetary values are fixed-point decimals rounded to 2 places at
// every step. Per-step rounding is deliberate: rounding only final totals
// drifts away from the reference figures over long simulations.
package amortization

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNeverAmortizes is returned by MonthsToPayoff when the payment does
// not exceed the monthly interest charge, so the balance can never reach
// zero.
var ErrNeverAmortizes = errors.New("payment does not cover monthly interest, balance never amortizes")

// rateDivisor converts an annual percentage rate to a monthly fraction
// (percent / 100 / 12).
var rateDivisor = decimal.NewFromInt(1200)

// MonthlyRate converts an annual percentage rate to a monthly fraction
// (18.0 -> 0.015).
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(rateDivisor)
}

// MonthlyInterest returns one month of interest on a balance at the given
// annual percentage rate, rounded to 2 decimals. Never negative.
func MonthlyInterest(balance, annualRatePct decimal.Decimal) decimal.Decimal {
	interest := balance.Mul(MonthlyRate(annualRatePct)).Round(2)
	if interest.IsNegative() {
		return decimal.Zero
	}
	return interest
}

// MonthlyPayment returns the fixed monthly payment that amortizes
// principal over termMonths at the given annual percentage rate, rounded
// to 2 decimals.
//
// A zero rate degenerates to principal / termMonths; a non-positive
// principal yields a zero payment.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, termMonths int) decimal.Decimal {
	if principal.Sign() <= 0 || termMonths <= 0 {
		return decimal.Zero
	}
	if annualRatePct.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	// payment = P * r * (1+r)^n / ((1+r)^n - 1)
	r := MonthlyRate(annualRatePct)
	one := decimal.NewFromInt(1)
	compound := one.Add(r).Pow(decimal.NewFromInt(int64(termMonths)))
	payment := principal.Mul(r).Mul(compound).Div(compound.Sub(one))
	return payment.Round(2)
}

// MonthsToPayoff returns the number of months needed to pay off a balance
// at the given annual percentage rate with a fixed monthly payment, using
// the closed-form logarithmic solution. The count is rounded up to whole
// months.
//
// When the payment does not exceed the first month's interest the loan
// can never amortize and ErrNeverAmortizes is returned instead of a
// numeric approximation.
func MonthsToPayoff(balance, annualRatePct, payment decimal.Decimal) (int, error) {
	if balance.Sign() <= 0 {
		return 0, nil
	}
	if payment.Sign() <= 0 {
		return 0, ErrNeverAmortizes
	}
	if annualRatePct.IsZero() {
		months := balance.Div(payment).Ceil()
		return int(months.IntPart()), nil
	}

	interest := MonthlyInterest(balance, annualRatePct)
	if payment.Cmp(interest) <= 0 {
		return 0, ErrNeverAmortizes
	}

	// n = -log(1 - B*r/p) / log(1+r)
	r, _ := MonthlyRate(annualRatePct).Float64()
	b, _ := balance.Float64()
	p, _ := payment.Float64()
	months := -math.Log(1-b*r/p) / math.Log(1+r)
	return int(math.Ceil(months)), nil
}
