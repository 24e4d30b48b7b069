// Package allocation derives portfolio allocation percentages from raw
// holdings and measures their drift against a target.
package allocation

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fincompass/engine/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator converts holdings into a percentage allocation by asset
// class. It is stateless; percentages are recomputed from scratch on
// every call.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates an allocation calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("service", "allocation_calculator").Logger(),
	}
}

// CurrentAllocation returns the percentage allocation by asset class and
// the total market value of the holdings. Holdings without a current
// price are valued at purchase price.
//
// A zero-value portfolio allocates 100% to the cash bucket instead of
// dividing by zero.
func (c *Calculator) CurrentAllocation(holdings []domain.Holding) (domain.AllocationMap, decimal.Decimal) {
	classValues := c.ClassValues(holdings)

	total := decimal.Zero
	for _, cv := range classValues {
		total = total.Add(cv.Value)
	}

	if total.Sign() <= 0 {
		return domain.AllocationMap{domain.CashAssetClass: 100}, decimal.Zero
	}

	current := make(domain.AllocationMap, len(classValues))
	for _, cv := range classValues {
		pct := cv.Value.Div(total).Mul(hundred).Round(1)
		current[cv.AssetClass], _ = pct.Float64()
	}

	return current, total.Round(2)
}

// ClassValues sums holding market values per asset class, sorted by
// class name for deterministic output.
func (c *Calculator) ClassValues(holdings []domain.Holding) []ClassValue {
	byClass := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		value := h.MarketValue()
		if value.Sign() <= 0 {
			continue
		}
		byClass[h.AssetClass] = byClass[h.AssetClass].Add(value)
	}

	values := make([]ClassValue, 0, len(byClass))
	for class, value := range byClass {
		values = append(values, ClassValue{AssetClass: class, Value: value.Round(2)})
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].AssetClass < values[j].AssetClass
	})

	return values
}
