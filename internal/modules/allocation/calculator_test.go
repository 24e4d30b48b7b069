package allocation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/pkg/logger"
)

func testCalculator() *Calculator {
	return NewCalculator(logger.New(logger.Config{Level: "error", Pretty: false}))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func holding(class, qty, purchase string, current string) domain.Holding {
	h := domain.Holding{
		AssetClass:    class,
		Quantity:      dec(qty),
		PurchasePrice: dec(purchase),
	}
	if current != "" {
		p := dec(current)
		h.CurrentPrice = &p
	}
	return h
}

func TestCurrentAllocation(t *testing.T) {
	c := testCalculator()

	holdings := []domain.Holding{
		holding("stocks", "10", "50", "70"), // 700
		holding("bonds", "20", "10", "15"),  // 300
	}

	current, total := c.CurrentAllocation(holdings)

	assert.True(t, total.Equal(dec("1000")), "total = %s", total)
	assert.Equal(t, 70.0, current["stocks"])
	assert.Equal(t, 30.0, current["bonds"])
}

func TestCurrentAllocation_FallsBackToPurchasePrice(t *testing.T) {
	c := testCalculator()

	holdings := []domain.Holding{
		holding("stocks", "10", "40", ""), // no current price: 400
		holding("bonds", "10", "60", ""),  // 600
	}

	current, total := c.CurrentAllocation(holdings)

	assert.True(t, total.Equal(dec("1000")))
	assert.Equal(t, 40.0, current["stocks"])
	assert.Equal(t, 60.0, current["bonds"])
}

func TestCurrentAllocation_ZeroValuePortfolio(t *testing.T) {
	c := testCalculator()

	tests := []struct {
		name     string
		holdings []domain.Holding
	}{
		{name: "no holdings", holdings: nil},
		{name: "zero quantities", holdings: []domain.Holding{holding("stocks", "0", "50", "70")}},
		{name: "zero prices", holdings: []domain.Holding{holding("stocks", "10", "0", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total := c.CurrentAllocation(tt.holdings)

			assert.True(t, total.IsZero())
			require.Len(t, current, 1)
			assert.Equal(t, 100.0, current[domain.CashAssetClass], "zero value must become a cash bucket, not an error")
		})
	}
}

func TestCurrentAllocation_RoundsToOneDecimal(t *testing.T) {
	c := testCalculator()

	holdings := []domain.Holding{
		holding("stocks", "1", "333", ""),
		holding("bonds", "1", "667", ""),
	}

	current, _ := c.CurrentAllocation(holdings)

	assert.Equal(t, 33.3, current["stocks"])
	assert.Equal(t, 66.7, current["bonds"])
}

func TestCurrentAllocation_PercentagesSumToHundred(t *testing.T) {
	c := testCalculator()

	holdings := []domain.Holding{
		holding("stocks", "7", "123.45", "141.02"),
		holding("intl_stocks", "3", "88.10", ""),
		holding("bonds", "15", "20.33", "19.87"),
		holding("real_estate", "2", "410", "395.5"),
	}

	current, total := c.CurrentAllocation(holdings)
	require.True(t, total.IsPositive())

	sum := 0.0
	for _, pct := range current {
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.2, "percentages must sum to 100 within rounding")
}

func TestClassValues_AggregatesAndSorts(t *testing.T) {
	c := testCalculator()

	holdings := []domain.Holding{
		holding("stocks", "1", "100", ""),
		holding("bonds", "1", "50", ""),
		holding("stocks", "2", "100", ""), // same class, second lot
	}

	values := c.ClassValues(holdings)

	require.Len(t, values, 2)
	assert.Equal(t, "bonds", values[0].AssetClass)
	assert.True(t, values[0].Value.Equal(dec("50")))
	assert.Equal(t, "stocks", values[1].AssetClass)
	assert.True(t, values[1].Value.Equal(dec("300")))
}
