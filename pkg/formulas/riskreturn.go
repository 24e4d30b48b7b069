package formulas

import "math"

// PortfolioExpectedReturn blends per-class expected annual returns by
// allocation weight (percentages). Returns 0 for an empty allocation.
func PortfolioExpectedReturn(weightsPct, expectedReturns []float64) float64 {
	return WeightedMean(expectedReturns, weightsPct)
}

// PortfolioVolatility approximates portfolio volatility as the weighted
// root mean square of per-class volatilities. Cross-class correlations
// are ignored, which overstates risk slightly; good enough for ranking
// model portfolios.
func PortfolioVolatility(weightsPct, volatilities []float64) float64 {
	if len(weightsPct) == 0 || len(weightsPct) != len(volatilities) {
		return 0
	}

	totalWeight := 0.0
	sumSquares := 0.0
	for i, w := range weightsPct {
		totalWeight += w
		sumSquares += w * volatilities[i] * volatilities[i]
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Sqrt(sumSquares / totalWeight)
}

// RiskAdjustedReturn is the Sharpe-style ratio of excess return over
// volatility. A zero volatility yields 0 rather than dividing by zero.
func RiskAdjustedReturn(expectedReturn, volatility, riskFreeRate float64) float64 {
	if volatility == 0 {
		return 0
	}
	return (expectedReturn - riskFreeRate) / volatility
}
