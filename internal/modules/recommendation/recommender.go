// Package recommendation derives a target allocation from an investor's
// risk score, age and investment horizon.
package recommendation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/pkg/formulas"
)

// Horizon shift sizes, in percentage points.
const (
	shortHorizonShift    = 10.0 // out of stocks, split evenly into bonds and cash
	veryLongHorizonShift = 10.0 // out of bonds, into stocks
)

// Recommendation is a derived target allocation plus advisory
// expected-performance figures.
type Recommendation struct {
	ModelName          string               `json:"model_name"`
	RiskScore          int                  `json:"risk_score"`
	Age                int                  `json:"age"`
	Horizon            string               `json:"horizon"`
	Allocation         domain.AllocationMap `json:"allocation"`
	AssetClasses       []string             `json:"asset_classes"`
	ExpectedReturnPct  float64              `json:"expected_return_pct"`
	VolatilityPct      float64              `json:"volatility_pct"`
	RiskAdjustedReturn float64              `json:"risk_adjusted_return"`
}

// Recommender maps investor profiles onto model portfolios.
type Recommender struct {
	log zerolog.Logger
}

// NewRecommender creates an allocation recommender.
func NewRecommender(log zerolog.Logger) *Recommender {
	return &Recommender{
		log: log.With().Str("service", "allocation_recommender").Logger(),
	}
}

// Recommend buckets the risk score into a model portfolio, then applies
// the age adjustment (stocks into bonds) and the horizon adjustment, and
// finally normalizes percentages to sum to exactly 100.
func (r *Recommender) Recommend(riskScore, age int, horizon Horizon) (Recommendation, error) {
	if riskScore < 1 || riskScore > 10 {
		return Recommendation{}, fmt.Errorf("risk score must be between 1 and 10, got %d", riskScore)
	}
	if age < 0 {
		return Recommendation{}, fmt.Errorf("age must not be negative, got %d", age)
	}

	model := modelForScore(riskScore)

	alloc := make(map[string]float64, len(model.Allocation))
	for class, pct := range model.Allocation {
		alloc[class] = pct
	}

	applyAgeAdjustment(alloc, age)
	applyHorizonAdjustment(alloc, horizon)
	normalize(alloc)

	rec := Recommendation{
		ModelName:    model.Name,
		RiskScore:    riskScore,
		Age:          age,
		Horizon:      horizon.String(),
		Allocation:   alloc,
		AssetClasses: sortedClasses(alloc),
	}
	rec.ExpectedReturnPct, rec.VolatilityPct, rec.RiskAdjustedReturn = expectedPerformance(alloc)

	r.log.Debug().
		Int("risk_score", riskScore).
		Int("age", age).
		Str("horizon", horizon.String()).
		Str("model", model.Name).
		Msg("Allocation recommended")

	return rec, nil
}

func modelForScore(riskScore int) ModelPortfolio {
	for _, m := range modelPortfolios {
		if riskScore >= m.MinScore && riskScore <= m.MaxScore {
			return m
		}
	}
	// Unreachable: the models cover 1-10 and the score is validated.
	return modelPortfolios[len(modelPortfolios)-1]
}

// applyAgeAdjustment shifts clamp((age-30)/2, 0, 20) percentage points
// from stocks into bonds, split across the stock buckets in proportion
// to their current weights.
func applyAgeAdjustment(alloc map[string]float64, age int) {
	adj := math.Min(math.Max(float64(age-30)/2, 0), 20)
	if adj == 0 {
		return
	}
	shiftStocks(alloc, -adj, map[string]float64{ClassBonds: 1})
}

// applyHorizonAdjustment nudges the allocation further along the
// risk axis for the extreme horizons; medium and long leave it as is.
func applyHorizonAdjustment(alloc map[string]float64, horizon Horizon) {
	switch horizon {
	case HorizonShort:
		shiftStocks(alloc, -shortHorizonShift, map[string]float64{ClassBonds: 0.5, ClassCash: 0.5})
	case HorizonVeryLong:
		shift := math.Min(veryLongHorizonShift, alloc[ClassBonds])
		alloc[ClassBonds] -= shift
		addToStocks(alloc, shift)
	}
}

// shiftStocks moves |points| percentage points out of the stock buckets
// (proportionally to their weights) and distributes them into the
// destination classes by the given fractions. The shift is capped at the
// stocks actually available.
func shiftStocks(alloc map[string]float64, points float64, dest map[string]float64) {
	stocks := alloc[ClassUSStocks] + alloc[ClassIntlStocks]
	if stocks <= 0 {
		return
	}

	shift := math.Min(-points, stocks)
	if shift <= 0 {
		return
	}

	alloc[ClassUSStocks] -= shift * (alloc[ClassUSStocks] / stocks)
	alloc[ClassIntlStocks] -= shift * (alloc[ClassIntlStocks] / stocks)
	for class, fraction := range dest {
		alloc[class] += shift * fraction
	}
}

// addToStocks distributes points into the stock buckets proportionally
// to their current weights, or evenly when there are none.
func addToStocks(alloc map[string]float64, points float64) {
	stocks := alloc[ClassUSStocks] + alloc[ClassIntlStocks]
	if stocks <= 0 {
		alloc[ClassUSStocks] += points / 2
		alloc[ClassIntlStocks] += points / 2
		return
	}
	alloc[ClassUSStocks] += points * (alloc[ClassUSStocks] / stocks)
	alloc[ClassIntlStocks] += points * (alloc[ClassIntlStocks] / stocks)
}

// normalize scales percentages so they sum to exactly 100, then rounds
// each to 1 decimal.
func normalize(alloc map[string]float64) {
	total := 0.0
	for _, pct := range alloc {
		total += pct
	}
	if total == 0 {
		alloc[ClassCash] = 100
		return
	}

	factor := 100 / total
	for class, pct := range alloc {
		alloc[class] = math.Round(pct*factor*10) / 10
	}
}

// expectedPerformance blends the per-class capital market assumptions
// by allocation weight.
func expectedPerformance(alloc map[string]float64) (expReturn, volatility, riskAdjusted float64) {
	classes := sortedClasses(alloc)

	weights := make([]float64, 0, len(classes))
	returns := make([]float64, 0, len(classes))
	vols := make([]float64, 0, len(classes))
	for _, class := range classes {
		assumption, ok := classAssumptions[class]
		if !ok {
			continue
		}
		weights = append(weights, alloc[class])
		returns = append(returns, assumption.ExpectedReturn)
		vols = append(vols, assumption.Volatility)
	}

	expReturn = formulas.PortfolioExpectedReturn(weights, returns)
	volatility = formulas.PortfolioVolatility(weights, vols)
	riskAdjusted = formulas.RiskAdjustedReturn(expReturn, volatility, riskFreeRatePct)
	return expReturn, volatility, riskAdjusted
}

func sortedClasses(alloc map[string]float64) []string {
	classes := make([]string, 0, len(alloc))
	for class := range alloc {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}
