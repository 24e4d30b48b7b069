package recommendation

import "fmt"

// Asset class keys used by the model portfolios.
const (
	ClassUSStocks   = "us_stocks"
	ClassIntlStocks = "intl_stocks"
	ClassBonds      = "bonds"
	ClassRealEstate = "real_estate"
	ClassCash       = "cash"
)

// Horizon is the investment horizon bucket. A closed enum: an unknown
// horizon string is an input error, never a silent default.
type Horizon int

const (
	HorizonShort Horizon = iota
	HorizonMedium
	HorizonLong
	HorizonVeryLong
)

// String returns the wire name of the horizon.
func (h Horizon) String() string {
	switch h {
	case HorizonShort:
		return "short"
	case HorizonMedium:
		return "medium"
	case HorizonLong:
		return "long"
	case HorizonVeryLong:
		return "very_long"
	default:
		return fmt.Sprintf("Horizon(%d)", int(h))
	}
}

// ParseHorizon converts a wire name into a Horizon.
func ParseHorizon(name string) (Horizon, error) {
	switch name {
	case "short":
		return HorizonShort, nil
	case "medium":
		return HorizonMedium, nil
	case "long":
		return HorizonLong, nil
	case "very_long":
		return HorizonVeryLong, nil
	default:
		return 0, fmt.Errorf("unknown investment horizon %q", name)
	}
}

// ModelPortfolio is a named base allocation covering a band of risk
// scores.
type ModelPortfolio struct {
	Name       string
	MinScore   int
	MaxScore   int
	Allocation map[string]float64 // base percentages, sum to 100
}

// modelPortfolios bucket risk scores 1-10 into five fixed models.
var modelPortfolios = []ModelPortfolio{
	{
		Name:     "Conservative",
		MinScore: 1, MaxScore: 2,
		Allocation: map[string]float64{
			ClassUSStocks:   15,
			ClassIntlStocks: 5,
			ClassBonds:      60,
			ClassRealEstate: 5,
			ClassCash:       15,
		},
	},
	{
		Name:     "Moderately Conservative",
		MinScore: 3, MaxScore: 4,
		Allocation: map[string]float64{
			ClassUSStocks:   25,
			ClassIntlStocks: 10,
			ClassBonds:      45,
			ClassRealEstate: 10,
			ClassCash:       10,
		},
	},
	{
		Name:     "Moderate",
		MinScore: 5, MaxScore: 6,
		Allocation: map[string]float64{
			ClassUSStocks:   35,
			ClassIntlStocks: 15,
			ClassBonds:      30,
			ClassRealEstate: 12,
			ClassCash:       8,
		},
	},
	{
		Name:     "Moderately Aggressive",
		MinScore: 7, MaxScore: 8,
		Allocation: map[string]float64{
			ClassUSStocks:   45,
			ClassIntlStocks: 20,
			ClassBonds:      20,
			ClassRealEstate: 10,
			ClassCash:       5,
		},
	},
	{
		Name:     "Aggressive",
		MinScore: 9, MaxScore: 10,
		Allocation: map[string]float64{
			ClassUSStocks:   55,
			ClassIntlStocks: 25,
			ClassBonds:      10,
			ClassRealEstate: 7,
			ClassCash:       3,
		},
	},
}

// classAssumption holds long-run capital market assumptions per asset
// class, used only for the advisory expected-performance figures.
type classAssumption struct {
	ExpectedReturn float64 // annual, percent
	Volatility     float64 // annual, percent
}

var classAssumptions = map[string]classAssumption{
	ClassUSStocks:   {ExpectedReturn: 8.0, Volatility: 16.0},
	ClassIntlStocks: {ExpectedReturn: 7.5, Volatility: 17.5},
	ClassBonds:      {ExpectedReturn: 4.0, Volatility: 5.5},
	ClassRealEstate: {ExpectedReturn: 6.5, Volatility: 14.0},
	ClassCash:       {ExpectedReturn: 2.0, Volatility: 0.5},
}

// riskFreeRatePct anchors the risk-adjusted return figure.
const riskFreeRatePct = 2.0
