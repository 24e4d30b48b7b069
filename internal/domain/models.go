package domain

import "github.com/shopspring/decimal"

// Debt represents a single liability supplied by the caller.
// Records are treated as immutable inputs: the payoff simulation works on
// its own private copy and never writes back.
type Debt struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	OriginalBalance decimal.Decimal `json:"original_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	InterestRate    decimal.Decimal `json:"interest_rate"` // Annual rate as a percentage (18.0 = 18%)
	MinimumPayment  decimal.Decimal `json:"minimum_payment"`
}

// Holding represents a position in a portfolio, grouped by asset class.
type Holding struct {
	AssetClass    string           `json:"asset_class"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	CurrentPrice  *decimal.Decimal `json:"current_price,omitempty"` // nil falls back to purchase price
}

// MarketValue returns quantity x current price, falling back to the
// purchase price when no current price is known.
func (h Holding) MarketValue() decimal.Decimal {
	price := h.PurchasePrice
	if h.CurrentPrice != nil {
		price = *h.CurrentPrice
	}
	return h.Quantity.Mul(price)
}

// AllocationMap maps an asset-class key to a percentage (0-100).
// Percentages of a single map sum to 100 (within rounding) whenever the
// underlying value is positive.
type AllocationMap map[string]float64

// CashAssetClass is the bucket used for uninvested or zero-value portfolios.
const CashAssetClass = "cash"
