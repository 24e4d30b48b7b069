package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincompass/engine/pkg/logger"
)

func testRecommender() *Recommender {
	return NewRecommender(logger.New(logger.Config{Level: "error", Pretty: false}))
}

func allocationSum(alloc map[string]float64) float64 {
	sum := 0.0
	for _, pct := range alloc {
		sum += pct
	}
	return sum
}

func TestRecommend_ModelBuckets(t *testing.T) {
	r := testRecommender()

	tests := []struct {
		riskScore int
		wantModel string
	}{
		{riskScore: 1, wantModel: "Conservative"},
		{riskScore: 2, wantModel: "Conservative"},
		{riskScore: 3, wantModel: "Moderately Conservative"},
		{riskScore: 4, wantModel: "Moderately Conservative"},
		{riskScore: 5, wantModel: "Moderate"},
		{riskScore: 6, wantModel: "Moderate"},
		{riskScore: 7, wantModel: "Moderately Aggressive"},
		{riskScore: 8, wantModel: "Moderately Aggressive"},
		{riskScore: 9, wantModel: "Aggressive"},
		{riskScore: 10, wantModel: "Aggressive"},
	}

	for _, tt := range tests {
		rec, err := r.Recommend(tt.riskScore, 30, HorizonMedium)
		require.NoError(t, err)
		assert.Equal(t, tt.wantModel, rec.ModelName, "risk score %d", tt.riskScore)
	}
}

func TestRecommend_InvalidInputs(t *testing.T) {
	r := testRecommender()

	_, err := r.Recommend(0, 30, HorizonMedium)
	assert.Error(t, err)

	_, err = r.Recommend(11, 30, HorizonMedium)
	assert.Error(t, err)

	_, err = r.Recommend(5, -1, HorizonMedium)
	assert.Error(t, err)
}

func TestRecommend_PercentagesAlwaysSumToHundred(t *testing.T) {
	r := testRecommender()

	horizons := []Horizon{HorizonShort, HorizonMedium, HorizonLong, HorizonVeryLong}
	ages := []int{18, 30, 45, 60, 75, 95}

	for score := 1; score <= 10; score++ {
		for _, horizon := range horizons {
			for _, age := range ages {
				rec, err := r.Recommend(score, age, horizon)
				require.NoError(t, err)

				sum := allocationSum(rec.Allocation)
				assert.InDelta(t, 100.0, sum, 0.1,
					"score %d age %d horizon %s: sum = %v", score, age, horizon, sum)

				for class, pct := range rec.Allocation {
					assert.GreaterOrEqual(t, pct, 0.0,
						"score %d age %d horizon %s: %s is negative", score, age, horizon, class)
				}
			}
		}
	}
}

func TestRecommend_AgeAdjustmentShiftsStocksToBonds(t *testing.T) {
	r := testRecommender()

	young, err := r.Recommend(5, 30, HorizonMedium)
	require.NoError(t, err)
	older, err := r.Recommend(5, 50, HorizonMedium)
	require.NoError(t, err)

	// clamp((50-30)/2, 0, 20) = 10 points from stocks into bonds.
	youngStocks := young.Allocation[ClassUSStocks] + young.Allocation[ClassIntlStocks]
	olderStocks := older.Allocation[ClassUSStocks] + older.Allocation[ClassIntlStocks]
	assert.InDelta(t, youngStocks-10, olderStocks, 0.2)
	assert.InDelta(t, young.Allocation[ClassBonds]+10, older.Allocation[ClassBonds], 0.2)

	// Proportional split: US keeps twice the intl weight (35/15 base,
	// 70/30 of the stock sleeve).
	assert.Greater(t, older.Allocation[ClassUSStocks], older.Allocation[ClassIntlStocks])
}

func TestRecommend_AgeAdjustmentClamps(t *testing.T) {
	r := testRecommender()

	at70, err := r.Recommend(5, 70, HorizonMedium)
	require.NoError(t, err)
	at95, err := r.Recommend(5, 95, HorizonMedium)
	require.NoError(t, err)

	// Both ages are past the 20-point clamp, so allocations match.
	assert.InDeltaMapValues(t, at70.Allocation, at95.Allocation, 0.01)

	under30, err := r.Recommend(5, 22, HorizonMedium)
	require.NoError(t, err)
	at30, err := r.Recommend(5, 30, HorizonMedium)
	require.NoError(t, err)
	assert.InDeltaMapValues(t, under30.Allocation, at30.Allocation, 0.01,
		"ages at or below 30 get no adjustment")
}

func TestRecommend_ShortHorizonReducesStocks(t *testing.T) {
	r := testRecommender()

	medium, err := r.Recommend(6, 30, HorizonMedium)
	require.NoError(t, err)
	short, err := r.Recommend(6, 30, HorizonShort)
	require.NoError(t, err)

	mediumStocks := medium.Allocation[ClassUSStocks] + medium.Allocation[ClassIntlStocks]
	shortStocks := short.Allocation[ClassUSStocks] + short.Allocation[ClassIntlStocks]

	assert.Less(t, shortStocks, mediumStocks)
	assert.Greater(t, short.Allocation[ClassBonds], medium.Allocation[ClassBonds])
	assert.Greater(t, short.Allocation[ClassCash], medium.Allocation[ClassCash])
}

func TestRecommend_VeryLongHorizonIncreasesStocks(t *testing.T) {
	r := testRecommender()

	long, err := r.Recommend(6, 30, HorizonLong)
	require.NoError(t, err)
	veryLong, err := r.Recommend(6, 30, HorizonVeryLong)
	require.NoError(t, err)

	longStocks := long.Allocation[ClassUSStocks] + long.Allocation[ClassIntlStocks]
	veryLongStocks := veryLong.Allocation[ClassUSStocks] + veryLong.Allocation[ClassIntlStocks]

	assert.Greater(t, veryLongStocks, longStocks)
	assert.Less(t, veryLong.Allocation[ClassBonds], long.Allocation[ClassBonds])
}

func TestRecommend_VeryLongHorizonBondsNeverNegative(t *testing.T) {
	r := testRecommender()

	// Aggressive base has only 10 bonds; age 30 leaves it untouched, so
	// the very_long shift consumes exactly what is available.
	rec, err := r.Recommend(10, 30, HorizonVeryLong)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.Allocation[ClassBonds], 0.0)
	assert.InDelta(t, 100.0, allocationSum(rec.Allocation), 0.1)
}

func TestRecommend_MediumAndLongLeaveAllocationUnchanged(t *testing.T) {
	r := testRecommender()

	medium, err := r.Recommend(5, 30, HorizonMedium)
	require.NoError(t, err)
	long, err := r.Recommend(5, 30, HorizonLong)
	require.NoError(t, err)

	assert.InDeltaMapValues(t, medium.Allocation, long.Allocation, 0.01)

	// Base model untouched at age 30 / medium horizon.
	assert.Equal(t, 35.0, medium.Allocation[ClassUSStocks])
	assert.Equal(t, 30.0, medium.Allocation[ClassBonds])
}

func TestRecommend_ExpectedPerformanceFigures(t *testing.T) {
	r := testRecommender()

	conservative, err := r.Recommend(1, 30, HorizonMedium)
	require.NoError(t, err)
	aggressive, err := r.Recommend(10, 30, HorizonMedium)
	require.NoError(t, err)

	assert.Greater(t, aggressive.ExpectedReturnPct, conservative.ExpectedReturnPct)
	assert.Greater(t, aggressive.VolatilityPct, conservative.VolatilityPct)
	assert.NotZero(t, conservative.RiskAdjustedReturn)
}

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		input   string
		want    Horizon
		wantErr bool
	}{
		{input: "short", want: HorizonShort},
		{input: "medium", want: HorizonMedium},
		{input: "long", want: HorizonLong},
		{input: "very_long", want: HorizonVeryLong},
		{input: "forever", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHorizon(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
