package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincompass/engine/internal/domain"
	"github.com/fincompass/engine/pkg/logger"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(logger.New(logger.Config{Level: "error", Pretty: false}))
}

func TestAnalyze_OverweightSells(t *testing.T) {
	a := testAnalyzer()

	report := a.Analyze(
		domain.AllocationMap{"stocks": 70},
		domain.AllocationMap{"stocks": 50},
		5,
	)

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]

	assert.True(t, entry.NeedsRebalance)
	assert.Equal(t, ActionSell, entry.Action)
	assert.Equal(t, 20.0, entry.Drift)
	assert.True(t, report.NeedsRebalancing)
	assert.Equal(t, 20.0, report.MaxDrift)
}

func TestAnalyze_UnionOfClasses(t *testing.T) {
	a := testAnalyzer()

	report := a.Analyze(
		domain.AllocationMap{"stocks": 90, "cash": 10},
		domain.AllocationMap{"stocks": 60, "bonds": 40},
		5,
	)

	byClass := make(map[string]DriftEntry)
	for _, e := range report.Entries {
		byClass[e.AssetClass] = e
	}
	require.Len(t, byClass, 3)

	// bonds absent from current: drift -40, must buy.
	assert.Equal(t, ActionBuy, byClass["bonds"].Action)
	assert.Equal(t, -40.0, byClass["bonds"].Drift)
	assert.Equal(t, 0.0, byClass["bonds"].CurrentPct)

	// cash absent from target: drift +10, must sell.
	assert.Equal(t, ActionSell, byClass["cash"].Action)
	assert.Equal(t, 10.0, byClass["cash"].Drift)
	assert.Equal(t, 0.0, byClass["cash"].TargetPct)

	assert.Equal(t, ActionSell, byClass["stocks"].Action)
}

func TestAnalyze_SortedByAbsoluteDrift(t *testing.T) {
	a := testAnalyzer()

	report := a.Analyze(
		domain.AllocationMap{"a": 52, "b": 30, "c": 18},
		domain.AllocationMap{"a": 40, "b": 38, "c": 22},
		5,
	)

	require.Len(t, report.Entries, 3)
	assert.Equal(t, "a", report.Entries[0].AssetClass) // |+12|
	assert.Equal(t, "b", report.Entries[1].AssetClass) // |-8|
	assert.Equal(t, "c", report.Entries[2].AssetClass) // |-4|
	assert.Equal(t, 12.0, report.MaxDrift)
}

func TestAnalyze_ThresholdIsExclusive(t *testing.T) {
	a := testAnalyzer()

	report := a.Analyze(
		domain.AllocationMap{"stocks": 55, "bonds": 45},
		domain.AllocationMap{"stocks": 50, "bonds": 50},
		5,
	)

	// Drift of exactly 5 with threshold 5 must hold.
	for _, e := range report.Entries {
		assert.Equal(t, ActionHold, e.Action, "class %s", e.AssetClass)
		assert.False(t, e.NeedsRebalance)
	}
	assert.False(t, report.NeedsRebalancing)
	assert.Equal(t, 5.0, report.MaxDrift)
}

func TestAnalyze_BalancedPortfolio(t *testing.T) {
	a := testAnalyzer()

	target := domain.AllocationMap{"stocks": 60, "bonds": 40}
	report := a.Analyze(target, target, 5)

	assert.False(t, report.NeedsRebalancing)
	assert.Equal(t, 0.0, report.MaxDrift)
	for _, e := range report.Entries {
		assert.Equal(t, ActionHold, e.Action)
	}
}
