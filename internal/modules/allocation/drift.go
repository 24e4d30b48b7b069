package allocation

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/fincompass/engine/internal/domain"
)

// Analyzer measures per-class drift between a current and a target
// allocation.
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a drift analyzer.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		log: log.With().Str("service", "drift_analyzer").Logger(),
	}
}

// Analyze compares current against target allocation per asset class.
// Classes absent from one side count as 0 there. An entry needs
// rebalancing when its absolute drift exceeds thresholdPct; positive
// drift (overweight) sells, negative buys. Entries come back sorted by
// absolute drift descending.
func (a *Analyzer) Analyze(current, target domain.AllocationMap, thresholdPct float64) DriftReport {
	report := DriftReport{
		Entries:      []DriftEntry{},
		ThresholdPct: thresholdPct,
	}

	for _, class := range unionClasses(current, target) {
		drift := current[class] - target[class]

		entry := DriftEntry{
			AssetClass: class,
			CurrentPct: current[class],
			TargetPct:  target[class],
			Drift:      drift,
			Action:     ActionHold,
		}

		if math.Abs(drift) > thresholdPct {
			entry.NeedsRebalance = true
			if drift > 0 {
				entry.Action = ActionSell
			} else {
				entry.Action = ActionBuy
			}
			report.NeedsRebalancing = true
		}

		if math.Abs(drift) > report.MaxDrift {
			report.MaxDrift = math.Abs(drift)
		}

		report.Entries = append(report.Entries, entry)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return math.Abs(report.Entries[i].Drift) > math.Abs(report.Entries[j].Drift)
	})

	return report
}

// unionClasses returns the sorted union of class keys in both maps.
// Sorting keeps equal-drift ordering deterministic.
func unionClasses(current, target domain.AllocationMap) []string {
	seen := make(map[string]bool, len(current)+len(target))
	for class := range current {
		seen[class] = true
	}
	for class := range target {
		seen[class] = true
	}

	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	return classes
}
