package analysis

// band awards points when a value clears its threshold. Bands of a factor are
// checked in order and only the first match counts.
type band struct {
	threshold float64
	points    int
}

// Higher is better.
var (
	savingsBands     = []band{{20, 25}, {15, 20}, {10, 15}, {5, 10}}
	emergencyBands   = []band{{6, 20}, {3, 15}, {1, 8}}
	liquidityBands   = []band{{2, 15}, {1.5, 12}, {1, 8}}
	assetReturnBands = []band{{5, 10}, {3, 8}, {1, 5}}
)

// Lower is better.
var (
	debtToIncomeBands = []band{{20, 20}, {30, 15}, {40, 10}, {50, 5}}
	debtToAssetBands  = []band{{30, 10}, {50, 8}, {70, 5}}
)

func atLeast(v float64, bands []band) int {
	for _, b := range bands {
		if v >= b.threshold {
			return b.points
		}
	}
	return 0
}

func atMost(v float64, bands []band) int {
	for _, b := range bands {
		if v <= b.threshold {
			return b.points
		}
	}
	return 0
}

// Score sums the weighted rubric: savings 25, emergency fund 20, debt to
// income 20, liquidity 15, asset return 10, debt to assets 10.
func Score(r Ratios) int {
	return atLeast(r.SavingsRate, savingsBands) +
		atLeast(r.EmergencyFundCoverage, emergencyBands) +
		atMost(r.DebtToIncomeRatio, debtToIncomeBands) +
		atLeast(r.CurrentRatio, liquidityBands) +
		atLeast(r.AssetReturnRate, assetReturnBands) +
		atMost(r.DebtToAssetRatio, debtToAssetBands)
}

// LevelFor classifies a health score.
func LevelFor(score int) HealthLevel {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}
