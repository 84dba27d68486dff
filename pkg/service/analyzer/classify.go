package analyzer

import (
	"math"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
)

// classification is the outcome of the status decision for one CNA
type classification struct {
	status       types.Status
	deviationPct float64
}

// classify assigns a status by comparing current-window activity to the
// baseline average. The decision order matters:
//
//  1. No records anywhere in the corpus: Inactive.
//  2. Zero baseline but current activity: a new or reactivated CNA,
//     reported as Growth with the infinite-deviation sentinel.
//  3. Otherwise the ratio policy. The thresholds are inclusive on the
//     Normal side: a CNA at exactly the growth or decline multiple of
//     its baseline stays Normal.
func classify(cfg model.AnalysisConfig, baselineAvg float64, currentCount, totalRecords int) classification {
	if totalRecords == 0 {
		return classification{
			status:       types.StatusInactive,
			deviationPct: types.DeviationNotApplicable,
		}
	}

	if baselineAvg == 0 && currentCount > 0 {
		return classification{
			status:       types.StatusGrowth,
			deviationPct: types.DeviationInfinite,
		}
	}

	var deviation float64
	if baselineAvg > 0 {
		deviation = round1((float64(currentCount) - baselineAvg) / baselineAvg * 100)
	}

	current := float64(currentCount)
	switch {
	case current > cfg.GrowthThreshold*baselineAvg:
		return classification{status: types.StatusGrowth, deviationPct: deviation}
	case current < cfg.DeclineThreshold*baselineAvg:
		return classification{status: types.StatusDeclining, deviationPct: deviation}
	default:
		return classification{status: types.StatusNormal, deviationPct: deviation}
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
