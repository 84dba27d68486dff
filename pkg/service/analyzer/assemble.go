package analyzer

import (
	"math"
	"sort"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
)

// assembleRow joins one CNA's computed metrics with registry metadata
func assembleRow(cfg model.AnalysisConfig, w windows, activity *cnaActivity, registry *model.Registry) model.CNAReport {
	profile := registry.Lookup(activity.shortName, activity.assignerID)

	avg := baselineAverage(activity.monthCounts, w.baselineMonths)
	result := classify(cfg, avg, activity.currentCount, activity.totalRecords)

	var stdDev *float64
	if sd := baselineStdDev(activity.monthCounts, w.baselineMonths); sd > 0 {
		rounded := round2(sd)
		stdDev = &rounded
	}

	var daysSince *int
	if !activity.lastPublished.IsZero() {
		days := int(w.now.Sub(activity.lastPublished).Hours() / 24)
		if days < 0 {
			// Future-dated records exist in the corpus; clamp rather
			// than report a negative age.
			days = 0
		}
		daysSince = &days
	}

	return model.CNAReport{
		AssignerID:       activity.assignerID.String(),
		Name:             profile.ShortName.String(),
		OrgName:          profile.DisplayOrgName(),
		AdvisoryURL:      profile.AdvisoryURL,
		Status:           result.status,
		BaselineAvg:      round2(avg),
		CurrentCount:     activity.currentCount,
		DeviationPct:     result.deviationPct,
		DaysSinceLastCVE: daysSince,
		StdDev:           stdDev,
		ThresholdLow:     round2(cfg.DeclineThreshold * avg),
		ThresholdHigh:    round2(cfg.GrowthThreshold * avg),
		Timeline:         buildTimeline(w, activity.monthCounts, activity.currentCount),
	}
}

// assembleInactiveRow produces the all-zero row for a registered CNA
// with no records anywhere in the corpus
func assembleInactiveRow(w windows, profile model.CNAProfile) model.CNAReport {
	assignerID := "unknown"
	if profile.UUID != "" {
		assignerID = profile.UUID.Canonical().String()
	}

	return model.CNAReport{
		AssignerID:   assignerID,
		Name:         profile.ShortName.String(),
		OrgName:      profile.DisplayOrgName(),
		AdvisoryURL:  profile.AdvisoryURL,
		Status:       types.StatusInactive,
		DeviationPct: types.DeviationNotApplicable,
		Timeline:     buildTimeline(w, nil, 0),
	}
}

// sortRows orders report rows for display: by deviation descending with
// Inactive CNAs forced to the bottom, name as tie-breaker so identical
// inputs always produce an identical document.
func sortRows(rows []model.CNAReport) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if (a.Status == types.StatusInactive) != (b.Status == types.StatusInactive) {
			return b.Status == types.StatusInactive
		}
		if a.DeviationPct != b.DeviationPct {
			return a.DeviationPct > b.DeviationPct
		}
		return a.Name < b.Name
	})
}

// anomalyRank treats the infinite sentinel as the highest magnitude
func anomalyRank(deviation float64) float64 {
	if deviation >= types.DeviationInfinite {
		return types.DeviationInfinite
	}
	return math.Abs(deviation)
}

// collectAnomalies extracts the Growth and Declining rows sorted by
// deviation magnitude
func collectAnomalies(rows []model.CNAReport) []model.CNAReport {
	anomalies := make([]model.CNAReport, 0)
	for _, row := range rows {
		if row.Status.IsAnomaly() {
			anomalies = append(anomalies, row)
		}
	}
	sort.SliceStable(anomalies, func(i, j int) bool {
		a, b := anomalyRank(anomalies[i].DeviationPct), anomalyRank(anomalies[j].DeviationPct)
		if a != b {
			return a > b
		}
		return anomalies[i].Name < anomalies[j].Name
	})
	return anomalies
}
