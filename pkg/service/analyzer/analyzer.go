// Package analyzer implements the aggregation-baseline-classification
// engine: it turns a flat stream of CVE publication records into
// per-CNA monthly histograms, a historical baseline, a deviation
// metric, and a discrete activity status.
//
// The engine is a pure function of (records, registry, reference
// timestamp). It holds no state across runs; diagnostics such as the
// skipped-record count are returned alongside the report.
package analyzer

import (
	"sort"
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Analyzer runs the classification pipeline with a fixed configuration
type Analyzer struct {
	cfg model.AnalysisConfig
}

// Stats carries run diagnostics that are not part of the report
// contract
type Stats struct {
	TotalRecords   int
	SkippedRecords int
}

// New creates an Analyzer. The configuration is validated on Run.
func New(cfg model.AnalysisConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Run executes one analysis over the materialized inputs. The registry
// defines the universe of CNAs: every registered CNA appears in the
// report exactly once, and CNAs observed only in the record stream are
// joined in with synthesized display metadata. A missing registry is
// the only fatal condition; malformed records are skipped and counted.
func (a *Analyzer) Run(now time.Time, records []model.Record, registry *model.Registry) (*model.Report, Stats, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, Stats{}, goerr.Wrap(err, "invalid analysis configuration")
	}
	if registry == nil {
		return nil, Stats{}, goerr.New("CNA registry is required")
	}

	w := computeWindows(now.UTC(), a.cfg)

	normalized, skipped := normalizeRecords(records)
	stats := Stats{
		TotalRecords:   len(normalized),
		SkippedRecords: skipped,
	}

	activities := aggregate(normalized, w)

	// Deterministic iteration so identical inputs yield an identical
	// document.
	ids := make([]types.CNAID, 0, len(activities))
	for id := range activities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]model.CNAReport, 0, len(activities)+registry.Len())
	seen := make(map[types.ShortName]bool, len(activities))
	for _, id := range ids {
		row := assembleRow(a.cfg, w, activities[id], registry)
		rows = append(rows, row)
		seen[types.ShortName(row.Name).Fold()] = true
	}

	// Registered CNAs absent from the corpus produce Inactive rows;
	// their silence is part of the report.
	for _, profile := range registry.Profiles() {
		if seen[profile.ShortName.Fold()] {
			continue
		}
		rows = append(rows, assembleInactiveRow(w, profile))
	}

	sortRows(rows)
	anomalies := collectAnomalies(rows)

	report := &model.Report{
		Metadata: model.ReportMetadata{
			GeneratedAt:          time.Now().UTC(),
			MonitoringWindowDays: a.cfg.MonitoringWindowDays,
			BaselineMonths:       a.cfg.BaselineMonths,
			MonitoringStart:      w.monitoringStart,
			MonitoringEnd:        w.now,
			BaselineStart:        w.baselineStart,
			BaselineEnd:          w.baselineEnd,
			TotalCNAs:            len(rows),
			TotalAnomalies:       len(anomalies),
		},
		CNAs:      rows,
		Anomalies: anomalies,
	}
	report.Metadata.CNAsGrowth = report.StatusCount(types.StatusGrowth)
	report.Metadata.CNAsNormal = report.StatusCount(types.StatusNormal)
	report.Metadata.CNAsDeclining = report.StatusCount(types.StatusDeclining)
	report.Metadata.CNAsInactive = report.StatusCount(types.StatusInactive)

	return report, stats, nil
}
