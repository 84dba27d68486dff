package usecase

import (
	"context"
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/service/analyzer"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Analyze orchestrates one analysis run: load the registry and corpus,
// run the classification engine, persist the report, and announce the
// outcome.
type Analyze struct {
	records  interfaces.RecordSource
	registry interfaces.RegistrySource
	store    interfaces.ReportStore
	notifier interfaces.Notifier
	engine   *analyzer.Analyzer
}

// NewAnalyze creates the analyze use case. The notifier may be nil when
// no notification channel is configured.
func NewAnalyze(
	records interfaces.RecordSource,
	registry interfaces.RegistrySource,
	store interfaces.ReportStore,
	notifier interfaces.Notifier,
	cfg model.AnalysisConfig,
) *Analyze {
	return &Analyze{
		records:  records,
		registry: registry,
		store:    store,
		notifier: notifier,
		engine:   analyzer.New(cfg),
	}
}

// Run executes the pipeline against the given reference timestamp.
// Registry or corpus unavailability aborts the run; a failed
// notification only logs, the report on disk is already complete.
func (uc *Analyze) Run(ctx context.Context, now time.Time) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	registry, err := uc.registry.LoadRegistry(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load CNA registry")
	}

	records, sourceSkipped, err := uc.records.LoadRecords(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load CVE records")
	}

	report, stats, err := uc.engine.Run(now, records, registry)
	if err != nil {
		return nil, goerr.Wrap(err, "analysis failed")
	}

	logger.Info("Analysis complete",
		"records", stats.TotalRecords,
		"skipped", stats.SkippedRecords+sourceSkipped,
		"total_cnas", report.Metadata.TotalCNAs,
		"growth", report.Metadata.CNAsGrowth,
		"normal", report.Metadata.CNAsNormal,
		"declining", report.Metadata.CNAsDeclining,
		"inactive", report.Metadata.CNAsInactive,
	)

	if err := uc.store.SaveReport(ctx, report); err != nil {
		return nil, goerr.Wrap(err, "failed to save report")
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyReport(ctx, report); err != nil {
			logger.Warn("Failed to send report notification", "error", err)
		}
	}

	return report, nil
}
