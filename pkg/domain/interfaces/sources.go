package interfaces

import (
	"context"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
)

// RecordSource supplies the CVE publication records for one analysis
// run. Skipped counts malformed entries the source dropped on the way;
// dropping them is never an error.
type RecordSource interface {
	LoadRecords(ctx context.Context) (records []model.Record, skipped int, err error)
}

// RegistrySource supplies the official CNA registry defining the
// universe of CNAs that must appear in the report.
type RegistrySource interface {
	LoadRegistry(ctx context.Context) (*model.Registry, error)
}

// ReportStore persists the report document emitted by a run
type ReportStore interface {
	SaveReport(ctx context.Context, report *model.Report) error
}

// Notifier announces the outcome of a run to an external channel
type Notifier interface {
	NotifyReport(ctx context.Context, report *model.Report) error
}
