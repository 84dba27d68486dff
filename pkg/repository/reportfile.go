package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// FileReportStore writes the report document to a well-known path
// consumed by the web dashboard
type FileReportStore struct {
	path string
}

// NewFileReportStore creates a file-backed report store
func NewFileReportStore(path string) *FileReportStore {
	return &FileReportStore{path: path}
}

var _ interfaces.ReportStore = (*FileReportStore)(nil)

// SaveReport writes the report as pretty-printed JSON, creating the
// output directory on demand
func (s *FileReportStore) SaveReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return goerr.Wrap(err, "failed to create output directory",
				goerr.V("dir", dir))
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal report")
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write report",
			goerr.V("path", s.path))
	}

	ctxlog.From(ctx).Info("Report written",
		"path", s.path,
		"bytes", len(data),
		"cnas", report.Metadata.TotalCNAs,
	)
	return nil
}
