package repository

import (
	"context"
	"sync"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements the source and store interfaces with in-memory
// data. It backs tests and dry runs where no corpus clone exists.
type Memory struct {
	mu       sync.RWMutex
	records  []model.Record
	skipped  int
	registry *model.Registry
	reports  []*model.Report
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		registry: model.NewRegistry(),
	}
}

// SetRecords replaces the record set the source will return. The
// skipped count emulates records a real source dropped while loading.
func (m *Memory) SetRecords(records []model.Record, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]model.Record(nil), records...)
	m.skipped = skipped
}

// SetRegistry replaces the registry the source will return
func (m *Memory) SetRegistry(registry *model.Registry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registry = registry
}

// LoadRecords returns the staged record set
func (m *Memory) LoadRecords(ctx context.Context) ([]model.Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Record, len(m.records))
	copy(out, m.records)
	return out, m.skipped, nil
}

// LoadRegistry returns the staged registry
func (m *Memory) LoadRegistry(ctx context.Context) (*model.Registry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.registry == nil {
		return nil, goerr.New("no registry staged")
	}
	return m.registry, nil
}

// SaveReport records the report in memory
func (m *Memory) SaveReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return nil
}

// SavedReports returns the reports saved so far
func (m *Memory) SavedReports() []*model.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Report, len(m.reports))
	copy(out, m.reports)
	return out
}
