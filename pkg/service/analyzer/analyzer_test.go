package analyzer_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/RogoLabs/CNAPulse/pkg/service/analyzer"
)

// Reference timestamp for all tests: the current window is
// [2025-07-16 12:00, 2025-08-15 12:00) and the baseline months are
// July 2024 through June 2025.
var testNow = time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

func record(id, name string, at time.Time) model.Record {
	return model.Record{
		CVEID:       types.CVEID(fmt.Sprintf("CVE-2025-%d", at.UnixNano()%100000)),
		AssignerID:  types.CNAID(id),
		ShortName:   types.ShortName(name),
		PublishedAt: at,
	}
}

// baselineRecords spreads perMonth records over each of the 12
// baseline months
func baselineRecords(id, name string, perMonth int) []model.Record {
	var records []model.Record
	first := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 12; m++ {
		day := first.AddDate(0, m, 0)
		for i := 0; i < perMonth; i++ {
			records = append(records, record(id, name, day.Add(time.Duration(i)*time.Hour)))
		}
	}
	return records
}

// currentRecords places n records inside the rolling 30-day window
func currentRecords(id, name string, n int) []model.Record {
	var records []model.Record
	base := testNow.AddDate(0, 0, -2)
	for i := 0; i < n; i++ {
		records = append(records, record(id, name, base.Add(time.Duration(i)*time.Minute)))
	}
	return records
}

func testRegistry(t *testing.T) *model.Registry {
	t.Helper()
	registry := model.NewRegistry()
	gt.NoError(t, registry.Add(model.CNAProfile{
		ShortName:   "acme",
		OrgName:     "ACME Security",
		AdvisoryURL: "https://acme.example/advisories",
		UUID:        "6b35d637-e00f-4e7b-8c6e-37dd53af9c05",
	}))
	gt.NoError(t, registry.Add(model.CNAProfile{
		ShortName: "silent-cna",
		OrgName:   "Silent Corp",
		UUID:      "0a1b2c3d-0000-4000-8000-000000000001",
	}))
	return registry
}

func findCNA(t *testing.T, report *model.Report, name string) model.CNAReport {
	t.Helper()
	for _, cna := range report.CNAs {
		if cna.Name == name {
			return cna
		}
	}
	t.Fatalf("CNA %s not found in report", name)
	return model.CNAReport{}
}

func runAnalysis(t *testing.T, records []model.Record) *model.Report {
	t.Helper()
	report, _, err := analyzer.New(model.DefaultAnalysisConfig()).Run(testNow, records, testRegistry(t))
	gt.NoError(t, err)
	return report
}

func TestClassificationBoundaries(t *testing.T) {
	cases := []struct {
		name          string
		current       int
		wantStatus    types.Status
		wantDeviation float64
	}{
		{"exactly 2.5x stays normal", 25, types.StatusNormal, 150},
		{"above 2.5x is growth", 26, types.StatusGrowth, 160},
		{"exactly 0.5x stays normal", 5, types.StatusNormal, -50},
		{"below 0.5x is declining", 4, types.StatusDeclining, -60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := baselineRecords("id-acme", "acme", 10)
			records = append(records, currentRecords("id-acme", "acme", tc.current)...)

			report := runAnalysis(t, records)
			cna := findCNA(t, report, "acme")

			gt.Equal(t, cna.Status, tc.wantStatus)
			gt.Equal(t, cna.BaselineAvg, 10.0)
			gt.Equal(t, cna.CurrentCount, tc.current)
			gt.Equal(t, cna.DeviationPct, tc.wantDeviation)
			gt.Equal(t, cna.ThresholdLow, 5.0)
			gt.Equal(t, cna.ThresholdHigh, 25.0)
		})
	}
}

func TestNewlyActiveCNA(t *testing.T) {
	records := currentRecords("id-new", "newcomer", 3)

	report := runAnalysis(t, records)
	cna := findCNA(t, report, "newcomer")

	gt.Equal(t, cna.Status, types.StatusGrowth)
	gt.Equal(t, cna.BaselineAvg, 0.0)
	gt.Equal(t, cna.CurrentCount, 3)
	gt.Equal(t, cna.DeviationPct, types.DeviationInfinite)
	gt.Equal(t, cna.ThresholdLow, 0.0)
	gt.Equal(t, cna.ThresholdHigh, 0.0)
	gt.NotNil(t, cna.DaysSinceLastCVE)
	gt.Equal(t, *cna.DaysSinceLastCVE, 1)
}

func TestInactiveCNA(t *testing.T) {
	report := runAnalysis(t, nil)
	cna := findCNA(t, report, "silent-cna")

	gt.Equal(t, cna.Status, types.StatusInactive)
	gt.Equal(t, cna.BaselineAvg, 0.0)
	gt.Equal(t, cna.CurrentCount, 0)
	gt.Equal(t, cna.DeviationPct, types.DeviationNotApplicable)
	gt.Nil(t, cna.DaysSinceLastCVE)
	gt.Nil(t, cna.StdDev)
	gt.Equal(t, cna.AssignerID, "0a1b2c3d-0000-4000-8000-000000000001")
	gt.Equal(t, cna.OrgName, "Silent Corp")

	gt.Equal(t, len(cna.Timeline), 13)
	for _, entry := range cna.Timeline {
		gt.Equal(t, entry.Count, 0)
	}
}

func TestDormantCNAIsNotInactive(t *testing.T) {
	// Records exist, but all predate the 13-month horizon
	old := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []model.Record{
		record("id-dormant", "dormant", old),
		record("id-dormant", "dormant", old.AddDate(0, 1, 0)),
	}

	report := runAnalysis(t, records)
	cna := findCNA(t, report, "dormant")

	gt.Equal(t, cna.Status, types.StatusNormal)
	gt.Equal(t, cna.BaselineAvg, 0.0)
	gt.Equal(t, cna.CurrentCount, 0)
	gt.Equal(t, cna.DeviationPct, 0.0)
	gt.NotNil(t, cna.DaysSinceLastCVE)
	gt.True(t, *cna.DaysSinceLastCVE > 1000)
}

func TestTimelineShape(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 2)
	records = append(records, currentRecords("id-acme", "acme", 7)...)

	report := runAnalysis(t, records)
	cna := findCNA(t, report, "acme")

	gt.Equal(t, len(cna.Timeline), 13)

	var currentEntries int
	for _, entry := range cna.Timeline {
		if entry.IsCurrent {
			currentEntries++
		}
	}
	gt.Equal(t, currentEntries, 1)

	gt.Equal(t, cna.Timeline[0].Month, "Jul 2024")
	gt.Equal(t, cna.Timeline[0].Count, 2)
	gt.Equal(t, cna.Timeline[11].Month, "Jun 2025")
	gt.Equal(t, cna.Timeline[12].Month, "Aug 2025 (Current)")
	gt.Equal(t, cna.Timeline[12].Count, 7)
	gt.True(t, cna.Timeline[12].IsCurrent)
}

func TestMetadataTotals(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 10)
	records = append(records, currentRecords("id-acme", "acme", 26)...)
	records = append(records, currentRecords("id-new", "newcomer", 1)...)

	report := runAnalysis(t, records)
	meta := report.Metadata

	gt.Equal(t, meta.TotalCNAs, len(report.CNAs))
	gt.Equal(t, meta.CNAsGrowth+meta.CNAsNormal+meta.CNAsDeclining+meta.CNAsInactive, meta.TotalCNAs)
	gt.Equal(t, meta.CNAsGrowth, 2)
	gt.Equal(t, meta.CNAsInactive, 1)
	gt.Equal(t, meta.TotalAnomalies, len(report.Anomalies))
	gt.Equal(t, meta.MonitoringWindowDays, 30)
	gt.Equal(t, meta.BaselineMonths, 12)
	gt.Equal(t, meta.MonitoringEnd, testNow)
	gt.Equal(t, meta.BaselineStart, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
	gt.Equal(t, meta.BaselineEnd, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
}

func TestSkippedRecords(t *testing.T) {
	records := currentRecords("id-acme", "acme", 2)
	records = append(records,
		model.Record{ShortName: "no-assigner", PublishedAt: testNow.AddDate(0, 0, -1)},
		model.Record{AssignerID: "id-acme", ShortName: "acme"},
	)

	engine := analyzer.New(model.DefaultAnalysisConfig())
	report, stats, err := engine.Run(testNow, records, testRegistry(t))
	gt.NoError(t, err)

	gt.Equal(t, stats.SkippedRecords, 2)
	gt.Equal(t, stats.TotalRecords, 2)
	gt.Equal(t, findCNA(t, report, "acme").CurrentCount, 2)
}

func TestRowOrdering(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 10)
	records = append(records, currentRecords("id-acme", "acme", 4)...)
	records = append(records, currentRecords("id-new", "newcomer", 5)...)

	report := runAnalysis(t, records)

	gt.True(t, len(report.CNAs) >= 3)
	// Infinite-growth newcomer first, Inactive rows at the bottom
	gt.Equal(t, report.CNAs[0].Name, "newcomer")
	gt.Equal(t, report.CNAs[len(report.CNAs)-1].Status, types.StatusInactive)
}

func TestAnomalies(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 10)
	records = append(records, currentRecords("id-acme", "acme", 4)...)
	records = append(records, currentRecords("id-new", "newcomer", 5)...)

	report := runAnalysis(t, records)

	gt.Equal(t, len(report.Anomalies), 2)
	gt.Equal(t, report.Anomalies[0].Name, "newcomer")
	gt.Equal(t, report.Anomalies[0].DeviationPct, types.DeviationInfinite)
	gt.Equal(t, report.Anomalies[1].Name, "acme")
	gt.Equal(t, report.Anomalies[1].Status, types.StatusDeclining)

	for _, anomaly := range report.Anomalies {
		gt.True(t, anomaly.Status.IsAnomaly())
	}
}

func TestIdempotence(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 3)
	records = append(records, currentRecords("id-new", "newcomer", 2)...)

	first := runAnalysis(t, records)
	second := runAnalysis(t, records)

	// Identical except for the generation timestamp
	second.Metadata.GeneratedAt = first.Metadata.GeneratedAt
	gt.Equal(t, first.Metadata, second.Metadata)
	gt.Equal(t, first.CNAs, second.CNAs)
	gt.Equal(t, first.Anomalies, second.Anomalies)
}

func TestRegistryRequired(t *testing.T) {
	engine := analyzer.New(model.DefaultAnalysisConfig())
	_, _, err := engine.Run(testNow, nil, nil)
	gt.Error(t, err)
}

func TestRegistryMetadataJoin(t *testing.T) {
	// Short-name match is case-insensitive; unregistered CNAs fall back
	// to bare identifiers
	records := currentRecords("id-acme", "ACME", 1)
	records = append(records, currentRecords("id-ghost", "ghost", 1)...)

	report := runAnalysis(t, records)

	matched := findCNA(t, report, "acme")
	gt.Equal(t, matched.OrgName, "ACME Security")
	gt.Equal(t, matched.AdvisoryURL, "https://acme.example/advisories")

	unmatched := findCNA(t, report, "ghost")
	gt.Equal(t, unmatched.OrgName, "ghost")
	gt.Equal(t, unmatched.AdvisoryURL, "")
}

func TestFutureDatedRecordClampsDays(t *testing.T) {
	records := []model.Record{
		record("id-clock", "clockskew", testNow.Add(48*time.Hour)),
	}

	report := runAnalysis(t, records)
	cna := findCNA(t, report, "clockskew")

	gt.NotNil(t, cna.DaysSinceLastCVE)
	gt.Equal(t, *cna.DaysSinceLastCVE, 0)
	gt.Equal(t, cna.CurrentCount, 0)
}

func TestNonNegativeInvariants(t *testing.T) {
	records := baselineRecords("id-acme", "acme", 4)
	records = append(records, currentRecords("id-new", "newcomer", 2)...)

	report := runAnalysis(t, records)
	for _, cna := range report.CNAs {
		gt.True(t, cna.BaselineAvg >= 0)
		gt.True(t, cna.CurrentCount >= 0)
		if cna.DaysSinceLastCVE != nil {
			gt.True(t, *cna.DaysSinceLastCVE >= 0)
		}
	}
}
