package model

import (
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
)

// TimelineEntry is one month of a CNA's 13-month activity timeline.
// Exactly one entry per timeline carries IsCurrent.
type TimelineEntry struct {
	Month     string `json:"month"`
	Count     int    `json:"count"`
	IsCurrent bool   `json:"is_current"`
}

// CNAReport is the per-CNA row of the report document. Field names are
// the contract consumed by the web dashboard and must be preserved
// exactly.
type CNAReport struct {
	AssignerID       string          `json:"assigner_id"`
	Name             string          `json:"cna_name"`
	OrgName          string          `json:"cna_org_name"`
	AdvisoryURL      string          `json:"cna_advisory_url"`
	Status           types.Status    `json:"status"`
	BaselineAvg      float64         `json:"baseline_avg"`
	CurrentCount     int             `json:"current_count"`
	DeviationPct     float64         `json:"deviation_pct"`
	DaysSinceLastCVE *int            `json:"days_since_last_cve"`
	StdDev           *float64        `json:"std_dev"`
	ThresholdLow     float64         `json:"threshold_low"`
	ThresholdHigh    float64         `json:"threshold_high"`
	Timeline         []TimelineEntry `json:"timeline_13months"`
}

// ReportMetadata summarizes one analysis run
type ReportMetadata struct {
	GeneratedAt          time.Time `json:"generated_at"`
	MonitoringWindowDays int       `json:"monitoring_window_days"`
	BaselineMonths       int       `json:"baseline_months"`
	MonitoringStart      time.Time `json:"monitoring_start"`
	MonitoringEnd        time.Time `json:"monitoring_end"`
	BaselineStart        time.Time `json:"baseline_start"`
	BaselineEnd          time.Time `json:"baseline_end"`
	TotalCNAs            int       `json:"total_cnas"`
	TotalAnomalies       int       `json:"total_anomalies"`
	CNAsGrowth           int       `json:"cnas_growth"`
	CNAsNormal           int       `json:"cnas_normal"`
	CNAsDeclining        int       `json:"cnas_declining"`
	CNAsInactive         int       `json:"cnas_inactive"`
}

// Report is the complete document one analysis run emits. CNAs holds
// every CNA in the universe; Anomalies repeats the Growth/Declining
// rows for consumers that only care about deviations.
type Report struct {
	Metadata  ReportMetadata `json:"metadata"`
	CNAs      []CNAReport    `json:"cnas"`
	Anomalies []CNAReport    `json:"anomalies"`
}

// StatusCount returns the number of CNAs with the given status
func (r *Report) StatusCount(status types.Status) int {
	var n int
	for _, cna := range r.CNAs {
		if cna.Status == status {
			n++
		}
	}
	return n
}
