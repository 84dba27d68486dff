package types

// Status represents the publishing activity classification of a CNA
// for one analysis run
type Status string

const (
	StatusGrowth    Status = "Growth"
	StatusNormal    Status = "Normal"
	StatusDeclining Status = "Declining"
	StatusInactive  Status = "Inactive"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusGrowth, StatusNormal, StatusDeclining, StatusInactive:
		return true
	default:
		return false
	}
}

// IsAnomaly reports whether the status marks the CNA as anomalous.
// Inactive CNAs are a category of their own, not anomalies.
func (s Status) IsAnomaly() bool {
	return s == StatusGrowth || s == StatusDeclining
}

// DeviationInfinite is the sentinel deviation percentage for CNAs that
// published in the current window with a zero baseline. The value is
// part of the report contract consumed by the dashboard and must not
// change.
const DeviationInfinite = 999999.0

// DeviationNotApplicable is the deviation reported for CNAs with no
// records in the corpus at all, paired with StatusInactive.
const DeviationNotApplicable = 0.0
