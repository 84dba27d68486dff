package model

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// AnalysisConfig holds the tunable parameters of the aggregation and
// classification engine.
type AnalysisConfig struct {
	// MonitoringWindowDays is the width of the rolling current-activity
	// window.
	MonitoringWindowDays int `yaml:"monitoring_window_days"`
	// BaselineMonths is the number of full calendar months used for the
	// historical baseline.
	BaselineMonths int `yaml:"baseline_months"`
	// GrowthThreshold is the baseline multiple the current count must
	// strictly exceed to classify as Growth.
	GrowthThreshold float64 `yaml:"growth_threshold"`
	// DeclineThreshold is the baseline multiple the current count must
	// strictly fall below to classify as Declining.
	DeclineThreshold float64 `yaml:"decline_threshold"`
}

// DefaultAnalysisConfig returns the shipped defaults: 30-day window,
// 12-month baseline, 2.5x/0.5x thresholds.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MonitoringWindowDays: 30,
		BaselineMonths:       12,
		GrowthThreshold:      2.5,
		DeclineThreshold:     0.5,
	}
}

// Validate validates the analysis configuration
func (c *AnalysisConfig) Validate() error {
	if c.MonitoringWindowDays <= 0 {
		return goerr.New("monitoring window must be positive",
			goerr.V("days", c.MonitoringWindowDays))
	}
	if c.BaselineMonths <= 0 {
		return goerr.New("baseline months must be positive",
			goerr.V("months", c.BaselineMonths))
	}
	if c.GrowthThreshold <= 1 {
		return goerr.New("growth threshold must be greater than 1",
			goerr.V("threshold", c.GrowthThreshold))
	}
	if c.DeclineThreshold <= 0 || c.DeclineThreshold >= 1 {
		return goerr.New("decline threshold must be between 0 and 1",
			goerr.V("threshold", c.DeclineThreshold))
	}
	return nil
}

// LoadAnalysisConfigFromFile loads analysis parameters from a YAML
// file. Omitted fields keep their defaults.
func LoadAnalysisConfigFromFile(path string) (AnalysisConfig, error) {
	config := DefaultAnalysisConfig()

	if path == "" {
		return config, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return config, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return config, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return config, nil
}
