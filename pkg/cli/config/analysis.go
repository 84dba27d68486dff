package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
)

// Analysis holds the analysis engine configuration. Flag values
// override the optional YAML config file, which overrides the shipped
// defaults.
type Analysis struct {
	ConfigFile           string
	MonitoringWindowDays int
	BaselineMonths       int
	GrowthThreshold      float64
	DeclineThreshold     float64
	Now                  string
}

// Flags returns CLI flags for Analysis configuration
func (a *Analysis) Flags() []cli.Flag {
	defaults := model.DefaultAnalysisConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "YAML file with analysis parameters",
			Category:    "Analysis",
			Sources:     cli.EnvVars("CNAPULSE_CONFIG"),
			Destination: &a.ConfigFile,
		},
		&cli.IntFlag{
			Name:        "monitoring-window-days",
			Usage:       "Width of the current-activity window in days",
			Category:    "Analysis",
			Value:       defaults.MonitoringWindowDays,
			Sources:     cli.EnvVars("CNAPULSE_MONITORING_WINDOW_DAYS"),
			Destination: &a.MonitoringWindowDays,
		},
		&cli.IntFlag{
			Name:        "baseline-months",
			Usage:       "Number of historical calendar months in the baseline",
			Category:    "Analysis",
			Value:       defaults.BaselineMonths,
			Sources:     cli.EnvVars("CNAPULSE_BASELINE_MONTHS"),
			Destination: &a.BaselineMonths,
		},
		&cli.FloatFlag{
			Name:        "growth-threshold",
			Usage:       "Baseline multiple above which a CNA classifies as Growth",
			Category:    "Analysis",
			Value:       defaults.GrowthThreshold,
			Sources:     cli.EnvVars("CNAPULSE_GROWTH_THRESHOLD"),
			Destination: &a.GrowthThreshold,
		},
		&cli.FloatFlag{
			Name:        "decline-threshold",
			Usage:       "Baseline multiple below which a CNA classifies as Declining",
			Category:    "Analysis",
			Value:       defaults.DeclineThreshold,
			Sources:     cli.EnvVars("CNAPULSE_DECLINE_THRESHOLD"),
			Destination: &a.DeclineThreshold,
		},
		&cli.StringFlag{
			Name:        "now",
			Usage:       "Reference timestamp (RFC3339) fixing the analysis window, for reproducible runs",
			Category:    "Analysis",
			Sources:     cli.EnvVars("CNAPULSE_NOW"),
			Destination: &a.Now,
		},
	}
}

// Configure resolves the effective analysis configuration
func (a *Analysis) Configure() (model.AnalysisConfig, error) {
	cfg := model.DefaultAnalysisConfig()

	if a.ConfigFile != "" {
		loaded, err := model.LoadAnalysisConfigFromFile(a.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	// Flags set to non-default values take precedence over the file
	defaults := model.DefaultAnalysisConfig()
	if a.MonitoringWindowDays != defaults.MonitoringWindowDays {
		cfg.MonitoringWindowDays = a.MonitoringWindowDays
	}
	if a.BaselineMonths != defaults.BaselineMonths {
		cfg.BaselineMonths = a.BaselineMonths
	}
	if a.GrowthThreshold != defaults.GrowthThreshold {
		cfg.GrowthThreshold = a.GrowthThreshold
	}
	if a.DeclineThreshold != defaults.DeclineThreshold {
		cfg.DeclineThreshold = a.DeclineThreshold
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ReferenceTime resolves the reference timestamp for the run, wall
// clock when not overridden
func (a *Analysis) ReferenceTime() (time.Time, error) {
	if a.Now == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, a.Now)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid reference timestamp",
			goerr.V("now", a.Now))
	}
	return t.UTC(), nil
}

// LogValue returns structured log value
func (a Analysis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config_file", a.ConfigFile),
		slog.Int("monitoring_window_days", a.MonitoringWindowDays),
		slog.Int("baseline_months", a.BaselineMonths),
		slog.Float64("growth_threshold", a.GrowthThreshold),
		slog.Float64("decline_threshold", a.DeclineThreshold),
		slog.String("now", a.Now),
	)
}
