package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/RogoLabs/CNAPulse/pkg/repository"
)

// Source holds the input and output locations of one analysis run
type Source struct {
	CVEListDir string
	CNAList    string
	Output     string
}

// Flags returns CLI flags for Source configuration
func (s *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cvelist-dir",
			Usage:       "Path to the cvelistV5 cves directory",
			Category:    "Input",
			Value:       "cvelistV5/cves",
			Sources:     cli.EnvVars("CNAPULSE_CVELIST_DIR"),
			Destination: &s.CVEListDir,
		},
		&cli.StringFlag{
			Name:        "cna-list",
			Usage:       "CNA list location (URL or local file)",
			Category:    "Input",
			Value:       repository.DefaultCNAListURL,
			Sources:     cli.EnvVars("CNAPULSE_CNA_LIST"),
			Destination: &s.CNAList,
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Path of the report document",
			Category:    "Output",
			Value:       "web/anomaly_data.json",
			Sources:     cli.EnvVars("CNAPULSE_OUTPUT"),
			Destination: &s.Output,
		},
	}
}

// Records creates the record source
func (s *Source) Records() *repository.CVEListDir {
	return repository.NewCVEListDir(s.CVEListDir)
}

// Registry creates the registry source
func (s *Source) Registry() *repository.CNAList {
	return repository.NewCNAList(s.CNAList)
}

// Store creates the report store
func (s *Source) Store() *repository.FileReportStore {
	return repository.NewFileReportStore(s.Output)
}

// LogValue returns structured log value
func (s Source) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("cvelist_dir", s.CVEListDir),
		slog.String("cna_list", s.CNAList),
		slog.String("output", s.Output),
	)
}
