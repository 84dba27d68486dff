package config

import (
	"github.com/urfave/cli/v3"
)

// Server holds HTTP server configuration
type Server struct {
	Addr       string
	ReportPath string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("CNAPULSE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "report-path",
			Usage:       "Path of the report document written by the analyze command",
			Value:       "web/anomaly_data.json",
			Sources:     cli.EnvVars("CNAPULSE_REPORT_PATH"),
			Destination: &s.ReportPath,
		},
	}
}
