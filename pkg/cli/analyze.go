package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/RogoLabs/CNAPulse/pkg/cli/config"
	"github.com/RogoLabs/CNAPulse/pkg/usecase"
	"github.com/RogoLabs/CNAPulse/pkg/utils/apperr"
)

func cmdAnalyze() *cli.Command {
	var (
		sourceCfg   config.Source
		analysisCfg config.Analysis
		slackCfg    config.Slack
	)

	flags := joinFlags(
		sourceCfg.Flags(),
		analysisCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze CNA publishing activity and write the report document",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := analysisCfg.Configure()
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			now, err := analysisCfg.ReferenceTime()
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			logger.Info("Starting analysis",
				slog.Any("source", sourceCfg),
				slog.Any("analysis", analysisCfg),
				slog.Any("slack", slackCfg),
				slog.Time("reference_time", now),
			)

			uc := usecase.NewAnalyze(
				sourceCfg.Records(),
				sourceCfg.Registry(),
				sourceCfg.Store(),
				slackCfg.ConfigureOptional(logger),
				cfg,
			)

			report, err := uc.Run(ctx, now)
			if err != nil {
				apperr.Handle(ctx, err)
				return err
			}

			logger.Info("Analysis run finished",
				"total_cnas", report.Metadata.TotalCNAs,
				"anomalies", report.Metadata.TotalAnomalies,
				"output", sourceCfg.Output,
			)
			return nil
		},
	}
}
