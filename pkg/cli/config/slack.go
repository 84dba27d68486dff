package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	slackSvc "github.com/RogoLabs/CNAPulse/pkg/service/slack"
)

// Slack holds the optional notification configuration
type Slack struct {
	OAuthToken string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for report notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("CNAPULSE_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel receiving the report summary",
			Category:    "Slack",
			Sources:     cli.EnvVars("CNAPULSE_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if Slack notification is enabled
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.Channel != ""
}

// ConfigureOptional creates a notifier when configured, nil otherwise
func (s *Slack) ConfigureOptional(logger *slog.Logger) interfaces.Notifier {
	if !s.IsConfigured() {
		logger.Debug("Slack not configured, skipping report notification")
		return nil
	}
	return slackSvc.NewNotifier(s.OAuthToken, s.Channel)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.Channel),
	)
}
