package slack

import (
	"context"
	"fmt"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxAnomalyLines caps the anomaly listing in one message; a full run
// can flag hundreds of CNAs and Slack truncates long block lists
const maxAnomalyLines = 15

// Notifier posts a report summary to a Slack channel after each run
type Notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a Slack notifier
func NewNotifier(token, channel string) *Notifier {
	return &Notifier{
		client:  slack.New(token),
		channel: channel,
	}
}

var _ interfaces.Notifier = (*Notifier)(nil)

// NotifyReport posts the run summary and the top anomalies
func (n *Notifier) NotifyReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	blocks := buildReportBlocks(report)
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText("CNA publishing activity report", false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report to Slack",
			goerr.V("channel", n.channel))
	}
	return nil
}

func buildReportBlocks(report *model.Report) []slack.Block {
	meta := report.Metadata

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "CNA Publishing Activity Report", false, false),
	)

	summary := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(
			"*%d CNAs analyzed* over the last %d days against a %d-month baseline\n"+
				":chart_with_upwards_trend: Growth: *%d*   :heavy_minus_sign: Normal: *%d*   "+
				":chart_with_downwards_trend: Declining: *%d*   :zzz: Inactive: *%d*",
			meta.TotalCNAs, meta.MonitoringWindowDays, meta.BaselineMonths,
			meta.CNAsGrowth, meta.CNAsNormal, meta.CNAsDeclining, meta.CNAsInactive,
		), false, false),
		nil, nil,
	)

	blocks := []slack.Block{header, summary, slack.NewDividerBlock()}

	if len(report.Anomalies) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "No anomalous CNAs this run.", false, false),
			nil, nil,
		))
		return blocks
	}

	var lines string
	shown := len(report.Anomalies)
	if shown > maxAnomalyLines {
		shown = maxAnomalyLines
	}
	for _, anomaly := range report.Anomalies[:shown] {
		lines += formatAnomalyLine(anomaly) + "\n"
	}
	if rest := len(report.Anomalies) - shown; rest > 0 {
		lines += fmt.Sprintf("_…and %d more_", rest)
	}

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, lines, false, false),
		nil, nil,
	))
	return blocks
}

func formatAnomalyLine(cna model.CNAReport) string {
	emoji := ":chart_with_upwards_trend:"
	if cna.Status == types.StatusDeclining {
		emoji = ":chart_with_downwards_trend:"
	}

	deviation := fmt.Sprintf("%+.1f%%", cna.DeviationPct)
	if cna.DeviationPct >= types.DeviationInfinite {
		deviation = "new activity"
	}

	return fmt.Sprintf("%s `%s` %s %s (%d CVEs vs %.2f/month baseline)",
		emoji, cna.Name, cna.Status, deviation, cna.CurrentCount, cna.BaselineAvg)
}
