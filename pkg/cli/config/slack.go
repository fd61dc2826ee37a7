package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/service/notify"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for caregiver notifications
type Slack struct {
	botToken  string
	channelID string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for caregiver notifications",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("MEMORAID_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel that receives caregiver notifications",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("MEMORAID_SLACK_CHANNEL_ID"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
	)
}

// IsConfigured checks if both the token and the channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure creates the Slack notifier. It returns nil when Slack is not
// configured.
func (x *Slack) Configure() (*notify.Slack, error) {
	if x.botToken == "" && x.channelID == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingRequired, "both --slack-bot-token and --slack-channel-id are required")
	}

	notifier, err := notify.NewSlack(x.botToken, x.channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}

	logging.Default().Info("Slack notifications enabled", "channel_id", x.channelID)
	return notifier, nil
}
