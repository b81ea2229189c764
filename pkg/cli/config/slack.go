package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken      string
	signingSecret string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for posting replies)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("STUDYMATE_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("STUDYMATE_SLACK_SIGNING_SECRET"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
	)
}

// Configure returns nil without error when Slack is not configured. Both
// the token and the signing secret are needed to serve the webhook.
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" && x.signingSecret == "" {
		return nil, nil
	}
	if x.botToken == "" || x.signingSecret == "" {
		return nil, goerr.New("both --slack-bot-token and --slack-signing-secret are required for Slack")
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}
