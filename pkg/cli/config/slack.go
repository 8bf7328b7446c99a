package config

import "github.com/urfave/cli/v3"

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string `masq:"secret"`
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for failure notifications",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("PRGUARD_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel override",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("PRGUARD_SLACK_CHANNEL"),
		},
	}
}

// Enabled reports whether Slack notifications are configured
func (c *Slack) Enabled() bool {
	return c.WebhookURL != ""
}
