package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/prguard/prguard/pkg/domain/interfaces"
)

// Notifier posts messages to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	channel    string
	username   string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// New creates a Slack notifier. Channel and username override the webhook
// defaults when non-empty.
func New(webhookURL, channel string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		channel:    channel,
		username:   "prguard",
	}
}

// Notify posts the message to the configured webhook
func (n *Notifier) Notify(ctx context.Context, msg string) error {
	payload := &slack.WebhookMessage{
		Text:     msg,
		Channel:  n.channel,
		Username: n.username,
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, payload); err != nil {
		return goerr.Wrap(err, "failed to post Slack message")
	}
	return nil
}
