package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest WebhookEventType = "pull_request"
	EventTypePing        WebhookEventType = "ping"
	EventTypeUnknown     WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., opened, labeled)
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// supportedPRActions are the pull request actions that can change the label
// verdict and therefore trigger a check.
var supportedPRActions = map[string]struct{}{
	"opened":      {},
	"edited":      {},
	"labeled":     {},
	"unlabeled":   {},
	"synchronize": {},
	"reopened":    {},
}

// IsSupportedEvent checks if the event is supported
func (e *WebhookEvent) IsSupportedEvent() bool {
	if e.Type != EventTypePullRequest {
		return false
	}
	_, ok := supportedPRActions[e.Action]
	return ok
}
