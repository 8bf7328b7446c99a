package interfaces

import (
	"context"

	"github.com/prguard/prguard/pkg/domain/model"
)

// CheckUseCase evaluates a changelog policy against pull request labels.
type CheckUseCase interface {
	// Evaluate compares the labels against the policy's allowed set
	Evaluate(ctx context.Context, policy *model.ChangelogPolicy, labels []string) *model.CheckResult
}

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessPullRequest runs the label check for a pull request event and
	// reports the verdict back to GitHub
	ProcessPullRequest(ctx context.Context, event *model.WebhookEvent, pr *model.PRInfo) error
}

// EventProcessor routes parsed GitHub webhook payloads to use cases.
type EventProcessor interface {
	// ProcessEvent processes a parsed webhook payload
	ProcessEvent(ctx context.Context, event *model.WebhookEvent, payload any) error
}
