package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prguard/prguard/pkg/domain/interfaces"
	"github.com/prguard/prguard/pkg/domain/model"
)

// EventProcessor routes parsed GitHub webhook payloads to use cases
type EventProcessor struct {
	webhookUC interfaces.WebhookUseCase
}

var _ interfaces.EventProcessor = (*EventProcessor)(nil)

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(webhookUC interfaces.WebhookUseCase) *EventProcessor {
	return &EventProcessor{
		webhookUC: webhookUC,
	}
}

// ProcessEvent processes a parsed webhook payload
func (p *EventProcessor) ProcessEvent(ctx context.Context, event *model.WebhookEvent, payload any) error {
	logger := ctxlog.From(ctx)

	switch e := payload.(type) {
	case *github.PullRequestEvent:
		return p.processPullRequestEvent(ctx, event, e)
	case *github.PingEvent:
		logger.Info("Received ping event", "hook_id", e.GetHookID())
		return nil
	default:
		logger.Info("Ignoring unsupported event type", "event_type", event.Type)
		return nil
	}
}

// processPullRequestEvent processes a GitHub pull request event
func (p *EventProcessor) processPullRequestEvent(ctx context.Context, event *model.WebhookEvent, prEvent *github.PullRequestEvent) error {
	logger := ctxlog.From(ctx)

	if !event.IsSupportedEvent() {
		logger.Info("Ignoring pull request event with unsupported action",
			"action", prEvent.GetAction(),
		)
		return nil
	}

	pr, err := extractPRInfo(prEvent)
	if err != nil {
		return goerr.Wrap(err, "failed to extract pull request info")
	}

	logger.Info("Processing pull request event",
		"repository", pr.RepoFullName(),
		"number", pr.Number,
		"action", pr.Action,
		"labels", pr.Labels,
	)

	return p.webhookUC.ProcessPullRequest(ctx, event, pr)
}

// extractPRInfo extracts the fields the label check needs from a pull
// request event
func extractPRInfo(event *github.PullRequestEvent) (*model.PRInfo, error) {
	if event.GetRepo() == nil {
		return nil, goerr.New("missing repository information in pull request event")
	}
	if event.GetPullRequest() == nil {
		return nil, goerr.New("missing pull request information in event")
	}

	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	number := event.GetPullRequest().GetNumber()
	headSHA := event.GetPullRequest().GetHead().GetSHA()

	if owner == "" || repo == "" || number == 0 || headSHA == "" {
		return nil, goerr.New("missing required fields in pull request event",
			goerr.V("owner", owner), goerr.V("repo", repo),
			goerr.V("number", number), goerr.V("head_sha", headSHA))
	}

	var labels []string
	for _, l := range event.GetPullRequest().Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}

	return &model.PRInfo{
		Owner:   owner,
		Repo:    repo,
		Number:  number,
		HeadSHA: headSHA,
		Action:  event.GetAction(),
		Sender:  event.GetSender().GetLogin(),
		Labels:  labels,
	}, nil
}
