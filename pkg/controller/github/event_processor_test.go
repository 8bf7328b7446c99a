package github_test

import (
	"context"
	"testing"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gt"

	githubctrl "github.com/prguard/prguard/pkg/controller/github"
	"github.com/prguard/prguard/pkg/domain/model"
)

// stubWebhookUC records processed pull requests
type stubWebhookUC struct {
	prs []*model.PRInfo
}

func (s *stubWebhookUC) ProcessPullRequest(ctx context.Context, event *model.WebhookEvent, pr *model.PRInfo) error {
	s.prs = append(s.prs, pr)
	return nil
}

func prEvent(action string, labels ...string) *github.PullRequestEvent {
	var ghLabels []*github.Label
	for _, l := range labels {
		ghLabels = append(ghLabels, &github.Label{Name: github.Ptr(l)})
	}
	return &github.PullRequestEvent{
		Action: github.Ptr(action),
		Repo: &github.Repository{
			Name:     github.Ptr("repo"),
			FullName: github.Ptr("test/repo"),
			Owner:    &github.User{Login: github.Ptr("test")},
		},
		PullRequest: &github.PullRequest{
			Number: github.Ptr(42),
			Head:   &github.PullRequestBranch{SHA: github.Ptr("abc123")},
			Labels: ghLabels,
		},
		Sender: &github.User{Login: github.Ptr("testuser")},
	}
}

func event(action string) *model.WebhookEvent {
	return &model.WebhookEvent{
		ID:     "d-1",
		Type:   model.EventTypePullRequest,
		Action: action,
	}
}

func TestEventProcessor_SupportedAction(t *testing.T) {
	uc := &stubWebhookUC{}
	p := githubctrl.NewEventProcessor(uc)

	err := p.ProcessEvent(context.Background(), event("labeled"), prEvent("labeled", "bug", "docs"))
	gt.NoError(t, err)

	gt.Number(t, len(uc.prs)).Equal(1)
	pr := uc.prs[0]
	gt.Value(t, pr.Owner).Equal("test")
	gt.Value(t, pr.Repo).Equal("repo")
	gt.Value(t, pr.Number).Equal(42)
	gt.Value(t, pr.HeadSHA).Equal("abc123")
	gt.Value(t, pr.Action).Equal("labeled")
	gt.Value(t, pr.Labels).Equal([]string{"bug", "docs"})
}

func TestEventProcessor_UnsupportedAction(t *testing.T) {
	uc := &stubWebhookUC{}
	p := githubctrl.NewEventProcessor(uc)

	err := p.ProcessEvent(context.Background(), event("closed"), prEvent("closed"))
	gt.NoError(t, err)
	gt.Number(t, len(uc.prs)).Equal(0)
}

func TestEventProcessor_PingEvent(t *testing.T) {
	uc := &stubWebhookUC{}
	p := githubctrl.NewEventProcessor(uc)

	ev := &model.WebhookEvent{ID: "d-1", Type: model.EventTypePing}
	err := p.ProcessEvent(context.Background(), ev, &github.PingEvent{HookID: github.Ptr(int64(1))})
	gt.NoError(t, err)
	gt.Number(t, len(uc.prs)).Equal(0)
}

func TestEventProcessor_MissingRepository(t *testing.T) {
	uc := &stubWebhookUC{}
	p := githubctrl.NewEventProcessor(uc)

	broken := prEvent("opened")
	broken.Repo = nil

	err := p.ProcessEvent(context.Background(), event("opened"), broken)
	gt.Error(t, err)
	gt.Number(t, len(uc.prs)).Equal(0)
}

func TestEventProcessor_UnknownPayload(t *testing.T) {
	uc := &stubWebhookUC{}
	p := githubctrl.NewEventProcessor(uc)

	ev := &model.WebhookEvent{ID: "d-1", Type: model.EventTypeUnknown}
	err := p.ProcessEvent(context.Background(), ev, &github.IssuesEvent{})
	gt.NoError(t, err)
	gt.Number(t, len(uc.prs)).Equal(0)
}
