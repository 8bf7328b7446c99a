package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prguard/prguard/pkg/domain/interfaces"
	"github.com/prguard/prguard/pkg/domain/model"
	"github.com/prguard/prguard/pkg/domain/types"
)

// FailureDescription is the commit status description for a failed check.
const FailureDescription = "None of the required labels are applied to the PR."

type webhookUseCase struct {
	policy   *model.ChangelogPolicy
	checkUC  interfaces.CheckUseCase
	github   interfaces.GitHubClient // nil means dry-run: log only
	repo     interfaces.CheckRepository
	notifier interfaces.Notifier // optional
}

// WebhookOption configures the webhook use case
type WebhookOption func(*webhookUseCase)

// WithGitHubClient enables reporting verdicts back to GitHub
func WithGitHubClient(cli interfaces.GitHubClient) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.github = cli
	}
}

// WithNotifier enables failure notifications
func WithNotifier(n interfaces.Notifier) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.notifier = n
	}
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(policy *model.ChangelogPolicy, checkUC interfaces.CheckUseCase, repo interfaces.CheckRepository, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		policy:  policy,
		checkUC: checkUC,
		repo:    repo,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessPullRequest runs the label check for a pull request event and
// reports the verdict back to GitHub.
func (uc *webhookUseCase) ProcessPullRequest(ctx context.Context, event *model.WebhookEvent, pr *model.PRInfo) error {
	logger := ctxlog.From(ctx)

	result := uc.checkUC.Evaluate(ctx, uc.policy, pr.Labels)

	// Each delivery is processed once. GitHub redelivers on timeouts and
	// manual replays, with the same delivery ID.
	rec := &model.CheckRecord{
		ID:         model.DeliveryRecordID(event.ID),
		Repository: pr.RepoFullName(),
		Number:     pr.Number,
		HeadSHA:    pr.HeadSHA,
		Passed:     result.Passed,
		CheckedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, types.ErrRecordExists) {
			logger.Info("Skipping redelivered webhook event",
				"delivery_id", event.ID,
				"repository", pr.RepoFullName(),
				"number", pr.Number,
			)
			return nil
		}
		return goerr.Wrap(err, "failed to record check")
	}

	logger.Info("Checked changelog labels",
		"repository", pr.RepoFullName(),
		"number", pr.Number,
		"action", pr.Action,
		"passed", result.Passed,
		"matched", result.Matched,
	)

	if uc.github == nil {
		logger.Debug("No GitHub client configured, verdict not reported")
		return nil
	}

	if err := uc.reportStatus(ctx, pr, result); err != nil {
		return err
	}

	if !result.Passed {
		if err := uc.commentOnce(ctx, pr, result); err != nil {
			return err
		}
		uc.notifyFailure(ctx, pr)
	}

	return nil
}

// reportStatus sets the commit status on the PR head SHA
func (uc *webhookUseCase) reportStatus(ctx context.Context, pr *model.PRInfo, result *model.CheckResult) error {
	state := "failure"
	description := FailureDescription
	if result.Passed {
		state = "success"
		description = "changelog label found: " + strings.Join(result.Matched, ", ")
	}

	status := &github.RepoStatus{
		State:       github.Ptr(state),
		Description: github.Ptr(description),
		Context:     github.Ptr(types.StatusContext),
	}
	if _, err := uc.github.CreateCommitStatus(ctx, pr.Owner, pr.Repo, pr.HeadSHA, status); err != nil {
		return goerr.Wrap(err, "failed to report commit status",
			goerr.V("repository", pr.RepoFullName()), goerr.V("sha", pr.HeadSHA))
	}
	return nil
}

// commentOnce posts a failure comment, at most once per head SHA. Repeated
// labeled/unlabeled events on the same commit should not pile up comments.
func (uc *webhookUseCase) commentOnce(ctx context.Context, pr *model.PRInfo, result *model.CheckResult) error {
	logger := ctxlog.From(ctx)

	marker := &model.CheckRecord{
		ID:         model.CommentRecordID(pr.RepoFullName(), pr.Number, pr.HeadSHA),
		Repository: pr.RepoFullName(),
		Number:     pr.Number,
		HeadSHA:    pr.HeadSHA,
		CheckedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, marker); err != nil {
		if errors.Is(err, types.ErrRecordExists) {
			logger.Debug("Failure comment already posted for this commit",
				"repository", pr.RepoFullName(),
				"number", pr.Number,
				"sha", pr.HeadSHA,
			)
			return nil
		}
		return goerr.Wrap(err, "failed to record comment marker")
	}

	body := failureCommentBody(result)
	if _, err := uc.github.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, &github.IssueComment{
		Body: github.Ptr(body),
	}); err != nil {
		return goerr.Wrap(err, "failed to post failure comment",
			goerr.V("repository", pr.RepoFullName()), goerr.V("number", pr.Number))
	}
	return nil
}

// notifyFailure is best-effort: a broken notifier must not fail the check
func (uc *webhookUseCase) notifyFailure(ctx context.Context, pr *model.PRInfo) {
	if uc.notifier == nil {
		return
	}

	msg := fmt.Sprintf("changelog label check failed: %s#%d (%s)",
		pr.RepoFullName(), pr.Number, pr.HeadSHA)
	if err := uc.notifier.Notify(ctx, msg); err != nil {
		ctxlog.From(ctx).Warn("Failed to send notification", "error", err)
	}
}

func failureCommentBody(result *model.CheckResult) string {
	var b strings.Builder
	b.WriteString(FailureDescription)
	b.WriteString("\n\nApply one of the following labels to categorize this PR for the release notes:\n")
	for _, l := range result.Allowed {
		b.WriteString("- `")
		b.WriteString(l)
		b.WriteString("`\n")
	}
	return b.String()
}
