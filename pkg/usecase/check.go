package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/prguard/prguard/pkg/domain/interfaces"
	"github.com/prguard/prguard/pkg/domain/model"
)

type checkUseCase struct{}

// NewCheck creates a new instance of CheckUseCase
func NewCheck() interfaces.CheckUseCase {
	return &checkUseCase{}
}

// Evaluate compares the labels against the policy's allowed set. The check
// passes when at least one label belongs to the allowed set: the union of
// all category labels except Uncategorized, plus the exclusion labels.
func (uc *checkUseCase) Evaluate(ctx context.Context, policy *model.ChangelogPolicy, labels []string) *model.CheckResult {
	logger := ctxlog.From(ctx)

	allowed := policy.AllowedLabels()
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, l := range allowed {
		allowedSet[l] = struct{}{}
	}

	var matched []string
	for _, l := range labels {
		if _, ok := allowedSet[l]; ok {
			matched = append(matched, l)
		}
	}

	result := &model.CheckResult{
		Passed:  len(matched) > 0,
		Matched: matched,
		Allowed: allowed,
	}

	logger.Debug("Evaluated changelog labels",
		"passed", result.Passed,
		"labels", labels,
		"matched", matched,
		"allowed_count", len(allowed),
	)

	return result
}
