package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// CreateCommitStatus sets a commit status on the given SHA
	CreateCommitStatus(ctx context.Context, owner, repo, sha string, status *github.RepoStatus) (*github.RepoStatus, error)

	// CreateComment creates a comment on a pull request or issue
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, error)
}
