package github

import (
	"context"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prguard/prguard/pkg/domain/interfaces"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a new GitHub client with App authentication
func NewClient(appID, installationID int64, privateKey []byte) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// NewClientFromFile creates a new GitHub client loading the App private key
// from a PEM file.
func NewClientFromFile(appID, installationID int64, privateKeyPath string) (interfaces.GitHubClient, error) {
	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load GitHub App private key", goerr.V("path", privateKeyPath))
	}

	return &client{
		githubClient: github.NewClient(&http.Client{Transport: itr}),
	}, nil
}

// CreateCommitStatus sets a commit status on the given SHA
func (c *client) CreateCommitStatus(ctx context.Context, owner, repo, sha string, status *github.RepoStatus) (*github.RepoStatus, error) {
	created, _, err := c.githubClient.Repositories.CreateStatus(ctx, owner, repo, sha, status)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create commit status",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("sha", sha))
	}
	return created, nil
}

// CreateComment creates a comment on a pull request or issue
func (c *client) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, error) {
	created, _, err := c.githubClient.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comment",
			goerr.V("owner", owner), goerr.V("repo", repo), goerr.V("number", number))
	}
	return created, nil
}
