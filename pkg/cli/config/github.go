package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub App configuration
type GitHub struct {
	WebhookSecret  string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("PRGUARD_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (omit to run without reporting to GitHub)",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("PRGUARD_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("PRGUARD_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "Path to the GitHub App private key PEM file",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("PRGUARD_GITHUB_PRIVATE_KEY"),
		},
	}
}

// HasAppCredentials reports whether full App credentials were provided
func (c *GitHub) HasAppCredentials() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}
