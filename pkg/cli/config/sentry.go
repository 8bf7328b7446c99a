package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prguard/prguard/pkg/domain/types"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN         string `masq:"secret"`
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (omit to disable error reporting)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("PRGUARD_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "production",
			Destination: &c.Environment,
			Sources:     cli.EnvVars("PRGUARD_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry SDK. No-op when no DSN is set.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Environment,
		Release:     types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry")
	}
	return nil
}
