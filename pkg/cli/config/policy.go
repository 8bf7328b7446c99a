package config

import "github.com/urfave/cli/v3"

// Policy holds the changelog policy file location
type Policy struct {
	Path string
}

// Flags returns CLI flags for policy configuration
func (c *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Aliases:     []string{"p"},
			Usage:       "Path to the changelog policy file (release.yml shape)",
			Value:       ".github/release.yml",
			Destination: &c.Path,
			Sources:     cli.EnvVars("PRGUARD_POLICY"),
		},
	}
}
