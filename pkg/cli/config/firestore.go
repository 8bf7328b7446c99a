package config

import "github.com/urfave/cli/v3"

// Firestore holds check record storage configuration
type Firestore struct {
	ProjectID  string
	Collection string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for check records (omit for in-memory records)",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("PRGUARD_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection for check records",
			Value:       "prguard-checks",
			Destination: &c.Collection,
			Sources:     cli.EnvVars("PRGUARD_FIRESTORE_COLLECTION"),
		},
	}
}

// Enabled reports whether durable check records are configured
func (c *Firestore) Enabled() bool {
	return c.ProjectID != ""
}
