package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("PRGUARD_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("PRGUARD_LOG_JSON"),
		},
	}
}

// Configure configures and returns a logger. Fields tagged `masq:"secret"`
// are redacted before they reach any handler.
func (c *Logger) Configure() (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", c.Level))
	}

	redact := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redact,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(os.Stdout),
			clog.WithLevel(level),
			clog.WithColor(true),
			clog.WithReplaceAttr(redact),
		)
	}

	return slog.New(handler), nil
}
