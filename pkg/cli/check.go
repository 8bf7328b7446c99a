package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prguard/prguard/pkg/cli/config"
	"github.com/prguard/prguard/pkg/domain/types"
	policyinfra "github.com/prguard/prguard/pkg/infra/policy"
	"github.com/prguard/prguard/pkg/usecase"
)

func cmdCheck() *cli.Command {
	var (
		policyCfg  config.Policy
		eventPath  string
		outputPath string
	)

	flags := policyCfg.Flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "event",
			Usage:       "Path to the pull request event payload JSON",
			Destination: &eventPath,
			Sources:     cli.EnvVars("GITHUB_EVENT_PATH"),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "GitHub Actions output file to write label_exists to",
			Destination: &outputPath,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
	)

	return &cli.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "One-shot changelog label check for CI",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return runCheck(ctx, policyCfg.Path, eventPath, outputPath, os.Stdout)
		},
	}
}

// runCheck loads the policy and event payload, evaluates the label check,
// writes the Actions output entry and prints a human-readable verdict. The
// returned error is types.ErrNoQualifyingLabel on a domain failure so the
// process exits non-zero and blocks the job.
func runCheck(ctx context.Context, policyPath, eventPath, outputPath string, out io.Writer) error {
	logger := ctxlog.From(ctx)

	pol, err := policyinfra.Load(policyPath)
	if err != nil {
		return goerr.Wrap(err, "failed to load changelog policy")
	}

	if eventPath == "" {
		return goerr.New("no event payload: set --event or GITHUB_EVENT_PATH")
	}
	labels, err := readEventLabels(eventPath)
	if err != nil {
		return err
	}

	result := usecase.NewCheck().Evaluate(ctx, pol, labels)

	if outputPath != "" {
		if err := appendOutput(outputPath, "label_exists", fmt.Sprintf("%t", result.Passed)); err != nil {
			return err
		}
	}

	logger.Debug("Label check finished",
		"passed", result.Passed,
		"labels", labels,
		"matched", result.Matched,
	)

	if !result.Passed {
		color.New(color.FgRed).Fprintln(out, usecase.FailureDescription)
		fmt.Fprintf(out, "Allowed labels: %s\n", strings.Join(result.Allowed, ", "))
		return types.ErrNoQualifyingLabel
	}

	color.New(color.FgGreen).Fprintf(out, "changelog label found: %s\n", strings.Join(result.Matched, ", "))
	return nil
}

// readEventLabels extracts the label names from a pull request event payload
func readEventLabels(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read event payload", goerr.V("path", path))
	}

	var event github.PullRequestEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, goerr.Wrap(err, "failed to parse event payload", goerr.V("path", path))
	}
	if event.GetPullRequest() == nil {
		return nil, goerr.New("event payload has no pull request", goerr.V("path", path))
	}

	var labels []string
	for _, l := range event.GetPullRequest().Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}
	return labels, nil
}

// appendOutput appends a name=value entry in GitHub Actions output format
func appendOutput(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file", goerr.V("path", path))
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return goerr.Wrap(err, "failed to write output entry", goerr.V("path", path))
	}
	return nil
}
