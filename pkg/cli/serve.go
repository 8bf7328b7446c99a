package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prguard/prguard/pkg/cli/config"
	githubctrl "github.com/prguard/prguard/pkg/controller/github"
	controller "github.com/prguard/prguard/pkg/controller/http"
	"github.com/prguard/prguard/pkg/domain/interfaces"
	firestoreinfra "github.com/prguard/prguard/pkg/infra/firestore"
	githubinfra "github.com/prguard/prguard/pkg/infra/github"
	"github.com/prguard/prguard/pkg/infra/memory"
	policyinfra "github.com/prguard/prguard/pkg/infra/policy"
	slackinfra "github.com/prguard/prguard/pkg/infra/slack"
	"github.com/prguard/prguard/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		githubCfg    config.GitHub
		policyCfg    config.Policy
		slackCfg     config.Slack
		sentryCfg    config.Sentry
		firestoreCfg config.Firestore
	)

	flags := serverCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, firestoreCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start GitHub App webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting prguard server",
				slog.String("addr", serverCfg.Addr),
				slog.String("policy", policyCfg.Path),
				slog.Any("github", githubCfg),
			)

			pol, err := policyinfra.Load(policyCfg.Path)
			if err != nil {
				return goerr.Wrap(err, "failed to load changelog policy")
			}

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			// Check records: durable when Firestore is configured
			var repo interfaces.CheckRepository
			if firestoreCfg.Enabled() {
				fsRepo, err := firestoreinfra.New(ctx, firestoreCfg.ProjectID, firestoreCfg.Collection)
				if err != nil {
					return err
				}
				defer fsRepo.Close()
				repo = fsRepo
			} else {
				logger.Warn("No Firestore project configured, check records are in-memory only")
				repo = memory.New()
			}

			ucOpts := []usecase.WebhookOption{}
			if githubCfg.HasAppCredentials() {
				ghClient, err := githubinfra.NewClientFromFile(
					githubCfg.AppID, githubCfg.InstallationID, githubCfg.PrivateKeyPath)
				if err != nil {
					return err
				}
				ucOpts = append(ucOpts, usecase.WithGitHubClient(ghClient))
			} else {
				logger.Warn("No GitHub App credentials configured, verdicts will only be logged")
			}
			if slackCfg.Enabled() {
				ucOpts = append(ucOpts, usecase.WithNotifier(slackinfra.New(slackCfg.WebhookURL, slackCfg.Channel)))
			}

			checkUC := usecase.NewCheck()
			webhookUC := usecase.NewWebhook(pol, checkUC, repo, ucOpts...)
			processor := githubctrl.NewEventProcessor(webhookUC)

			server, err := controller.NewServer(
				ctx,
				processor,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
