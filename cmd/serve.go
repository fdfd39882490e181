package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/internal/config"
	"github.com/nest-agency/pitch-cli/internal/job"
	"github.com/nest-agency/pitch-cli/internal/slackbot"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Slack webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(config.ModeServe); err != nil {
			return err
		}

		publisher, err := newPublisher(ctx)
		if err != nil {
			return err
		}

		runner := job.NewRunner(
			newExtractor(),
			newGenerator(),
			publisher,
			slackbot.NewNotifier(cfg.Slack.BotToken),
		)
		bot := slackbot.New(cfg.Slack.SigningSecret, runner)

		port := resolvePort(servePort, cfg.Server.Port)
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: bot.Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		// Jobs outlive the listener; give them the configured window
		// to post their final notifications.
		if runner.Active() > 0 {
			drain := time.Duration(cfg.Server.DrainTimeoutSecs) * time.Second
			zap.L().Info("draining in-flight jobs",
				zap.Int64("active", runner.Active()),
				zap.Duration("timeout", drain),
			)
			if !runner.Wait(drain) {
				zap.L().Warn("drain timeout elapsed",
					zap.Int64("active", runner.Active()),
				)
			}
		}

		return nil
	},
}

// resolvePort prefers the flag value, falling back to the configured
// port when the flag is unset.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
