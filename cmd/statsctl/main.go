// Command statsctl fetches MLB player stat profiles and runs the split
// resolution engine over them.
//
// Usage:
//
//	statsctl hitting --person 660271 --season 2024
//	statsctl pitching --person 660271
//	statsctl fielding --person 660271 --season 2024
//	statsctl batch hitting --person 660271,592450 --season 2024
//	statsctl decode --file response.json --group hitting
//	statsctl decode --archived --person 660271 --season 2024
//	statsctl migrate up
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/mlb-stats/internal/app"
	"github.com/riskibarqy/mlb-stats/internal/config"
	"github.com/riskibarqy/mlb-stats/internal/observability"
	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statsctl",
		Short:         "MLB stats API profile CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(profileCmd("hitting", "Hitting profile for one player", runHitting))
	root.AddCommand(profileCmd("pitching", "Pitching profile for one player", runPitching))
	root.AddCommand(profileCmd("fielding", "Fielding profile for one player", runFielding))
	root.AddCommand(batchCmd())
	root.AddCommand(decodeCmd())
	root.AddCommand(migrateCmd())
	return root
}

// withConfig loads config and a logger and makes the logger the default.
func withConfig(fn func(cfg config.Config, logger *logging.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: cfg.AppEnv == config.EnvDev,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	return fn(cfg, logger)
}

// withApp wires telemetry and the stats service around fn and tears both
// down afterwards.
func withApp(ctx context.Context, fn func(ctx context.Context, application *app.App) error) error {
	return withConfig(func(cfg config.Config, logger *logging.Logger) error {
		shutdown, err := observability.Setup(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()

		application, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Close(); err != nil {
				logger.Warn("close app failed", "error", err)
			}
		}()

		return fn(ctx, application)
	})
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return 2
	case errors.Is(err, usecase.ErrNotFound):
		return 3
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return 4
	case errors.Is(err, usecase.ErrMalformedPayload):
		return 5
	default:
		return 1
	}
}
