package app

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/mlb-stats/external/statsapi"
	"github.com/riskibarqy/mlb-stats/internal/config"
	"github.com/riskibarqy/mlb-stats/internal/domain/rawdata"
	"github.com/riskibarqy/mlb-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/mlb-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
	"github.com/riskibarqy/mlb-stats/internal/platform/resilience"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App holds the wired stats service and what it owns.
type App struct {
	Stats      *usecase.PlayerStatsService
	Client     *statsapi.Client
	References *cache.ReferenceRepository
	Archive    rawdata.Repository

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	client := statsapi.NewClient(statsapi.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.StatsAPITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:      cfg.StatsAPIBaseURL,
		MaxBodyBytes: cfg.StatsAPIMaxBodyBytes,
		Logger:       logger,
		Retry: resilience.RetryConfig{
			MaxRetries:  cfg.StatsAPIMaxRetries,
			BaseBackoff: cfg.StatsAPIRetryBackoff,
		},
		RateLimit: resilience.RateLimitConfig{
			RPS:   cfg.StatsAPIRateLimitRPS,
			Burst: cfg.StatsAPIRateLimitBurst,
		},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsAPICircuitEnabled,
			FailureThreshold: cfg.StatsAPICircuitFailures,
			OpenTimeout:      cfg.StatsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsAPICircuitHalfOpenMax,
		},
	})
	refs := cache.NewReferenceRepository(client, cfg.CacheTTL)

	out := &App{
		Client:     client,
		References: refs,
	}

	if cfg.ArchiveEnabled {
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.db = db
		out.Archive = postgres.NewRawDataRepository(db)
		logger.Info("raw payload archive enabled", "db_name", dbNameFromURL(cfg.DBURL))
	}

	out.Stats = usecase.NewPlayerStatsService(client, refs, usecase.PlayerStatsOptions{
		Archive:      out.Archive,
		Logger:       logger,
		BatchWorkers: cfg.BatchWorkers,
	})
	return out, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
