package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
)

// Config stores runtime configuration for statsctl and the stats service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	StatsAPIBaseURL            string
	StatsAPITimeout            time.Duration
	StatsAPIMaxRetries         int
	StatsAPIRetryBackoff       time.Duration
	StatsAPIRateLimitRPS       float64
	StatsAPIRateLimitBurst     int
	StatsAPIMaxBodyBytes       int
	StatsAPICircuitEnabled     bool
	StatsAPICircuitFailures    int
	StatsAPICircuitOpenTimeout time.Duration
	StatsAPICircuitHalfOpenMax int

	CacheTTL     time.Duration
	BatchWorkers int

	DBURL                   string
	DBDisablePreparedBinary bool
	ArchiveEnabled          bool

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:          appEnv,
		ServiceName:     strings.TrimSpace(getEnv("SERVICE_NAME", "mlb-stats")),
		ServiceVersion:  strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StatsAPIBaseURL: strings.TrimRight(strings.TrimSpace(getEnv("STATSAPI_BASE_URL", "https://statsapi.mlb.com/api/v1")), "/"),
		DBURL:           strings.TrimSpace(getEnv("DB_URL", "")),
	}

	if cfg.StatsAPITimeout, err = getEnvAsDuration("STATSAPI_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatsAPITimeout <= 0 {
		return Config{}, fmt.Errorf("STATSAPI_TIMEOUT must be > 0")
	}
	if cfg.StatsAPIMaxRetries, err = getEnvAsInt("STATSAPI_MAX_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_MAX_RETRIES: %w", err)
	}
	if cfg.StatsAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSAPI_MAX_RETRIES must be >= 0")
	}
	if cfg.StatsAPIRetryBackoff, err = getEnvAsDuration("STATSAPI_RETRY_BACKOFF", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatsAPIRateLimitRPS, err = getEnvAsFloat("STATSAPI_RATE_LIMIT_RPS", 5); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_RATE_LIMIT_RPS: %w", err)
	}
	if cfg.StatsAPIRateLimitRPS < 0 {
		return Config{}, fmt.Errorf("STATSAPI_RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.StatsAPIRateLimitBurst, err = getEnvAsInt("STATSAPI_RATE_LIMIT_BURST", 2); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_RATE_LIMIT_BURST: %w", err)
	}
	if cfg.StatsAPIMaxBodyBytes, err = getEnvAsInt("STATSAPI_MAX_BODY_BYTES", 8<<20); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_MAX_BODY_BYTES: %w", err)
	}
	if cfg.StatsAPIMaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("STATSAPI_MAX_BODY_BYTES must be > 0")
	}
	if cfg.StatsAPICircuitEnabled, err = getEnvAsBool("STATSAPI_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, err
	}
	if cfg.StatsAPICircuitFailures, err = getEnvAsInt("STATSAPI_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.StatsAPICircuitOpenTimeout, err = getEnvAsDuration("STATSAPI_CIRCUIT_OPEN_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatsAPICircuitHalfOpenMax, err = getEnvAsInt("STATSAPI_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 6*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BatchWorkers, err = getEnvAsInt("BATCH_WORKERS", 4); err != nil {
		return Config{}, fmt.Errorf("parse BATCH_WORKERS: %w", err)
	}
	if cfg.BatchWorkers < 1 {
		return Config{}, fmt.Errorf("BATCH_WORKERS must be >= 1")
	}

	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", false); err != nil {
		return Config{}, err
	}
	if cfg.ArchiveEnabled, err = getEnvAsBool("ARCHIVE_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.ArchiveEnabled && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
