package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// RetryConfig bounds how often and how patiently a transient failure is
// retried. Backoff grows linearly with the attempt number.
type RetryConfig struct {
	MaxRetries  int
	BaseBackoff time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseBackoff: time.Second}
}

func NormalizeRetryConfig(cfg RetryConfig) RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = DefaultRetryConfig().BaseBackoff
	}
	return cfg
}

// RateLimitConfig caps outbound requests per second. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func NormalizeRateLimitConfig(cfg RateLimitConfig) RateLimitConfig {
	if cfg.RPS < 0 {
		cfg.RPS = 0
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return cfg
}
