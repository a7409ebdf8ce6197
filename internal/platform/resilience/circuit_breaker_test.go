package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 4, 1, 19, 5, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	assert.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, transitions)
}

func TestCircuitBreaker_ExecuteClassifiesFailures(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	notFound := errors.New("status 404")
	err := b.Execute(func() error { return notFound }, func(err error) bool { return false })
	require.ErrorIs(t, err, notFound)
	assert.Equal(t, CircuitStateClosed, b.State())

	upstream := errors.New("status 503")
	err = b.Execute(func() error { return upstream }, nil)
	require.ErrorIs(t, err, upstream)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(func() error { called = true; return nil }, nil)
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	require.NoError(t, b.Allow())
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	t.Parallel()

	permanent := errors.New("bad request")
	attempts := 0
	err := Retry(context.Background(), RetryConfig{MaxRetries: 3, BaseBackoff: time.Millisecond},
		func(err error) bool { return !errors.Is(err, permanent) },
		func(int) error {
			attempts++
			return permanent
		})
	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetry_RetriesTransient(t *testing.T) {
	t.Parallel()

	attempts := 0
	err := Retry(context.Background(), RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond}, nil, func(attempt int) error {
		attempts++
		if attempt < 2 {
			return errors.New("timeout")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_HonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, RetryConfig{MaxRetries: 5, BaseBackoff: time.Hour}, nil, func(int) error {
		return errors.New("timeout")
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewLimiter(RateLimitConfig{}))
	require.NoError(t, Wait(context.Background(), nil))

	limiter := NewLimiter(RateLimitConfig{RPS: 100, Burst: 2})
	require.NotNil(t, limiter)
	require.NoError(t, Wait(context.Background(), limiter))
}
