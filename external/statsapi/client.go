package statsapi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
	"github.com/riskibarqy/mlb-stats/internal/platform/resilience"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://statsapi.mlb.com/api/v1"
	defaultMaxBodyBytes = 8 << 20
)

var (
	errTransient = crerr.New("statsapi transient failure")
	errNotFound  = crerr.New("statsapi resource not found")
	errTooLarge  = crerr.New("statsapi response too large")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxBodyBytes   int
	Logger         *logging.Logger
	Retry          resilience.RetryConfig
	RateLimit      resilience.RateLimitConfig
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the public MLB stats API. It is safe for concurrent use;
// identical in-flight GETs share one upstream request.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxBodyBytes int
	logger       *logging.Logger
	retry        resilience.RetryConfig
	limiter      *rate.Limiter
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight[[]byte]
	validate     *validator.Validate
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("statsapi")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("statsapi circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxBodyBytes: maxBody,
		logger:       logger,
		retry:        resilience.NormalizeRetryConfig(cfg.Retry),
		limiter:      resilience.NewLimiter(cfg.RateLimit),
		breaker:      breaker,
		validate:     validator.New(),
	}
}

// getRaw performs a GET on path and returns the body. The returned slice is
// owned by the caller.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err, shared := c.flight.DoContext(ctx, fullURL, func() ([]byte, error) {
		var body []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return body, err
	})
	if err != nil {
		return nil, c.mapError(ctx, fullURL, err)
	}
	if shared {
		raw = bytes.Clone(raw)
	}
	return raw, nil
}

// getJSON is getRaw followed by a decode into target.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) ([]byte, error) {
	raw, err := c.getRaw(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", usecase.ErrMalformedPayload, path, err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	return retryBody(ctx, c.retry, func(attempt int) ([]byte, error) {
		if err := resilience.Wait(ctx, c.limiter); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: send request attempt=%d: %w", errTransient, attempt, err)
		}
		defer resp.Body.Close()

		raw, err := c.readBody(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return raw, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, crerr.Wrapf(errNotFound, "status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		case isRetryableStatus(resp.StatusCode):
			return nil, crerr.Wrapf(errTransient, "status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		default:
			return nil, crerr.Newf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		}
	})
}

// readBody copies at most maxBodyBytes through a pooled buffer.
func (c *Client) readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, int64(c.maxBodyBytes)+1)); err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", errTransient, err)
	}
	if buf.Len() > c.maxBodyBytes {
		return nil, crerr.Wrapf(errTooLarge, "limit=%d bytes", c.maxBodyBytes)
	}
	return bytes.Clone(buf.B), nil
}

func (c *Client) mapError(ctx context.Context, fullURL string, err error) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, errNotFound):
		return fmt.Errorf("%w: %v", usecase.ErrNotFound, err)
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "statsapi circuit breaker rejected request", "url", fullURL, "state", c.breaker.State())
		return fmt.Errorf("%w: stats api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case stderrors.Is(err, errTransient):
		c.logger.WarnContext(ctx, "statsapi request failed", "url", fullURL, "error", err)
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		c.logger.WarnContext(ctx, "statsapi request failed", "url", fullURL, "error", err)
		return err
	}
}

func retryBody(ctx context.Context, cfg resilience.RetryConfig, fn func(attempt int) ([]byte, error)) ([]byte, error) {
	var out []byte
	err := resilience.Retry(ctx, cfg, isTransient, func(attempt int) error {
		body, err := fn(attempt)
		if err != nil {
			return err
		}
		out = body
		return nil
	})
	return out, err
}

func isTransient(err error) bool {
	return stderrors.Is(err, errTransient)
}

// isCircuitFailure counts only failures that say something about upstream
// health. A 404 or a cancelled caller does not.
func isCircuitFailure(err error) bool {
	return isTransient(err)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
