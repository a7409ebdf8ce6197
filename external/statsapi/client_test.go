package statsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/mlb-stats/internal/domain/baseball"
	"github.com/riskibarqy/mlb-stats/internal/platform/logging"
	"github.com/riskibarqy/mlb-stats/internal/platform/resilience"
	"github.com/riskibarqy/mlb-stats/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, mutate func(*ClientConfig)) *Client {
	t.Helper()
	cfg := ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL + "/api/v1/",
		Logger:     logging.NewNop(),
		Retry:      resilience.RetryConfig{MaxRetries: 2, BaseBackoff: time.Millisecond},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 10,
			OpenTimeout:      time.Minute,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func hittingRequest() baseball.StatsRequest {
	return baseball.StatsRequest{
		PersonID: 660271,
		Group:    "hitting",
		Types:    []string{"season", "career"},
		Season:   "2024",
	}
}

func TestFetchPersonStats_BuildsQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/people/660271/stats" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("stats") != "season,career" || q.Get("group") != "hitting" || q.Get("season") != "2024" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"stats": []any{}})
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	raw, err := client.FetchPersonStats(context.Background(), hittingRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"stats":[]}`, string(raw))
}

func TestFetchPersonStats_RejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	client := newTestClient(t, srv, nil)

	tests := []struct {
		name   string
		mutate func(*baseball.StatsRequest)
	}{
		{name: "missing person", mutate: func(r *baseball.StatsRequest) { r.PersonID = 0 }},
		{name: "unknown group", mutate: func(r *baseball.StatsRequest) { r.Group = "bowling" }},
		{name: "no types", mutate: func(r *baseball.StatsRequest) { r.Types = nil }},
		{name: "blank type", mutate: func(r *baseball.StatsRequest) { r.Types = []string{""} }},
		{name: "short season", mutate: func(r *baseball.StatsRequest) { r.Season = "24" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := hittingRequest()
			tc.mutate(&req)
			_, err := client.FetchPersonStats(context.Background(), req)
			if !errors.Is(err, usecase.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if hits.Load() != 0 {
		t.Fatalf("invalid requests must not reach upstream, hits=%d", hits.Load())
	}
}

func TestFetchPersonStats_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("try later"))
			return
		}
		_, _ = w.Write([]byte(`{"stats":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.FetchPersonStats(context.Background(), hittingRequest())
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchPersonStats_ExhaustedRetriesAreUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *ClientConfig) { cfg.Retry.MaxRetries = 1 })
	_, err := client.FetchPersonStats(context.Background(), hittingRequest())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchPersonStats_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad stats type"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, err := client.FetchPersonStats(context.Background(), hittingRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=400")
	assert.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchPersonStats_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *ClientConfig) {
		cfg.Retry.MaxRetries = 0
		cfg.CircuitBreaker.FailureThreshold = 2
	})

	for i := 0; i < 2; i++ {
		_, err := client.FetchPersonStats(context.Background(), hittingRequest())
		require.Error(t, err)
	}
	if client.breaker.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open circuit, got %s", client.breaker.State())
	}

	_, err := client.FetchPersonStats(context.Background(), hittingRequest())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchPersonStats_BodyLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"stats":[` + strings.Repeat(" ", 128) + `]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, func(cfg *ClientConfig) { cfg.MaxBodyBytes = 64 })
	_, err := client.FetchPersonStats(context.Background(), hittingRequest())
	if !errors.Is(err, errTooLarge) {
		t.Fatalf("expected errTooLarge, got %v", err)
	}
}

func TestFetchPersonStats_SharesInFlightRequests(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"stats":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	const callers = 8
	var wg sync.WaitGroup
	wg.Add(callers)
	bodies := make([][]byte, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			bodies[i], errs[i] = client.FetchPersonStats(context.Background(), hittingRequest())
		}(i)
	}

	require.Eventually(t, func() bool { return client.flight.InFlight() == 1 && hits.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	bodies[0][0] = 'X'
	if bodies[1][0] == 'X' {
		t.Fatalf("shared callers must receive independent copies")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetTeam(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/teams/119":
			_ = jsoniter.NewEncoder(w).Encode(map[string]any{
				"teams": []any{map[string]any{
					"id":           119,
					"name":         "Los Angeles Dodgers",
					"abbreviation": "LAD",
					"locationName": "Los Angeles",
					"league":       map[string]any{"id": 104},
					"division":     map[string]any{"id": 203},
					"active":       true,
				}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	team, ok, err := client.GetTeam(context.Background(), 119)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, baseball.TeamID(119), team.ID)
	assert.Equal(t, "Los Angeles Dodgers", team.Name)
	assert.Equal(t, "LAD", team.Abbreviation)
	assert.Equal(t, int64(104), team.LeagueID)
	assert.Equal(t, int64(203), team.DivisionID)

	_, ok, err = client.GetTeam(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = client.GetTeam(context.Background(), 0)
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPerson(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"people":[{"id":660271,"fullName":"Shohei Ohtani","primaryNumber":"17",` +
			`"primaryPosition":{"code":"Y","name":"Two-Way Player","abbreviation":"TWP"},` +
			`"batSide":{"code":"L"},"pitchHand":{"code":"R"},"active":true}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	person, ok, err := client.GetPerson(context.Background(), 660271)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Shohei Ohtani", person.FullName)
	assert.Equal(t, "17", person.PrimaryNumber)
	assert.Equal(t, "TWP", person.PrimaryPosition.Abbreviation)
	assert.Equal(t, "L", person.BatSide)
	assert.Equal(t, "R", person.PitchHand)
}

func TestGetPerson_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"people":"nope"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)
	_, _, err := client.GetPerson(context.Background(), 660271)
	if !errors.Is(err, usecase.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
