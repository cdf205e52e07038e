package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchdayhq/matchday-api/internal/platform/logging"
	"github.com/matchdayhq/matchday-api/internal/platform/resilience"
	"github.com/matchdayhq/matchday-api/internal/usecase"
)

func testUpdate() usecase.StatsUpdate {
	return usecase.StatsUpdate{
		MatchID:    "2a9e4f10-7c3b-4d8e-9f01-6b5a2c4d8e01",
		SeasonID:   "c7b8e6a0-91f2-4c0d-b5a3-4a6d8e2f0201",
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		HomeScore:  3,
		AwayScore:  1,
	}
}

func TestClientPublishResult_PostsPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/results" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer aggregator-secret" {
			t.Fatalf("unexpected authorization header: %s", got)
		}

		var payload map[string]any
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if payload["match_id"] != "2a9e4f10-7c3b-4d8e-9f01-6b5a2c4d8e01" {
			t.Fatalf("unexpected match_id: %v", payload["match_id"])
		}
		if payload["home_score"] != float64(3) || payload["away_score"] != float64(1) {
			t.Fatalf("unexpected scores: %v %v", payload["home_score"], payload["away_score"])
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		Token:          "aggregator-secret",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	if err := client.PublishResult(context.Background(), testUpdate()); err != nil {
		t.Fatalf("publish result: %v", err)
	}
}

func TestClientPublishResult_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     2,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	if err := client.PublishResult(context.Background(), testUpdate()); err != nil {
		t.Fatalf("publish result after retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClientPublishResult_DoesNotRetryRejection(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     3,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	err := client.PublishResult(context.Background(), testUpdate())
	if err == nil {
		t.Fatal("expected rejection error")
	}
	if errors.Is(err, errAggregatorTransient) {
		t.Fatalf("4xx rejection must not be transient: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got %d", got)
	}
}

func TestClientPublishResult_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := client.PublishResult(ctx, testUpdate()); err == nil {
			t.Fatal("expected failure")
		}
	}

	sent := calls.Load()
	err := client.PublishResult(ctx, testUpdate())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open circuit, got %v", err)
	}
	if calls.Load() != sent {
		t.Fatal("open circuit must not reach the aggregator")
	}
}

type flakyNotifier struct {
	failures int32
	calls    atomic.Int32
}

func (n *flakyNotifier) PublishResult(context.Context, usecase.StatsUpdate) error {
	if n.calls.Add(1) <= n.failures {
		return errAggregatorTransient
	}
	return nil
}

func TestDispatcher_RedeliversAfterTransientFailure(t *testing.T) {
	t.Parallel()

	notifier := &flakyNotifier{failures: 1}
	dispatcher := NewDispatcher(notifier, time.Millisecond, 2, logging.NewNop())

	err := dispatcher.PublishResult(context.Background(), testUpdate())
	if err == nil {
		t.Fatal("first attempt should surface the failure")
	}

	dispatcher.Close()
	if got := notifier.calls.Load(); got != 2 {
		t.Fatalf("expected background redelivery, got %d calls", got)
	}
}
