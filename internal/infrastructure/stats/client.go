// Package stats talks to the standings aggregator that turns recorded
// results into league tables.
package stats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/matchdayhq/matchday-api/internal/platform/logging"
	"github.com/matchdayhq/matchday-api/internal/platform/resilience"
	"github.com/matchdayhq/matchday-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var errAggregatorTransient = crerr.New("stats aggregator transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client posts result notifications to the aggregator's ingest endpoint.
type Client struct {
	httpClient     *http.Client
	publishURL     string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		publishURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/") + "/v1/results",
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type resultPayload struct {
	MatchID    string `json:"match_id"`
	SeasonID   string `json:"season_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
}

func (c *Client) PublishResult(ctx context.Context, update usecase.StatsUpdate) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats aggregator circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: standings aggregator is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(resultPayload{
		MatchID:    update.MatchID,
		SeasonID:   update.SeasonID,
		HomeTeamID: update.HomeTeamID,
		AwayTeamID: update.AwayTeamID,
		HomeScore:  update.HomeScore,
		AwayScore:  update.AwayScore,
	})
	if err != nil {
		return fmt.Errorf("marshal result payload: %w", err)
	}
	_, _ = buf.Write(encoded)

	reqErr := c.executeRequest(ctx, buf.B)
	if c.circuitEnabled {
		if reqErr != nil && crerr.Is(reqErr, errAggregatorTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return reqErr
}

func (c *Client) executeRequest(ctx context.Context, body []byte) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.publishURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build aggregator request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errAggregatorTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errAggregatorTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: aggregator status=%d body=%s", errAggregatorTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return fmt.Errorf("aggregator status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("aggregator request failed")
	}
	c.logger.WarnContext(ctx, "stats aggregator request failed", "url", c.publishURL, "error", lastErr)
	return lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "...(truncated)"
	}
	return text
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
