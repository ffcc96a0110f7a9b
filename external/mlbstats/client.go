package mlbstats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/platform/resilience"
	"github.com/riskibarqy/season-tickets/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL   = "https://statsapi.mlb.com/api/v1"
	defaultSportID   = "1"
	regularSeason    = "R"
	scheduleHydrate  = "game(promotions)"
	maxResponseBytes = 8 << 20
)

var errTransient = crerr.New("mlb stats transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Backoff        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads team schedules from the MLB Stats API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.Breaker
	flight     singleflight.Group
}

var _ usecase.ScheduleProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger,
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker, isCircuitFailure),
	}
}

// FetchSeason returns every regular season game of teamID in season together
// with the promotions hydrated onto them.
func (c *Client) FetchSeason(ctx context.Context, teamID int64, season int) (usecase.ScheduleBatch, error) {
	if teamID <= 0 || season <= 0 {
		return usecase.ScheduleBatch{}, fmt.Errorf("%w: team id and season must be positive", usecase.ErrInvalidInput)
	}

	var payload scheduleResponse
	if err := c.doJSON(ctx, "/schedule", map[string]string{
		"teamId":   strconv.FormatInt(teamID, 10),
		"season":   strconv.Itoa(season),
		"sportId":  defaultSportID,
		"gameType": regularSeason,
		"hydrate":  scheduleHydrate,
	}, &payload); err != nil {
		return usecase.ScheduleBatch{}, err
	}

	batch, skipped := payload.toBatch()
	if skipped > 0 {
		c.logger.WarnContext(ctx, "skipped malformed schedule entries", "season", season, "skipped", skipped)
	}
	c.logger.InfoContext(ctx, "fetched schedule",
		"team_id", teamID,
		"season", season,
		"games", len(batch.Games),
		"promotions", len(batch.Promotions),
	)
	return batch, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		err := c.breaker.Do(ctx, func(ctx context.Context) error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		})
		return raw, err
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "schedule circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if crerr.Is(err, errTransient) {
			return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode schedule payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.Mark(crerr.New("provider request failed"), errTransient)
	}
	c.logger.WarnContext(ctx, "schedule request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
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
