package liveclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/live-match/internal/domain/match"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/riskibarqy/live-match/internal/platform/resilience"
	"github.com/riskibarqy/live-match/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	matchesPath    = "/v1/matches"
	maxBodyBytes   = 8 << 20
	defaultTimeout = 10 * time.Second
)

var errLiveSourceTransient = crerr.New("live source transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads matches from a match store HTTP boundary. It satisfies
// live.MatchSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("live source base url is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

// ListMatches fetches every match with its nested events.
func (c *Client) ListMatches(ctx context.Context) ([]match.Match, error) {
	out, err, _ := c.flight.Do(matchesPath, func() (any, error) {
		var raw []byte
		err := c.breaker.Do(func() error {
			var reqErr error
			raw, reqErr = c.get(ctx, c.baseURL+matchesPath)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		stats := c.breaker.Stats()
		c.logger.WarnContext(ctx, "live source circuit breaker rejected request",
			"state", stats.State,
			"consecutive_failures", stats.ConsecutiveFailures,
		)
		return nil, fmt.Errorf("%w: live source is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var payload matchListEnvelope
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode live source payload")
	}
	if payload.Error != nil {
		return nil, crerr.Newf("live source error code=%d message=%s", payload.Error.Code, payload.Error.Message)
	}

	items := make([]match.Match, 0, len(payload.Data))
	for _, row := range payload.Data {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "live source request failed", "url", fullURL, "error", err)
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errLiveSourceTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errLiveSourceTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("live source status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isRetryableStatus(resp.StatusCode) {
			statusErr = crerr.Mark(statusErr, errLiveSourceTransient)
		}
		c.logger.WarnContext(ctx, "live source returned non-success status", "url", fullURL, "status", resp.StatusCode)
		return nil, statusErr
	}

	return raw, nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errLiveSourceTransient) || stderrors.Is(err, context.DeadlineExceeded)
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
