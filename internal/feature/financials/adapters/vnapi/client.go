package vnapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/sony/gobreaker/v2"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
)

const (
	maxErrorBytes = 512
	ratiosPath    = "ratios"
)

// ErrBodyTooLarge is returned when a response exceeds Config.MaxBodyBytes.
// Such bodies are rejected whole; a cut-off payload is never decoded.
var ErrBodyTooLarge = errors.New("vnapi response body too large")

// StatusError is returned for HTTP responses with status >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("vnapi http %d", e.Code)
	}
	return fmt.Sprintf("vnapi http %d: %s", e.Code, e.Body)
}

// isClientError reports a 4xx response other than 429.
func isClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
}

// Observer receives per-request and circuit breaker metrics.
type Observer interface {
	BreakerObserver
	ObserveUpstream(endpoint, status string, d time.Duration)
}

// Client fetches raw financial payloads. Calls go through a circuit breaker
// and are retried with exponential backoff.
type Client struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	obs     Observer
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。obs は nil でも構いません。
func NewClient(cfg Config, client *http.Client, obs Observer) *Client {
	var bo BreakerObserver = obs
	return &Client{
		cfg:     cfg,
		client:  client,
		breaker: newBreaker(cfg.Breaker, bo),
		obs:     obs,
	}
}

// FetchStatement returns the decoded quarterly payload of one statement.
func (c *Client) FetchStatement(ctx context.Context, symbol string, kind entity.StatementKind) (any, error) {
	return c.get(ctx, string(kind), symbol)
}

// FetchRatios returns the decoded quarterly ratio payload.
func (c *Client) FetchRatios(ctx context.Context, symbol string) (any, error) {
	return c.get(ctx, ratiosPath, symbol)
}

func (c *Client) get(ctx context.Context, endpoint, symbol string) (any, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("period", "quarter")
	u := fmt.Sprintf("%s/financials/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), endpoint, q.Encode())

	var body []byte
	err := WithRetry(ctx, c.cfg.Retry, func() error {
		b, err := c.breaker.Execute(func() ([]byte, error) {
			return c.do(ctx, endpoint, u)
		})
		if err != nil {
			if isClientError(err) || errors.Is(err, ErrBodyTooLarge) || errors.Is(err, gobreaker.ErrOpenState) ||
				errors.Is(err, gobreaker.ErrTooManyRequests) || ctx.Err() != nil {
				return permanent(err)
			}
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vnapi %s %s: %w", endpoint, symbol, err)
	}

	v, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("vnapi %s %s: %w", endpoint, symbol, err)
	}
	return v, nil
}

func (c *Client) do(ctx context.Context, endpoint, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		c.observe(endpoint, "error", start)
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()
	c.observe(endpoint, strconv.Itoa(res.StatusCode), start)

	if res.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBytes))
		return nil, &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	limit := c.cfg.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrBodyTooLarge, endpoint, limit)
	}
	return b, nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	if c.obs != nil {
		c.obs.ObserveUpstream(endpoint, status, time.Since(start))
	}
}

// decode parses body as JSON. Malformed bodies (trailing commas, single
// quotes, truncated arrays) are repaired once before giving up.
func decode(body []byte) (any, error) {
	var v any
	err := json.Unmarshal(body, &v)
	if err != nil {
		repaired, rerr := jsonrepair.RepairJSON(string(body))
		if rerr != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			return nil, fmt.Errorf("decode repaired payload: %w", err)
		}
		slog.Warn("repaired malformed upstream payload", "bytes", len(body))
	}

	if m, ok := v.(map[string]any); ok {
		if s, _ := m["status"].(string); strings.EqualFold(s, "error") {
			msg, _ := m["message"].(string)
			return nil, fmt.Errorf("provider error: %s", msg)
		}
	}
	return v, nil
}
