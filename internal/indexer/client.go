// Package indexer is the read-only HTTP client for the treasury indexing
// API. Reads never fail outward: collections come back empty and single
// entities nil when anything goes wrong, and the failure is logged and
// counted instead.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"treasury-dashboard/internal/observability"
	"treasury-dashboard/internal/wire"
)

// Default configuration values.
const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxRetries  = 0
	DefaultRetryDelay  = 250 * time.Millisecond
	DefaultMaxDelay    = 2 * time.Second
	DefaultBackoffMult = 2.0

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 8 << 20
)

// Client fetches raw records from the indexing API.
type Client struct {
	baseURL     string
	client      *http.Client
	logger      *zap.Logger
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	now         func() time.Time
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets how many times a retryable failure is retried.
// Zero means a single attempt.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxDelay sets maximum retry delay.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.maxDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: DefaultTimeout},
		logger:      zap.NewNop(),
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statusError is a non-2xx response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return true
}

// get performs a GET with bounded retries. endpoint is the path template
// used for logs and metrics; path is the concrete escaped path.
func (c *Client) get(ctx context.Context, endpoint, path string, params Params) ([]byte, error) {
	target := c.baseURL + path
	if q := params.Encode(); q != "" {
		target += "?" + q
	}
	requestID := uuid.NewString()

	attempt := 0
	op := func() ([]byte, error) {
		if attempt > 0 {
			observability.RecordRetry(endpoint)
		}
		attempt++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(RequestIDHeader, requestID)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, fmt.Errorf("http request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			serr := &statusError{code: resp.StatusCode, body: snippet(body)}
			if !retryable(serr) {
				return nil, backoff.Permanent(serr)
			}
			return nil, serr
		}
		return body, nil
	}

	start := c.now()
	body, err := backoff.RetryWithData[[]byte](op, c.policy(ctx))
	elapsed := c.now().Sub(start).Seconds()

	if err != nil {
		c.fail(endpoint, requestID, elapsed, err)
		return nil, err
	}
	observability.RecordFetch(endpoint, observability.OutcomeOK, elapsed)
	observability.RecordUpstreamSuccess(c.now().Unix())
	return body, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryDelay
	b.MaxInterval = c.maxDelay
	b.Multiplier = c.backoffMult
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
}

// fail logs and counts a failed fetch. Canceled fetches are superseded
// view loads and are logged at debug level only.
func (c *Client) fail(endpoint, requestID string, elapsed float64, err error) {
	outcome := observability.OutcomeTransport
	status := 0
	var se *statusError
	switch {
	case errors.Is(err, context.Canceled):
		outcome = observability.OutcomeCanceled
	case errors.As(err, &se):
		status = se.code
		outcome = observability.OutcomeStatus
		if se.code == http.StatusNotFound {
			outcome = observability.OutcomeNotFound
		}
	}
	observability.RecordFetch(endpoint, outcome, elapsed)

	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.String("outcome", outcome),
		zap.Error(err),
	}
	switch outcome {
	case observability.OutcomeCanceled, observability.OutcomeNotFound:
		c.logger.Debug("fetch failed", fields...)
	default:
		c.logger.Warn("fetch failed", fields...)
	}
}

func (c *Client) malformed(endpoint string, err error) {
	observability.RecordFetch(endpoint, observability.OutcomeMalformed, 0)
	c.logger.Warn("malformed response", zap.String("endpoint", endpoint), zap.Error(err))
}

// fetchCollection reads a list endpoint. Any failure yields an empty list.
func (c *Client) fetchCollection(ctx context.Context, endpoint, path string, params Params, envelope ...string) []wire.Record {
	body, err := c.get(ctx, endpoint, path, params)
	if err != nil {
		return []wire.Record{}
	}
	recs, err := wire.DecodeCollection(body, envelope...)
	if err != nil {
		c.malformed(endpoint, err)
		return []wire.Record{}
	}
	observability.RecordRecords(endpoint, len(recs))
	return recs
}

// fetchOneOrMany is fetchCollection that also accepts a bare object.
func (c *Client) fetchOneOrMany(ctx context.Context, endpoint, path string, envelope ...string) []wire.Record {
	body, err := c.get(ctx, endpoint, path, nil)
	if err != nil {
		return []wire.Record{}
	}
	recs, err := wire.DecodeOneOrMany(body, envelope...)
	if err != nil {
		c.malformed(endpoint, err)
		return []wire.Record{}
	}
	observability.RecordRecords(endpoint, len(recs))
	return recs
}

// fetchObject reads a single-entity endpoint. Any failure, 404 included,
// yields nil.
func (c *Client) fetchObject(ctx context.Context, endpoint, path string) wire.Record {
	body, err := c.get(ctx, endpoint, path, nil)
	if err != nil {
		return nil
	}
	rec, err := wire.DecodeObject(body)
	if err != nil {
		c.malformed(endpoint, err)
		return nil
	}
	return rec
}

func snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
