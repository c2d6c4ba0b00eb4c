// Package transport implements the resilient HTTP client underneath the
// resource helpers: per-attempt timeouts, exponential backoff retries, and
// failure classification.
package transport

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/core"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultMaxResponseBodyBytes int64 = 10 << 20 // 10 MiB

// RetryPolicy bounds one logical request. Delay before attempt n+1 is
// BaseBackoff * 2^n; Jitter is a fractional spread and 0 disables it,
// matching the upstream client this mirrors (synchronized retry storms are
// the documented trade-off).
type RetryPolicy struct {
	MaxRetries        int
	BaseBackoff       time.Duration
	PerAttemptTimeout time.Duration
	Jitter            float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        3,
		BaseBackoff:       500 * time.Millisecond,
		PerAttemptTimeout: 10 * time.Second,
	}
}

func PolicyFromConfig(cfg core.RetryConfig) RetryPolicy {
	return RetryPolicy{
		MaxRetries:        cfg.MaxRetries,
		BaseBackoff:       cfg.BaseBackoff(),
		PerAttemptTimeout: cfg.PerAttemptTimeout(),
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	out := p
	if out.MaxRetries < 0 {
		out.MaxRetries = 0
	}
	if out.BaseBackoff <= 0 {
		out.BaseBackoff = DefaultRetryPolicy().BaseBackoff
	}
	if out.PerAttemptTimeout <= 0 {
		out.PerAttemptTimeout = DefaultRetryPolicy().PerAttemptTimeout
	}
	return out
}

// Delay returns the backoff before the attempt following attemptIndex.
func (p RetryPolicy) Delay(attemptIndex int) time.Duration {
	delay := p.BaseBackoff << uint(attemptIndex)
	if p.Jitter > 0 {
		spread := float64(delay) * p.Jitter
		delay = time.Duration(float64(delay) - spread/2 + spread*randFloat())
	}
	return delay
}

type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeRetryable Outcome = "retryable"
	OutcomeFatal     Outcome = "fatal"
)

// Attempt describes one try of a request.
type Attempt struct {
	Index      int
	RequestID  string
	StartedAt  time.Time
	Elapsed    time.Duration
	Outcome    Outcome
	StatusCode int
	Error      string
}

type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	Body    []byte

	// Policy overrides the client policy for this request when non-nil.
	Policy *RetryPolicy
}

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Attempts   []Attempt
	Metadata   map[string]any
}

// Sleeper waits for d or until ctx is done. Injected in tests so backoff
// assertions run instantly.
type Sleeper func(ctx context.Context, d time.Duration) error

type Client struct {
	httpClient           core.HTTPDoer
	policy               RetryPolicy
	logger               core.Logger
	metrics              core.MetricsRecorder
	limiter              *rate.Limiter
	sleep                Sleeper
	maxResponseBodyBytes int64
	newRequestID         func() string
}

type Option func(*Client)

func WithHTTPClient(doer core.HTTPDoer) Option {
	return func(c *Client) { c.httpClient = doer }
}

func WithPolicy(policy RetryPolicy) Option {
	return func(c *Client) { c.policy = policy }
}

func WithLogger(logger core.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetricsRecorder(metrics core.MetricsRecorder) Option {
	return func(c *Client) { c.metrics = metrics }
}

// WithRateLimit installs a client-side courtesy limiter applied before every
// attempt, retries included.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) { c.sleep = sleep }
}

func WithMaxResponseBodyBytes(limit int64) Option {
	return func(c *Client) { c.maxResponseBodyBytes = limit }
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		policy:               DefaultRetryPolicy(),
		maxResponseBodyBytes: defaultMaxResponseBodyBytes,
		sleep:                sleepContext,
		newRequestID:         uuid.NewString,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.metrics == nil {
		client.metrics = core.NopMetricsRecorder{}
	}
	client.policy = client.policy.normalized()
	return client
}

// Do executes req under the retry policy. Any terminal HTTP response,
// including 4xx and an exhausted-retries 5xx, is returned as a Response
// with a nil error; the caller decides success from the status code. An
// error is returned only when every attempt failed at the network level or
// the parent context was cancelled.
//
// Statuses 500–504 and network-level failures (DNS, reset, per-attempt
// timeout) are retryable; everything else terminates the loop immediately.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	if c == nil || c.httpClient == nil {
		return Response{}, transportError(
			"transport: client requires an http doer",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	parsedURL, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || parsedURL.String() == "" {
		return Response{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid request url",
			http.StatusBadRequest,
			map[string]any{"url": strings.TrimSpace(req.URL)},
		)
	}
	query := parsedURL.Query()
	for key, value := range req.Query {
		if strings.TrimSpace(key) == "" {
			continue
		}
		query.Set(strings.TrimSpace(key), value)
	}
	parsedURL.RawQuery = query.Encode()
	target := parsedURL.String()

	policy := c.policy
	if req.Policy != nil {
		policy = req.Policy.normalized()
	}

	startedAt := time.Now().UTC()
	attempts := make([]Attempt, 0, policy.MaxRetries+1)
	var lastResponse *Response
	var lastErr error

	for index := 0; index <= policy.MaxRetries; index++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return Response{}, transportWrapError(
					err,
					goerrors.CategoryExternal,
					"transport: rate limit wait cancelled",
					http.StatusBadGateway,
					map[string]any{"method": method, "url": target},
				)
			}
		}

		attempt, response, err := c.attempt(ctx, method, target, req, policy, index)
		attempts = append(attempts, attempt)
		c.recordAttempt(ctx, attempt, method, target)

		switch attempt.Outcome {
		case OutcomeSuccess:
			response.Attempts = attempts
			response.Metadata = map[string]any{
				"duration_ms": time.Since(startedAt).Milliseconds(),
				"attempts":    len(attempts),
			}
			return response, nil
		case OutcomeFatal:
			return Response{Attempts: attempts}, err
		}

		// retryable: remember the terminal candidate and back off
		if err != nil {
			lastErr = err
			lastResponse = nil
		} else {
			rc := response
			lastResponse = &rc
			lastErr = nil
		}

		if index < policy.MaxRetries {
			delay := policy.Delay(index)
			core.LogInfo(ctx, c.logger, "retrying request", map[string]any{
				"method":         method,
				"url":            target,
				"attempt":        index + 1,
				"total_attempts": policy.MaxRetries + 1,
				"retry_delay_ms": delay.Milliseconds(),
			})
			if err := c.sleep(ctx, delay); err != nil {
				return Response{Attempts: attempts}, transportWrapError(
					err,
					goerrors.CategoryExternal,
					"transport: retry wait cancelled",
					http.StatusBadGateway,
					map[string]any{"method": method, "url": target},
				)
			}
		}
	}

	if lastResponse != nil {
		lastResponse.Attempts = attempts
		lastResponse.Metadata = map[string]any{
			"duration_ms": time.Since(startedAt).Milliseconds(),
			"attempts":    len(attempts),
		}
		return *lastResponse, nil
	}

	return Response{Attempts: attempts}, exhaustedError(lastErr, method, target, len(attempts))
}

func (c *Client) attempt(
	ctx context.Context,
	method string,
	target string,
	req Request,
	policy RetryPolicy,
	index int,
) (Attempt, Response, error) {
	attempt := Attempt{
		Index:     index,
		RequestID: c.newRequestID(),
		StartedAt: time.Now().UTC(),
	}

	attemptCtx, cancel := context.WithTimeout(ctx, policy.PerAttemptTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, target, bytes.NewReader(req.Body))
	if err != nil {
		attempt.Elapsed = time.Since(attempt.StartedAt)
		attempt.Outcome = OutcomeFatal
		attempt.Error = err.Error()
		return attempt, Response{}, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create http request",
			http.StatusBadRequest,
			map[string]any{"method": method, "url": target},
		)
	}
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), value)
	}

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		attempt.Elapsed = time.Since(attempt.StartedAt)
		attempt.Error = err.Error()
		if ctx.Err() != nil {
			// parent cancellation is not retryable
			attempt.Outcome = OutcomeFatal
			return attempt, Response{}, transportWrapError(
				ctx.Err(),
				goerrors.CategoryExternal,
				"transport: request cancelled",
				http.StatusBadGateway,
				map[string]any{"method": method, "url": target},
			)
		}
		attempt.Outcome = OutcomeRetryable
		return attempt, Response{}, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: execute http request",
			http.StatusBadGateway,
			map[string]any{"method": method, "url": target, "attempt": index},
		)
	}
	defer httpRes.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(httpRes.Body, c.maxResponseBodyBytes+1))
	attempt.Elapsed = time.Since(attempt.StartedAt)
	attempt.StatusCode = httpRes.StatusCode
	if readErr != nil {
		attempt.Outcome = OutcomeRetryable
		attempt.Error = readErr.Error()
		return attempt, Response{}, transportWrapError(
			readErr,
			goerrors.CategoryExternal,
			"transport: read response body",
			http.StatusBadGateway,
			map[string]any{"method": method, "url": target, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(body)) > c.maxResponseBodyBytes {
		attempt.Outcome = OutcomeFatal
		attempt.Error = "response body exceeds limit"
		return attempt, Response{}, transportError(
			"transport: response body exceeds limit",
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{"method": method, "url": target, "response_limit_b": c.maxResponseBodyBytes},
		)
	}

	response := Response{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       body,
	}
	if httpRes.StatusCode >= http.StatusInternalServerError &&
		httpRes.StatusCode <= http.StatusGatewayTimeout {
		attempt.Outcome = OutcomeRetryable
		return attempt, response, nil
	}
	attempt.Outcome = OutcomeSuccess
	return attempt, response, nil
}

func (c *Client) recordAttempt(ctx context.Context, attempt Attempt, method string, target string) {
	c.metrics.IncCounter(ctx, "transport.attempts.total", 1, map[string]string{
		"outcome": string(attempt.Outcome),
		"method":  method,
	})
	c.metrics.ObserveHistogram(ctx, "transport.attempt.duration_ms",
		float64(attempt.Elapsed.Milliseconds()), map[string]string{"method": method})

	if attempt.Outcome == OutcomeSuccess {
		return
	}
	core.LogError(ctx, c.logger, "request attempt failed", map[string]any{
		"method":      method,
		"url":         target,
		"attempt":     attempt.Index,
		"request_id":  attempt.RequestID,
		"status_code": attempt.StatusCode,
		"outcome":     string(attempt.Outcome),
		"error":       attempt.Error,
	})
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func randFloat() float64 {
	return rand.Float64()
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}
