package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mortalnow/dan-s-bullshit/internal/adapters/http/middleware"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/config"
	"github.com/mortalnow/dan-s-bullshit/internal/platform/logging"
)

const (
	instrumentationName = "github.com/mortalnow/dan-s-bullshit/internal/adapters/clients"

	// defaultTimeout bounds a single attempt when the config leaves Timeout unset.
	defaultTimeout = 30 * time.Second

	// httpStatusCategoryDivisor folds status codes into 2xx/4xx/5xx metric buckets.
	httpStatusCategoryDivisor = 100

	// jitterRangeMultiplier maps rand's [0,1) onto [-1,1) so jitter spreads both ways.
	jitterRangeMultiplier = 2

	// Connection pool sizes used when TransportConfig fields are zero.
	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second
)

// Config wires a Client to one downstream service.
type Config struct {
	// BaseURL is prepended to every request path, e.g. "https://quotes.example.com".
	BaseURL string

	// ServiceName names the downstream in logs, spans, and metrics.
	ServiceName string

	// Timeout bounds each attempt. Wall-clock time for one logical request
	// can reach several multiples of it once retries and backoff are counted.
	Timeout time.Duration

	// Retry controls attempt count, backoff shape, and jitter.
	Retry config.RetryConfig

	// Circuit controls when the breaker trips and how it probes recovery.
	Circuit config.CircuitBreakerConfig

	// Transport sizes the connection pool. Zero fields fall back to the
	// package defaults.
	Transport config.TransportConfig

	// AuthFunc, when set, is applied to every attempt, retries included,
	// so a credential rotated mid-request is picked up.
	AuthFunc func(*http.Request)

	// Logger is the base logger. Nil falls back to slog.Default.
	Logger *slog.Logger
}

// Client is the outbound HTTP client the hosted quote API is reached
// through. Each logical request runs inside a client span with capped
// exponential retry behind a circuit breaker, and carries the inbound
// request and correlation IDs forward so the hosted API's logs line up
// with ours.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer
	meter  metric.Meter

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New builds a Client for the downstream described by cfg.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	transport := cfg.Transport
	if transport.MaxIdleConns <= 0 {
		transport.MaxIdleConns = transportMaxIdleConns
	}
	if transport.MaxIdleConnsPerHost <= 0 {
		transport.MaxIdleConnsPerHost = transportMaxIdleConnsPerHost
	}
	if transport.IdleConnTimeout <= 0 {
		transport.IdleConnTimeout = transportIdleConnTimeout
	}

	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        transport.MaxIdleConns,
				MaxIdleConnsPerHost: transport.MaxIdleConnsPerHost,
				IdleConnTimeout:     transport.IdleConnTimeout,
			},
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		meter:           meter,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Do runs one logical request: breaker admission, ID and auth headers, a
// client span, then up to Retry.MaxAttempts attempts. Responses below 500
// are returned as-is, 4xx included; callers map status codes to domain
// errors themselves.
//
// Retrying a request that has a body requires req.GetBody so the body can
// be rewound. For streaming bodies either set GetBody or cap MaxAttempts
// at 1; bodiless methods are always safe to retry.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "circuit_open")
		logger.Warn("request blocked by circuit breaker")
		return nil, ErrCircuitOpen
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, lastErr := c.executeWithRetry(ctx, req, logger, startTime)

	return c.recordResult(ctx, req, resp, lastErr, span, logger, startTime)
}

// executeWithRetry drives the attempt loop. It returns the first settled
// response, or the last attempt's error once the budget is spent.
func (c *Client) executeWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger, startTime time.Time) (*http.Response, error) {
	var lastErr error

	for attempt := range c.cfg.Retry.MaxAttempts {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, req, attempt, logger, startTime); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))

		retry, attemptErr := c.classifyAttempt(resp, err, attempt, logger)
		if retry {
			lastErr = attemptErr
			continue
		}
		if attemptErr != nil {
			return nil, attemptErr
		}

		return resp, nil
	}

	return nil, lastErr
}

// waitForRetry sleeps out the backoff before the given attempt. A
// cancellation during the wait counts as a breaker failure. Auth is
// reapplied afterwards so a credential rotated during the wait is used
// on the next attempt.
func (c *Client) waitForRetry(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger, startTime time.Time) error {
	backoff := c.calculateBackoff(attempt)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", backoff),
	)

	select {
	case <-ctx.Done():
		c.cb.RecordFailure()
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "context_canceled")
		return ctx.Err()
	case <-time.After(backoff):
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}

	return nil
}

// classifyAttempt decides whether an attempt's outcome warrants another
// try. Transport errors retry when isRetryableError allows; 5xx responses
// retry with the body closed first; everything else is final.
func (c *Client) classifyAttempt(resp *http.Response, err error, attempt int, logger *slog.Logger) (bool, error) {
	if err != nil {
		if isRetryableError(err) {
			logger.Debug("request failed with retryable error",
				slog.Int("attempt", attempt+1),
				slog.Any("error", err),
			)
			return true, err
		}
		return false, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Debug("request failed with server error",
			slog.Int("attempt", attempt+1),
			slog.Int("status", resp.StatusCode),
		)
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("failed to close response body", slog.Any("error", closeErr))
		}
		return true, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return false, nil
}

// recordResult settles the breaker, span, metrics, and logs for the
// finished request and shapes the caller-facing return.
func (c *Client) recordResult(ctx context.Context, req *http.Request, resp *http.Response, lastErr error, span trace.Span, logger *slog.Logger, startTime time.Time) (*http.Response, error) {
	duration := time.Since(startTime)

	if lastErr != nil {
		c.cb.RecordFailure()
		span.SetStatus(codes.Error, lastErr.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", lastErr),
		)
		return nil, fmt.Errorf("%w: %v", ErrMaxRetriesExceeded, lastErr)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Patch performs an HTTP PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.Do(ctx, req)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// CircuitState reports the breaker's current state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// injectHeaders forwards the caller's request and correlation IDs and
// applies auth for the first attempt.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

// buildURL joins the base URL and path with exactly one slash between them.
func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns the wait before the given attempt: exponential
// growth capped at MaxInterval, spread by the configured jitter factor.
// A zero JitterFactor yields deterministic backoff.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))
	backoff = min(backoff, float64(c.cfg.Retry.MaxInterval))

	if factor := c.cfg.Retry.JitterFactor; factor > 0 {
		spread := rand.Float64()*jitterRangeMultiplier - 1 //nolint:gosec // Backoff spreading needs no crypto randomness
		backoff += backoff * factor * spread
	}

	return time.Duration(backoff)
}

// recordMetrics records one request outcome on the duration histogram and
// the request counter.
func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether a transport error is worth another
// attempt. Context cancellation and deadlines are final; network timeouts
// and connection-level failures (refused, reset) are not.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
