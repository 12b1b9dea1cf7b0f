package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/kbukum/billplz/logger"
	"github.com/kbukum/billplz/observability"
)

// Adapter is the default Transport, backed by net/http.
// It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	log        *logger.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	metrics    *observability.TransportMetrics
}

var _ Transport = (*Adapter)(nil)

// Option customizes an Adapter.
type Option func(*adapterOptions)

type adapterOptions struct {
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagator     propagation.TextMapPropagator
	roundTripper   http.RoundTripper
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *adapterOptions) { o.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *adapterOptions) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *adapterOptions) { o.meterProvider = mp }
}

// WithPropagator sets the propagator used to inject trace context into
// outbound headers. Defaults to the global propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *adapterOptions) { o.propagator = p }
}

// WithRoundTripper replaces the HTTP transport. TLS settings from Config
// are ignored when it is set.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *adapterOptions) { o.roundTripper = rt }
}

// New creates an Adapter from cfg. Zero-value fields get defaults.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := adapterOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.propagator == nil {
		o.propagator = otel.GetTextMapPropagator()
	}

	rt := o.roundTripper
	if rt == nil {
		base := http.DefaultTransport.(*http.Transport).Clone()
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			base.TLSClientConfig = tlsCfg
		}
		rt = base
	}

	metrics, err := observability.NewTransportMetrics(observability.Meter(o.meterProvider))
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		config:     cfg,
		log:        o.log.WithComponent("transport"),
		tracer:     observability.Tracer(o.tracerProvider),
		propagator: o.propagator,
		metrics:    metrics,
	}
	if cfg.CircuitBreaker != nil {
		a.breaker = a.newBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimit != nil {
		a.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Rate), cfg.RateLimit.Burst)
	}
	return a, nil
}

func (a *Adapter) newBreaker(cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// Only gateway-side failures count; a rejected payload is a healthy gateway.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			a.log.Info("circuit breaker state changed", logger.Fields(
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			))
		},
	})
}

// Send performs the request and returns the gateway response.
//
// Non-2xx responses are returned together with a *Error classifying the
// status. Retryable failures are retried when retry is configured.
func (a *Adapter) Send(ctx context.Context, method string, uri *url.URL, headers map[string]string, body string) (*Response, error) {
	if uri == nil {
		return nil, NewRequestError(errors.New("nil uri"))
	}

	log := a.log.WithFields(logger.Fields(
		logger.FieldRequestID, uuid.NewString(),
		logger.FieldMethod, method,
		logger.FieldHost, uri.Host,
		logger.FieldPath, uri.Path,
	))

	ctx, span := a.tracer.Start(ctx, "billplz "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("server.address", uri.Hostname()),
			attribute.String("url.path", uri.Path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := a.sendWithRetry(ctx, log, method, uri, headers, body)
	a.metrics.RecordRequest(ctx, method, outcome(resp, err), time.Since(start))

	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

func (a *Adapter) sendWithRetry(ctx context.Context, log *logger.Logger, method string, uri *url.URL, headers map[string]string, body string) (*Response, error) {
	if a.config.Retry == nil {
		return a.attempt(ctx, log, method, uri, headers, body)
	}

	cfg := a.config.Retry
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	b.Multiplier = cfg.Multiplier

	attempt := 0
	op := func() (*Response, error) {
		attempt++
		resp, err := a.attempt(ctx, log.WithFields(logger.Fields(logger.FieldAttempt, attempt)), method, uri, headers, body)
		if err != nil && !IsRetryable(err) {
			return resp, backoff.Permanent(err)
		}
		return resp, err
	}
	notify := func(err error, next time.Duration) {
		log.Warn("retrying billplz request", logger.MergeWithError(logger.Fields(
			logger.FieldAttempt, attempt,
			"backoff_ms", next.Milliseconds(),
		), err))
	}

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(cfg.MaxAttempts),
		backoff.WithNotify(notify),
	)
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return resp, err
}

// attempt runs one request through the limiter and the breaker.
func (a *Adapter) attempt(ctx context.Context, log *logger.Logger, method string, uri *url.URL, headers map[string]string, body string) (*Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, NewCanceledError(err)
			}
			return nil, &Error{Code: ErrCodeTimeout, Message: "rate limiter: " + err.Error(), Err: err}
		}
	}

	if a.breaker == nil {
		return a.roundTrip(ctx, log, method, uri, headers, body)
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.roundTrip(ctx, log, method, uri, headers, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Debug("request refused by circuit breaker")
		return nil, NewCircuitOpenError(a.breaker.Name(), err)
	}
	resp, _ := result.(*Response)
	return resp, err
}

// roundTrip performs a single HTTP exchange.
func (a *Adapter) roundTrip(ctx context.Context, log *logger.Logger, method string, uri *url.URL, headers map[string]string, body string) (*Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri.String(), reader)
	if err != nil {
		return nil, NewRequestError(redact(err, uri))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", a.config.UserAgent)
	}
	a.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	log.Debug("sending billplz request")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		err = redact(err, uri)
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewCanceledError(err)
		}
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		connErr := NewConnectionError(err)
		connErr.Host = uri.Host
		return nil, connErr
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		connErr := NewConnectionError(fmt.Errorf("read response body: %w", err))
		connErr.Host = uri.Host
		return nil, connErr
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       data,
	}
	log.Debug("billplz response received", logger.MergeWithDuration(
		logger.Fields(logger.FieldStatus, resp.StatusCode), time.Since(start)))

	if classErr := ClassifyStatusCode(resp.StatusCode, data); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// IsAvailable reports false while the circuit breaker is open.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	return a.breaker == nil || a.breaker.State() != gobreaker.StateOpen
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// redact strips the API key from URLs embedded in net/http errors.
func redact(err error, uri *url.URL) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		u := *uri
		u.User = nil
		uerr.URL = u.String()
	}
	return err
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
