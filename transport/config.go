package transport

import (
	"time"

	"github.com/kbukum/billplz/validation"
	"github.com/kbukum/billplz/version"
)

const (
	defaultTimeout = 30 * time.Second

	defaultRetryMaxAttempts     = 3
	defaultRetryInitialInterval = 100 * time.Millisecond
	defaultRetryMaxInterval     = 5 * time.Second
	defaultRetryMultiplier      = 2.0

	defaultBreakerName        = "billplz"
	defaultBreakerMaxFailures = 5
	defaultBreakerTimeout     = 30 * time.Second
	defaultBreakerHalfOpen    = 1

	defaultRateLimitRate  = 10.0
	defaultRateLimitBurst = 20
)

// Config configures the default Adapter.
type Config struct {
	// Timeout bounds a single HTTP attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is sent when the caller did not set one. Defaults to billplz-go/<version>.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures the connection to the gateway. Nil uses system defaults.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures retries of retryable failures. Nil disables retry.
	Retry *RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures the circuit breaker. Nil disables it.
	CircuitBreaker *CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`

	// RateLimit configures client-side rate limiting. Nil disables it.
	RateLimit *RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RetryConfig configures exponential backoff retries.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts uint `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1"`
	// InitialInterval is the delay before the first retry.
	InitialInterval time.Duration `yaml:"initial_interval" mapstructure:"initial_interval" validate:"gt=0"`
	// MaxInterval caps the delay between retries.
	MaxInterval time.Duration `yaml:"max_interval" mapstructure:"max_interval" validate:"gtefield=InitialInterval"`
	// Multiplier grows the delay after each retry.
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier" validate:"gte=1"`
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32 `yaml:"max_failures" mapstructure:"max_failures" validate:"gte=1"`
	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	// Interval clears failure counts while closed. Zero never clears them.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	// HalfOpenMaxCalls is the number of probe requests allowed while half-open.
	HalfOpenMaxCalls uint32 `yaml:"half_open_max_calls" mapstructure:"half_open_max_calls" validate:"gte=1"`
}

// RateLimitConfig configures a token bucket limiter.
type RateLimitConfig struct {
	// Rate is the number of requests per second.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gt=0"`
	// Burst is the bucket size.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=1"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
// Nil sections stay nil.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.Retry != nil {
		c.Retry.applyDefaults()
	}
	if c.CircuitBreaker != nil {
		c.CircuitBreaker.applyDefaults()
	}
	if c.RateLimit != nil {
		c.RateLimit.applyDefaults()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

func (r *RetryConfig) applyDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = defaultRetryMaxAttempts
	}
	if r.InitialInterval <= 0 {
		r.InitialInterval = defaultRetryInitialInterval
	}
	if r.MaxInterval <= 0 {
		r.MaxInterval = defaultRetryMaxInterval
	}
	if r.Multiplier == 0 {
		r.Multiplier = defaultRetryMultiplier
	}
}

func (b *CircuitBreakerConfig) applyDefaults() {
	if b.Name == "" {
		b.Name = defaultBreakerName
	}
	if b.MaxFailures == 0 {
		b.MaxFailures = defaultBreakerMaxFailures
	}
	if b.Timeout <= 0 {
		b.Timeout = defaultBreakerTimeout
	}
	if b.HalfOpenMaxCalls == 0 {
		b.HalfOpenMaxCalls = defaultBreakerHalfOpen
	}
}

func (r *RateLimitConfig) applyDefaults() {
	if r.Rate == 0 {
		r.Rate = defaultRateLimitRate
	}
	if r.Burst == 0 {
		r.Burst = defaultRateLimitBurst
	}
}

// DefaultRetryConfig returns the retry settings used when retry is enabled
// without explicit values.
func DefaultRetryConfig() *RetryConfig {
	cfg := &RetryConfig{}
	cfg.applyDefaults()
	return cfg
}

// DefaultCircuitBreakerConfig returns the default breaker settings under name.
func DefaultCircuitBreakerConfig(name string) *CircuitBreakerConfig {
	cfg := &CircuitBreakerConfig{Name: name}
	cfg.applyDefaults()
	return cfg
}

// DefaultRateLimitConfig returns the default limiter settings.
func DefaultRateLimitConfig() *RateLimitConfig {
	cfg := &RateLimitConfig{}
	cfg.applyDefaults()
	return cfg
}
