package transport

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{
		Retry:          &RetryConfig{},
		CircuitBreaker: &CircuitBreakerConfig{},
		RateLimit:      &RateLimitConfig{},
	}
	cfg.ApplyDefaults()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.UserAgent, "billplz-go/") {
		t.Errorf("unexpected user agent %q", cfg.UserAgent)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Multiplier != 2 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.CircuitBreaker.Name != "billplz" || cfg.CircuitBreaker.MaxFailures != 5 || cfg.CircuitBreaker.HalfOpenMaxCalls != 1 {
		t.Errorf("unexpected breaker defaults: %+v", cfg.CircuitBreaker)
	}
	if cfg.RateLimit.Rate != 10 || cfg.RateLimit.Burst != 20 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_ApplyDefaultsLeavesSectionsDisabled(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Retry != nil || cfg.CircuitBreaker != nil || cfg.RateLimit != nil {
		t.Error("nil sections must stay disabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"zero timeout", Config{}, "timeout"},
		{"interval order", Config{Timeout: time.Second, Retry: &RetryConfig{
			MaxAttempts: 2, InitialInterval: time.Second, MaxInterval: time.Millisecond, Multiplier: 2,
		}}, "retry.max_interval"},
		{"zero burst", Config{Timeout: time.Second, RateLimit: &RateLimitConfig{Rate: 1}}, "rate_limit.burst"},
		{"cert without key", Config{Timeout: time.Second, TLS: &TLSConfig{CertFile: "client.pem"}}, "tls.key_file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("expected error to name %s, got %v", tc.field, err)
			}
		})
	}
}

func TestDefaultSectionConfigs(t *testing.T) {
	if DefaultRetryConfig().MaxAttempts != 3 {
		t.Error("unexpected default retry attempts")
	}
	if DefaultCircuitBreakerConfig("gw").Name != "gw" {
		t.Error("expected breaker name to be kept")
	}
	if DefaultRateLimitConfig().Burst != 20 {
		t.Error("unexpected default burst")
	}
}
