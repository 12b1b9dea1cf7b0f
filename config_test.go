package billplz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/billplz/config"
	apperrors "github.com/kbukum/billplz/errors"
	"github.com/kbukum/billplz/logger"
	"github.com/kbukum/billplz/transport"
	"github.com/kbukum/billplz/validation"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, `
billplz:
  api_key: yaml-key
  sandbox: true
  logging:
    level: debug
  transport:
    timeout: 10s
    retry:
      max_attempts: 4
    circuit_breaker:
      max_failures: 3
`)

	cfg, err := LoadConfig(config.WithConfigFile(path), config.WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIKey != "yaml-key" || !cfg.Sandbox {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug logging, got %q", cfg.Logging.Level)
	}
	if cfg.Transport.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Transport.Timeout)
	}
	if cfg.Transport.Retry == nil || cfg.Transport.Retry.MaxAttempts != 4 {
		t.Errorf("expected retry section, got %+v", cfg.Transport.Retry)
	}
	if cfg.Transport.CircuitBreaker == nil || cfg.Transport.CircuitBreaker.MaxFailures != 3 {
		t.Errorf("expected breaker section, got %+v", cfg.Transport.CircuitBreaker)
	}
	if cfg.Transport.RateLimit != nil {
		t.Error("absent rate limit section should stay disabled")
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "billplz:\n  api_key: yaml-key\n")
	t.Setenv("BILLPLZ_API_KEY", "env-key")
	t.Setenv("BILLPLZ_TRANSPORT_TIMEOUT", "3s")

	cfg, err := LoadConfig(config.WithConfigFile(path), config.WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("expected env api key, got %q", cfg.APIKey)
	}
	if cfg.Transport.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout from env, got %v", cfg.Transport.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Endpoint: "not a url"}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	fields, _ := appErr.Details["fields"].([]validation.FieldError)
	got := map[string]bool{}
	for _, f := range fields {
		got[f.Field] = true
	}
	for _, want := range []string{"api_key", "endpoint"} {
		if !got[want] {
			t.Errorf("expected field error for %s, got %+v", want, fields)
		}
	}

	bad := Config{APIKey: "k", Logging: logger.Config{Level: "verbose", Format: "json", Output: "stdout"}}
	bad.Transport.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Error("expected invalid log level to fail")
	}
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		endpoint string
	}{
		{"production", Config{APIKey: "k"}, ProductionEndpoint},
		{"sandbox", Config{APIKey: "k", Sandbox: true}, SandboxEndpoint},
		{"endpoint wins over sandbox", Config{APIKey: "k", Sandbox: true, Endpoint: "https://proxy.local/api"}, "https://proxy.local/api"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.Output = "stdout"
			tc.cfg.Transport.Retry = &transport.RetryConfig{}
			c, err := NewFromConfig(tc.cfg)
			if err != nil {
				t.Fatalf("NewFromConfig: %v", err)
			}
			if c.Endpoint() != tc.endpoint {
				t.Errorf("expected %s, got %s", tc.endpoint, c.Endpoint())
			}
			if _, ok := c.Transport().(*transport.Adapter); !ok {
				t.Errorf("expected default adapter, got %T", c.Transport())
			}
		})
	}

	if _, err := NewFromConfig(Config{}); err == nil {
		t.Error("expected missing api key to fail")
	}
}
