package billplz

import (
	"github.com/kbukum/billplz/config"
	"github.com/kbukum/billplz/logger"
	"github.com/kbukum/billplz/transport"
	"github.com/kbukum/billplz/validation"
)

// Config is the file and environment configuration of a Client, read from
// the "billplz" section.
type Config struct {
	// APIKey is the secret key from the Billplz account settings.
	APIKey string `yaml:"api_key" mapstructure:"api_key" validate:"required"`
	// Endpoint overrides the API endpoint.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	// Sandbox selects the staging API. Ignored when Endpoint is set.
	Sandbox bool `yaml:"sandbox" mapstructure:"sandbox"`

	Logging   logger.Config    `yaml:"logging" mapstructure:"logging"`
	Transport transport.Config `yaml:"transport" mapstructure:"transport"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	c.Transport.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// LoadConfig reads the "billplz" section from config.yml, .env files and
// BILLPLZ_* environment variables.
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var file struct {
		Billplz Config `mapstructure:"billplz"`
	}
	if err := config.LoadConfig("billplz", &file, opts...); err != nil {
		return Config{}, err
	}
	return file.Billplz, nil
}

// NewFromConfig creates a Client with the default transport built from cfg.
func NewFromConfig(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&cfg.Logging, "billplz")
	t, err := transport.New(cfg.Transport, transport.WithLogger(log))
	if err != nil {
		return nil, err
	}

	c := New(t, cfg.APIKey, WithLogger(log))
	switch {
	case cfg.Endpoint != "":
		c.UseCustomEndpoint(cfg.Endpoint)
	case cfg.Sandbox:
		c.UseSandbox()
	}
	return c, nil
}
