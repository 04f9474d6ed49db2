package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/audiodigest/resilience"
)

const defaultTimeout = 120 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is prepended to request paths that are not absolute URLs.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each attempt, including reading the response body. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	// Auth configures default authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
	// Retry configures retry behavior. Nil performs a single attempt.
	Retry *resilience.RetryConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}

// RetryConfig returns a copy of cfg that only retries transient HTTP failures.
func RetryConfig(cfg resilience.RetryConfig) *resilience.RetryConfig {
	cfg.RetryIf = IsRetryable
	return &cfg
}
