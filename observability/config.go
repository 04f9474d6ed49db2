package observability

import (
	"fmt"
	"time"
)

// Trace exporters.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config groups tracing and metrics settings.
type Config struct {
	Tracing TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// TracerConfig configures the OpenTelemetry tracer.
type TracerConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Exporter is "stdout" or "otlp".
	Exporter string `yaml:"exporter" mapstructure:"exporter"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the fraction of traces kept; unset means 1, 0 keeps none.
	SampleRate *float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = ExporterStdout
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	if c.Tracing.SampleRate == nil {
		rate := 1.0
		c.Tracing.SampleRate = &rate
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval <= 0 {
		c.Metrics.Interval = 15 * time.Second
	}
}

// Validate checks the exporter selection and sample rate.
func (c *Config) Validate() error {
	if c.Tracing.Exporter != ExporterStdout && c.Tracing.Exporter != ExporterOTLP {
		return fmt.Errorf("telemetry.tracing.exporter must be one of [stdout otlp] (got: %s)", c.Tracing.Exporter)
	}
	if r := c.Tracing.SampleRate; r != nil && (*r < 0 || *r > 1) {
		return fmt.Errorf("telemetry.tracing.sample_rate must be between 0 and 1 (got: %v)", *r)
	}
	return nil
}
