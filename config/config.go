package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/cdnkit/logger"
	"github.com/kbukum/cdnkit/observability"
	"github.com/kbukum/cdnkit/security"
	"github.com/kbukum/cdnkit/util"
	"github.com/kbukum/cdnkit/validation"
)

// defaultTimeoutMS mirrors the loader's per-attempt default.
const defaultTimeoutMS = 10000

// Config is the top-level cdnkit configuration.
type Config struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Loader        LoaderSection        `yaml:"loader" mapstructure:"loader"`
	Fetch         FetchSection         `yaml:"fetch" mapstructure:"fetch"`
	Observability ObservabilitySection `yaml:"observability" mapstructure:"observability"`
	CDNs          []CDNTemplate        `yaml:"cdns" mapstructure:"cdns" validate:"omitempty,dive"`
}

// LoaderSection controls fallback behavior.
type LoaderSection struct {
	// TimeoutMS caps each provider attempt in milliseconds.
	TimeoutMS int `yaml:"timeout_ms" mapstructure:"timeout_ms" validate:"gte=0"`

	// Order restricts and reorders the providers attempted by default.
	// Empty means registration order.
	Order []string `yaml:"order" mapstructure:"order"`
}

// Timeout returns the per-attempt timeout as a duration.
func (s LoaderSection) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// FetchSection controls the HTTP script environment.
type FetchSection struct {
	// Timeout is the hard cap on a single fetch.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent overrides the default cdnkit user agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// MaxBodySize caps the script payload, as a human-readable size
	// such as "10MB" or "512KB".
	MaxBodySize string `yaml:"max_body_size" mapstructure:"max_body_size"`

	// Headers are sent with every fetch.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures transport security for private mirrors.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// BodyLimit parses MaxBodySize into bytes. Zero means the environment
// default applies.
func (s FetchSection) BodyLimit() int64 {
	return util.ParseSize(s.MaxBodySize, 0)
}

// ObservabilitySection controls OTLP trace and metric export.
type ObservabilitySection struct {
	// Enabled turns on tracing and metrics for load calls.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP collector, host:port. Empty means the
	// local default.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure disables TLS towards the collector. Set it for local
	// collectors without certificates.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate between 0 and 1. Zero
	// means full sampling.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Build assembles the exporter configuration for this service.
func (s ObservabilitySection) Build(name, environment string) observability.Config {
	cfg := observability.DefaultConfig(name)
	cfg.Environment = environment
	cfg.Insecure = s.Insecure
	if s.Endpoint != "" {
		cfg.Endpoint = s.Endpoint
	}
	if s.SampleRate > 0 {
		cfg.SampleRate = s.SampleRate
	}
	return cfg
}

// CDNTemplate declares a provider in the configuration file. URL may use
// the {package}, {version} and {path} placeholders.
type CDNTemplate struct {
	Name          string `yaml:"name" mapstructure:"name" validate:"required"`
	URL           string `yaml:"url" mapstructure:"url" validate:"required"`
	OmitEmptyPath bool   `yaml:"omit_empty_path" mapstructure:"omit_empty_path"`
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	c.Name = util.Coalesce(c.Name, "cdnkit")
	c.Environment = util.Coalesce(c.Environment, "development")
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	if c.Loader.TimeoutMS <= 0 {
		c.Loader.TimeoutMS = defaultTimeoutMS
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if c.Fetch.TLS != nil {
		if err := c.Fetch.TLS.Validate(); err != nil {
			return fmt.Errorf("fetch.tls: %w", err)
		}
	}

	v := validation.New()
	names := make([]string, len(c.CDNs))
	for i, cdn := range c.CDNs {
		names[i] = cdn.Name
		v.URLTemplate(fmt.Sprintf("cdns[%d].url", i), cdn.URL)
	}
	v.Unique("cdns", names...)
	return v.Err()
}

// Redacted returns a copy safe for logging: header values that look like
// credentials are masked.
func (c Config) Redacted() Config {
	if len(c.Fetch.Headers) == 0 {
		return c
	}
	masked := make(map[string]string, len(c.Fetch.Headers))
	for k, val := range c.Fetch.Headers {
		if isSensitiveHeader(k) {
			masked[k] = util.MaskSecret(val, 4)
		} else {
			masked[k] = val
		}
	}
	c.Fetch.Headers = masked
	return c
}

func isSensitiveHeader(name string) bool {
	n := strings.ToLower(name)
	for _, marker := range []string{"authorization", "token", "secret", "key", "cookie"} {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}
