package loader

import (
	"time"

	"github.com/kbukum/cdnkit/cache"
	"github.com/kbukum/cdnkit/errors"
	"github.com/kbukum/cdnkit/logger"
	"github.com/kbukum/cdnkit/observability"
	"github.com/kbukum/cdnkit/registry"
	"github.com/kbukum/cdnkit/scriptenv"
)

// DefaultTimeout caps a single provider attempt unless overridden by the
// configuration or per call.
const DefaultTimeout = 10 * time.Second

// Config configures a Loader.
type Config struct {
	// Registry supplies the named providers and their fallback order.
	// Defaults to the built-in public CDN set.
	Registry *registry.Registry

	// Cache records successfully loaded URLs so repeated loads skip the
	// network. Defaults to a fresh empty cache.
	Cache *cache.Cache

	// Environment performs the actual script loads. Defaults to the HTTP
	// environment with its default configuration.
	Environment scriptenv.Environment

	// Timeout caps each provider attempt. Non-positive values fall back
	// to DefaultTimeout.
	Timeout time.Duration

	// Logger receives per-call and per-attempt records. Defaults to a
	// logger named "cdnkit".
	Logger *logger.Logger

	// Metrics, when set, records load, attempt, cache hit and error
	// counters for every call.
	Metrics *observability.Metrics

	// Tracing opens a span per call with child spans per attempt.
	Tracing bool
}

// ApplyDefaults fills in zero-value fields with sensible defaults. The
// environment default is applied by New because constructing it can fail.
func (c *Config) ApplyDefaults() {
	if c.Registry == nil {
		c.Registry = registry.NewDefault()
	}
	if c.Cache == nil {
		c.Cache = cache.New()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = logger.NewDefault("cdnkit")
	}
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Registry == nil {
		return errors.Configuration("loader requires a registry")
	}
	if c.Cache == nil {
		return errors.Configuration("loader requires a cache")
	}
	if c.Environment == nil {
		return errors.Configuration("loader requires a script environment")
	}
	if c.Timeout <= 0 {
		return errors.Configuration("loader requires a positive timeout")
	}
	return nil
}
