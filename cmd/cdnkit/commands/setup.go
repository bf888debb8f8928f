package commands

import (
	"context"

	"github.com/kbukum/cdnkit/config"
	"github.com/kbukum/cdnkit/loader"
	"github.com/kbukum/cdnkit/logger"
	"github.com/kbukum/cdnkit/observability"
	"github.com/kbukum/cdnkit/registry"
	"github.com/kbukum/cdnkit/resolver"
	"github.com/kbukum/cdnkit/scriptenv"
)

// loadConfig reads the effective configuration for a command invocation,
// honoring the global --config and --verbose flags.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}

	var opts []config.Option
	if configPath != "" {
		opts = append(opts, config.WithConfigFile(configPath))
	}
	if err := config.Load(cfg, opts...); err != nil {
		return nil, err
	}

	// Command results go to stdout, so keep logs on stderr unless the
	// configuration says otherwise.
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Debug = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging, cfg.Name)
	return cfg, nil
}

// newRegistry builds the provider registry from the configuration: the
// built-in providers plus any custom templates layered on top.
func newRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.NewDefault()
	for _, c := range cfg.CDNs {
		tpl := resolver.Template{Pattern: c.URL, OmitEmptyPath: c.OmitEmptyPath}
		if err := reg.Register(c.Name, tpl); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// setupObservability starts OTLP export when the configuration asks for
// it. The returned shutdown function is never nil.
func setupObservability(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.Observability.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	return observability.Init(ctx, cfg.Observability.Build(cfg.Name, cfg.Environment))
}

// buildLoader assembles a loader from the configuration. handler, when not
// nil, receives each fetched script payload.
func buildLoader(cfg *config.Config, handler scriptenv.Handler) (*loader.Loader, error) {
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	env, err := scriptenv.NewHTTP(scriptenv.Config{
		Timeout:      cfg.Fetch.Timeout,
		UserAgent:    cfg.Fetch.UserAgent,
		Headers:      cfg.Fetch.Headers,
		MaxBodyBytes: cfg.Fetch.BodyLimit(),
		TLS:          cfg.Fetch.TLS,
		Handler:      handler,
	})
	if err != nil {
		return nil, err
	}

	lcfg := loader.Config{
		Registry:    reg,
		Environment: env,
		Timeout:     cfg.Loader.Timeout(),
		Logger:      logger.Global(),
	}
	if cfg.Observability.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, err
		}
		lcfg.Metrics = metrics
		lcfg.Tracing = true
	}
	return loader.New(lcfg)
}
