package scriptenv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/cdnkit/version"
)

const (
	defaultTimeout = 30 * time.Second

	// defaultMaxBodyBytes caps script payloads at 32 MiB.
	defaultMaxBodyBytes = 32 << 20
)

// Handler receives a fetched script payload. Returning an error marks the
// fetch as failed even though the HTTP exchange succeeded.
type Handler func(url string, body []byte) error

// Config configures the HTTP script environment.
type Config struct {
	// Timeout is a hard cap on a single fetch, independent of the
	// deadline carried by the request context. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent identifies the client. Defaults to "cdnkit/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Headers are applied to all fetches. They override UserAgent when
	// a User-Agent key is present.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// MaxBodyBytes caps the script payload size. Defaults to 32 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// TLS configures TLS settings for the HTTP transport. Useful for
	// private CDN mirrors behind an internal CA.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Handler receives each successfully fetched payload. Nil discards
	// the payload, which still exercises the full fetch.
	Handler Handler `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("scriptenv: timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("scriptenv: max body bytes must be positive")
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	return nil
}

// HTTP fetches scripts over HTTP(S). It implements Environment.
type HTTP struct {
	httpClient *http.Client
	config     Config
}

// NewHTTP creates an HTTP script environment with the given configuration.
func NewHTTP(cfg Config) (*HTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS.IsEnabled() {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsCfg
	}

	return &HTTP{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}, nil
}

// Load fetches the script at url and hands the payload to the configured
// Handler. It returns a classified *Error on any failure.
func (e *HTTP) Load(ctx context.Context, url string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	httpReq.Header.Set("User-Agent", e.config.UserAgent)
	for k, v := range e.config.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return NewTimeoutError(err)
		}
		return NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read one byte past the cap to distinguish at-limit from over-limit.
	body, err := io.ReadAll(io.LimitReader(resp.Body, e.config.MaxBodyBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return NewTimeoutError(err)
		}
		return NewConnectionError(fmt.Errorf("read response body: %w", err))
	}
	if int64(len(body)) > e.config.MaxBodyBytes {
		return NewTooLargeError(e.config.MaxBodyBytes)
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return classErr
	}

	if e.config.Handler != nil {
		if err := e.config.Handler(url, body); err != nil {
			return NewHandlerError(err)
		}
	}

	return nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (e *HTTP) Unwrap() *http.Client {
	return e.httpClient
}
