package loader

import "time"

// Per-call defaults. They are applied before the options run, so an
// explicitly empty value set by an option is honored as-is.
const (
	DefaultVersion = "latest"
	DefaultPath    = "index.js"
)

// options collects the per-call knobs.
type options struct {
	version  string
	path     string
	cdnOrder []string
	timeout  time.Duration
}

func defaultOptions(timeout time.Duration) options {
	return options{
		version: DefaultVersion,
		path:    DefaultPath,
		timeout: timeout,
	}
}

// Option customizes a single Load call.
type Option func(*options)

// WithVersion requests a specific package version instead of "latest".
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithPath requests a file within the package instead of "index.js". An
// explicitly empty path is passed through to the resolvers, which lets
// bare-module providers drop the path segment entirely.
func WithPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithCDNOrder overrides the registry fallback order for this call. Names
// not present in the registry are skipped; duplicate names are attempted
// once per occurrence.
func WithCDNOrder(names ...string) Option {
	return func(o *options) { o.cdnOrder = append([]string(nil), names...) }
}

// WithTimeout overrides the per-attempt timeout for this call.
// Non-positive values keep the loader's configured timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
