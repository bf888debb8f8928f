package loader

import (
	"context"
	"sync"

	"github.com/kbukum/cdnkit/resolver"
)

var (
	defaultOnce   sync.Once
	defaultLoader *Loader
)

// Default returns the process-wide loader, creating it on first use with
// the built-in provider set. Subsequent calls return the same instance.
func Default() *Loader {
	defaultOnce.Do(func() {
		l, err := New(Config{})
		if err != nil {
			// New cannot fail with a zero config.
			panic(err)
		}
		defaultLoader = l
	})
	return defaultLoader
}

// RegisterCDN adds a provider to the default loader's registry.
func RegisterCDN(name string, res resolver.Resolver) error {
	return Default().RegisterCDN(name, res)
}

// UnregisterCDN removes a provider from the default loader's registry.
func UnregisterCDN(name string) {
	Default().UnregisterCDN(name)
}

// ListCDNs returns the default loader's provider names in fallback order.
func ListCDNs() []string {
	return Default().CDNs()
}

// LoadLibrary loads a script through the default loader.
func LoadLibrary(ctx context.Context, pkg string, opts ...Option) (string, error) {
	return Default().Load(ctx, pkg, opts...)
}
