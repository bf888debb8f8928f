package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix guards which process environment variables feed configuration.
const envPrefix = "CDNKIT_"

// FileSystem abstracts file probing so tests can script lookups.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Home() (string, error)
}

// RealFileSystem implements FileSystem against the OS.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Home() (string, error) {
	return os.UserHomeDir()
}

// Options holds dependencies and optional file overrides for Load.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// Option customizes Load.
type Option func(*Options)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load populates cfg from the first config file found, the first .env file
// found and CDNKIT_-prefixed environment variables, in that precedence
// order. Missing files are not an error: environment variables alone can
// configure everything.
func Load(cfg interface{}, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.FileSystem == nil {
		o.FileSystem = &RealFileSystem{}
	}

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = findConfigFile(o.FileSystem)
	}
	envFile := o.EnvFile
	if envFile == "" {
		envFile = findEnvFile(o.FileSystem)
	}

	v := viper.New()

	if configFile != "" && o.FileSystem.Exists(configFile) {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	// .env values become process environment, so load it before binding.
	if envFile != "" && o.FileSystem.Exists(envFile) {
		if err := o.FileSystem.LoadEnv(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load env file %s: %v\n", envFile, err)
		}
	}
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// findConfigFile probes the standard cdnkit config locations.
func findConfigFile(fs FileSystem) string {
	paths := []string{
		"./cdnkit.yml",
		"./cdnkit.yaml",
		"./config/cdnkit.yml",
		"./config.yml",
	}
	if home, err := fs.Home(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "cdnkit", "config.yml"))
	}
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile probes the standard .env locations.
func findEnvFile(fs FileSystem) string {
	for _, name := range []string{".env.cdnkit", ".env"} {
		for _, dir := range []string{".", "./config"} {
			path := filepath.Join(dir, name)
			if fs.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// bindEnvVars feeds CDNKIT_-prefixed environment variables into viper,
// expanding each key into the nested spellings it could address.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], envPrefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], envPrefix)
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants maps an environment key to the viper keys it may mean.
// Underscores are ambiguous between nesting and multi-word field names, so
// every split point is generated:
//
//	LOADER_TIMEOUT_MS -> [loader_timeout_ms, loader.timeout.ms,
//	                      loader.timeout_ms, loader_timeout.ms]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{lowerKey, strings.ReplaceAll(lowerKey, "_", ".")}
	for i := 1; i < len(parts); i++ {
		head, tail := parts[:i], parts[i:]
		variants = append(variants,
			strings.Join(head, ".")+"."+strings.Join(tail, "_"),
			strings.Join(head, "_")+"."+strings.Join(tail, "."),
		)
	}

	seen := make(map[string]bool, len(variants))
	uniq := variants[:0]
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}
	return uniq
}
