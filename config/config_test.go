package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != "cdnkit" {
		t.Errorf("expected name 'cdnkit', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected environment 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug=true for development")
	}
	if cfg.Loader.TimeoutMS != defaultTimeoutMS {
		t.Errorf("expected timeout %d, got %d", defaultTimeoutMS, cfg.Loader.TimeoutMS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
	}
}

func TestConfigApplyDefaultsPreservesValues(t *testing.T) {
	cfg := Config{
		Name:        "mirror-sync",
		Environment: "production",
		Loader:      LoaderSection{TimeoutMS: 2500},
	}
	cfg.ApplyDefaults()

	if cfg.Name != "mirror-sync" {
		t.Errorf("expected name to be preserved, got %q", cfg.Name)
	}
	if cfg.Debug {
		t.Error("expected debug=false for production")
	}
	if cfg.Loader.TimeoutMS != 2500 {
		t.Errorf("expected timeout 2500, got %d", cfg.Loader.TimeoutMS)
	}
}

func TestLoaderSectionTimeout(t *testing.T) {
	s := LoaderSection{TimeoutMS: 2500}
	if s.Timeout() != 2500*time.Millisecond {
		t.Errorf("expected 2.5s, got %v", s.Timeout())
	}
}

func TestFetchSectionBodyLimit(t *testing.T) {
	tests := []struct {
		size string
		want int64
	}{
		{"10MB", 10 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"", 0},
		{"not-a-size", 0},
	}
	for _, tc := range tests {
		s := FetchSection{MaxBodySize: tc.size}
		if got := s.BodyLimit(); got != tc.want {
			t.Errorf("BodyLimit(%q): expected %d, got %d", tc.size, tc.want, got)
		}
	}
}

func TestObservabilitySectionBuild(t *testing.T) {
	s := ObservabilitySection{Enabled: true, Insecure: true, SampleRate: 0.5}
	built := s.Build("cdnkit", "staging")

	if built.ServiceName != "cdnkit" {
		t.Errorf("ServiceName = %q, want cdnkit", built.ServiceName)
	}
	if built.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", built.Environment)
	}
	if built.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q, want the local default", built.Endpoint)
	}
	if built.SampleRate != 0.5 {
		t.Errorf("SampleRate = %v, want 0.5", built.SampleRate)
	}

	s.Endpoint = "otel.internal:4318"
	s.SampleRate = 0
	built = s.Build("cdnkit", "production")
	if built.Endpoint != "otel.internal:4318" {
		t.Errorf("Endpoint = %q, want the configured collector", built.Endpoint)
	}
	if built.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want the full-sampling default", built.SampleRate)
	}
}

func validConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{
			"bad environment",
			func(c *Config) { c.Environment = "testing" },
			"environment",
		},
		{
			"cdn missing name",
			func(c *Config) {
				c.CDNs = []CDNTemplate{{URL: "https://cdn.example/{package}"}}
			},
			"name",
		},
		{
			"cdn missing url",
			func(c *Config) {
				c.CDNs = []CDNTemplate{{Name: "mirror"}}
			},
			"url",
		},
		{
			"duplicate cdn names",
			func(c *Config) {
				c.CDNs = []CDNTemplate{
					{Name: "mirror", URL: "https://a.example/{package}"},
					{Name: "mirror", URL: "https://b.example/{package}"},
				}
			},
			"duplicate",
		},
		{
			"cdn url not http",
			func(c *Config) {
				c.CDNs = []CDNTemplate{{Name: "mirror", URL: "ftp://cdn.example/{package}"}}
			},
			"http",
		},
		{
			"cdn url without package placeholder",
			func(c *Config) {
				c.CDNs = []CDNTemplate{{Name: "mirror", URL: "https://cdn.example/static/lib.js"}}
			},
			"placeholder",
		},
		{
			"sample rate above one",
			func(c *Config) { c.Observability.SampleRate = 1.5 },
			"sample_rate",
		},
		{
			"negative sample rate",
			func(c *Config) { c.Observability.SampleRate = -0.1 },
			"sample_rate",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestConfigRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.Headers = map[string]string{
		"Authorization": "Bearer super-secret-token",
		"X-Api-Key":     "abcd1234efgh",
		"Accept":        "application/javascript",
	}

	red := cfg.Redacted()

	if red.Fetch.Headers["Authorization"] != "Bear***" {
		t.Errorf("expected masked authorization, got %q", red.Fetch.Headers["Authorization"])
	}
	if red.Fetch.Headers["X-Api-Key"] != "abcd***" {
		t.Errorf("expected masked api key, got %q", red.Fetch.Headers["X-Api-Key"])
	}
	if red.Fetch.Headers["Accept"] != "application/javascript" {
		t.Errorf("expected accept header untouched, got %q", red.Fetch.Headers["Accept"])
	}
	// The original is not mutated.
	if cfg.Fetch.Headers["Authorization"] != "Bearer super-secret-token" {
		t.Error("expected original headers to be unchanged")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cdnkit.yml")

	content := `
name: cdnkit
environment: staging
logging:
  level: warn
loader:
  timeout_ms: 4000
  order: [unpkg, jsdelivr]
fetch:
  timeout: 30s
  user_agent: cdnkit-test/1.0
  max_body_size: 10MB
cdns:
  - name: corp-mirror
    url: https://cdn.corp.example/{package}@{version}/{path}
    omit_empty_path: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Config
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Loader.TimeoutMS != 4000 {
		t.Errorf("expected timeout 4000, got %d", cfg.Loader.TimeoutMS)
	}
	if len(cfg.Loader.Order) != 2 || cfg.Loader.Order[0] != "unpkg" {
		t.Errorf("unexpected order: %v", cfg.Loader.Order)
	}
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("expected fetch timeout 30s, got %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.BodyLimit() != 10*1024*1024 {
		t.Errorf("expected 10MB body limit, got %d", cfg.Fetch.BodyLimit())
	}
	if len(cfg.CDNs) != 1 || cfg.CDNs[0].Name != "corp-mirror" || !cfg.CDNs[0].OmitEmptyPath {
		t.Errorf("unexpected cdns: %+v", cfg.CDNs)
	}
}

func TestLoadMissingFileSucceeds(t *testing.T) {
	var cfg Config
	if err := Load(&cfg, WithConfigFile("/nonexistent/cdnkit.yml"), WithEnvFile("/nonexistent/.env")); err != nil {
		t.Fatalf("expected Load to succeed with missing files, got %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cdnkit.yml")
	if err := os.WriteFile(path, []byte("loader: [not: valid"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg Config
	if err := Load(&cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CDNKIT_LOADER_TIMEOUT_MS", "500")
	t.Setenv("CDNKIT_LOGGING_LEVEL", "debug")
	t.Setenv("CDNKIT_LOADER_ORDER", "unpkg,cdnjs")

	var cfg Config
	if err := Load(&cfg, WithConfigFile("/nonexistent/cdnkit.yml"), WithEnvFile("/nonexistent/.env")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Loader.TimeoutMS != 500 {
		t.Errorf("expected timeout 500, got %d", cfg.Loader.TimeoutMS)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if len(cfg.Loader.Order) != 2 || cfg.Loader.Order[0] != "unpkg" || cfg.Loader.Order[1] != "cdnjs" {
		t.Errorf("unexpected order: %v", cfg.Loader.Order)
	}
}

func TestLoadIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("LOADER_TIMEOUT_MS", "123")

	var cfg Config
	if err := Load(&cfg, WithConfigFile("/nonexistent/cdnkit.yml"), WithEnvFile("/nonexistent/.env")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Loader.TimeoutMS == 123 {
		t.Error("expected unprefixed variable to be ignored")
	}
}

type mockFS struct {
	files map[string]bool
	home  string
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Home() (string, error)     { return m.home, nil }

func TestFindConfigFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./cdnkit.yml": true}}
	if got := findConfigFile(fs); got != "./cdnkit.yml" {
		t.Errorf("expected ./cdnkit.yml, got %q", got)
	}

	home := filepath.Join("home", "dev")
	fs = &mockFS{
		home:  home,
		files: map[string]bool{filepath.Join(home, ".config", "cdnkit", "config.yml"): true},
	}
	if got := findConfigFile(fs); got != filepath.Join(home, ".config", "cdnkit", "config.yml") {
		t.Errorf("expected home config path, got %q", got)
	}

	if got := findConfigFile(&mockFS{}); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestFindEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join(".", ".env.cdnkit"): true,
		filepath.Join(".", ".env"):        true,
	}}
	if got := findEnvFile(fs); got != filepath.Join(".", ".env.cdnkit") {
		t.Errorf("expected .env.cdnkit to win, got %q", got)
	}

	fs = &mockFS{files: map[string]bool{filepath.Join("config", ".env"): true}}
	if got := findEnvFile(fs); got != filepath.Join("config", ".env") {
		t.Errorf("expected config/.env, got %q", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("LOADER_TIMEOUT_MS")

	wantAmong := []string{"loader_timeout_ms", "loader.timeout.ms", "loader.timeout_ms"}
	for _, want := range wantAmong {
		found := false
		for _, v := range variants {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected variant %q in %v", want, variants)
		}
	}

	if got := envKeyVariants("VERBOSE"); len(got) != 1 || got[0] != "verbose" {
		t.Errorf("expected single variant, got %v", got)
	}
}

func TestOptionFuncs(t *testing.T) {
	var o Options
	fs := &mockFS{}
	WithFileSystem(fs)(&o)
	WithConfigFile("/path/cdnkit.yml")(&o)
	WithEnvFile("/path/.env")(&o)

	if o.FileSystem == nil {
		t.Error("expected filesystem to be set")
	}
	if o.ConfigFile != "/path/cdnkit.yml" {
		t.Errorf("expected config path, got %q", o.ConfigFile)
	}
	if o.EnvFile != "/path/.env" {
		t.Errorf("expected env path, got %q", o.EnvFile)
	}
}
