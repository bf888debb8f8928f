package scriptenv

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/cdnkit/security/tlstest"
)

func TestHTTP_Load_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "cdnkit/") {
			t.Errorf("expected cdnkit user agent, got %q", ua)
		}
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, "console.log('hi');")
	}))
	defer srv.Close()

	var gotURL string
	var gotBody []byte
	env, err := NewHTTP(Config{
		Handler: func(url string, body []byte) error {
			gotURL = url
			gotBody = body
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.Load(context.Background(), srv.URL+"/lib.js"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotURL != srv.URL+"/lib.js" {
		t.Errorf("handler url = %q, want %q", gotURL, srv.URL+"/lib.js")
	}
	if string(gotBody) != "console.log('hi');" {
		t.Errorf("handler body = %q", string(gotBody))
	}
}

func TestHTTP_Load_NilHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Load_ErrorClassification(t *testing.T) {
	tests := []struct {
		code    int
		checker func(error) bool
	}{
		{401, IsForbidden},
		{403, IsForbidden},
		{404, IsNotFound},
		{429, IsRateLimit},
		{500, IsServerError},
		{503, IsServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			env, err := NewHTTP(Config{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = env.Load(context.Background(), srv.URL)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.checker(err) {
				t.Errorf("error classification failed for HTTP %d: %v", tt.code, err)
			}
		})
	}
}

func TestHTTP_Load_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = env.Load(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestHTTP_Load_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = env.Load(context.Background(), url)
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestHTTP_Load_BadURL(t *testing.T) {
	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = env.Load(context.Background(), "http://bad url with spaces")
	if err == nil {
		t.Fatal("expected error for malformed URL")
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHTTP_Load_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 2048))
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{MaxBodyBytes: 1024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = env.Load(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrCodeTooLarge {
		t.Errorf("expected too-large error, got %v", err)
	}
}

func TestHTTP_Load_BodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 1024))
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{MaxBodyBytes: 1024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("payload exactly at limit should succeed: %v", err)
	}
}

func TestHTTP_Load_HandlerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not javascript")
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{
		Handler: func(url string, body []byte) error {
			return fmt.Errorf("syntax error")
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = env.Load(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected handler error")
	}
	if !IsHandler(err) {
		t.Errorf("expected handler error, got %v", err)
	}
}

func TestHTTP_Load_CustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Mirror-Token"); got != "secret" {
			t.Errorf("expected X-Mirror-Token=secret, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "custom-agent" {
			t.Errorf("expected custom user agent, got %q", got)
		}
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{
		Headers: map[string]string{
			"X-Mirror-Token": "secret",
			"User-Agent":     "custom-agent",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Load_TLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "secure")
	}))
	defer srv.Close()

	env, err := NewHTTP(Config{
		TLS: &TLSConfig{SkipVerify: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Load(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Load_TLS_UntrustedCert(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = env.Load(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for untrusted certificate")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestHTTP_Load_TLS_PrivateCA(t *testing.T) {
	certs := tlstest.GenerateTLSCerts(t)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "console.log('mirror');")
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{certs.ServerTLS}}
	srv.StartTLS()
	defer srv.Close()

	env, err := NewHTTP(Config{
		TLS: &TLSConfig{CAFile: certs.CAFile},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Load(context.Background(), srv.URL+"/app.js"); err != nil {
		t.Fatalf("fetch through private CA should succeed: %v", err)
	}
}

func TestNewHTTP_InvalidTLS(t *testing.T) {
	_, err := NewHTTP(Config{
		TLS: &TLSConfig{CertFile: "cert.pem"},
	})
	if err == nil {
		t.Fatal("expected error for cert without key")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.UserAgent, "cdnkit/") {
		t.Errorf("expected cdnkit user agent, got %q", cfg.UserAgent)
	}
	if cfg.MaxBodyBytes != defaultMaxBodyBytes {
		t.Errorf("expected default max body bytes, got %d", cfg.MaxBodyBytes)
	}
}

func TestConfig_ApplyDefaults_PreservesValues(t *testing.T) {
	cfg := Config{
		Timeout:      5 * time.Second,
		UserAgent:    "my-agent",
		MaxBodyBytes: 100,
	}
	cfg.ApplyDefaults()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "my-agent" {
		t.Errorf("expected my-agent, got %q", cfg.UserAgent)
	}
	if cfg.MaxBodyBytes != 100 {
		t.Errorf("expected 100, got %d", cfg.MaxBodyBytes)
	}
}

func TestHTTP_Unwrap(t *testing.T) {
	env, err := NewHTTP(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Unwrap() == nil {
		t.Error("Unwrap should return non-nil http.Client")
	}
}

func TestFunc_Load(t *testing.T) {
	var seen string
	env := Func(func(ctx context.Context, url string) error {
		seen = url
		return nil
	})
	if err := env.Load(context.Background(), "https://unpkg.com/x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "https://unpkg.com/x" {
		t.Errorf("func received %q", seen)
	}
}
