package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/cdnkit/scriptenv"
)

// Env is a scripted script environment for loader tests. Each URL gets an
// outcome up front, loads answer from that script, and every request is
// recorded in order. Use NewEnv; the zero value has no script table.
type Env struct {
	mu       sync.Mutex
	outcomes map[string]outcome
	requests []string
}

var _ scriptenv.Environment = (*Env)(nil)

type outcome struct {
	err   error
	delay time.Duration
}

// NewEnv creates an empty scripted environment. Loading a URL with no
// scripted outcome fails, which keeps typos in tests loud.
func NewEnv() *Env {
	return &Env{outcomes: make(map[string]outcome)}
}

// Succeed scripts url to load successfully.
func (e *Env) Succeed(url string) *Env {
	return e.script(url, outcome{})
}

// Fail scripts url to fail with err.
func (e *Env) Fail(url string, err error) *Env {
	return e.script(url, outcome{err: err})
}

// Block scripts url to wait for d before succeeding. Context cancellation
// cuts the wait short and the load reports the context error.
func (e *Env) Block(url string, d time.Duration) *Env {
	return e.script(url, outcome{delay: d})
}

func (e *Env) script(url string, oc outcome) *Env {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outcomes[url] = oc
	return e
}

// Load implements scriptenv.Environment.
func (e *Env) Load(ctx context.Context, url string) error {
	e.mu.Lock()
	e.requests = append(e.requests, url)
	oc, ok := e.outcomes[url]
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("testutil: no scripted outcome for %s", url)
	}
	if oc.delay > 0 {
		timer := time.NewTimer(oc.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return oc.err
}

// Requests returns the loaded URLs in request order.
func (e *Env) Requests() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.requests))
	copy(out, e.requests)
	return out
}

// Reset clears the recorded requests, keeping the scripted outcomes.
func (e *Env) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = nil
}
