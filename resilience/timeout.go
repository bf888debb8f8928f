package resilience

import (
	"context"
	"time"
)

// Timeout runs fn under a deadline derived from ctx and returns whichever
// settles first: fn's result or expiry. fn receives a child context that is
// cancelled when the deadline expires, when ctx is cancelled, or when
// Timeout returns, so a well-behaved fn stops work once abandoned. A result
// arriving after expiry is discarded.
//
// On expiry Timeout returns the child context's error: callers distinguish
// a deadline from a parent cancellation with errors.Is against
// context.DeadlineExceeded and context.Canceled. A non-positive d applies
// no deadline; ctx cancellation still applies.
func Timeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	var attemptCtx context.Context
	var cancel context.CancelFunc
	if d > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, d)
	} else {
		attemptCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type result struct {
		value T
		err   error
	}

	// Buffered so an abandoned fn can deliver its result and exit.
	ch := make(chan result, 1)
	go func() {
		value, err := fn(attemptCtx)
		ch <- result{value: value, err: err}
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-attemptCtx.Done():
		return zero, attemptCtx.Err()
	}
}

// TimeoutFunc runs a function that returns only an error under a deadline.
func TimeoutFunc(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	_, err := Timeout(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
