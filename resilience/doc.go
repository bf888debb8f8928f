// Package resilience provides primitives for racing operations against
// deadlines.
//
// Timeout runs a function under a deadline derived from the caller's
// context and reports whichever settles first, the function's result or
// the expiry:
//
//	url, err := resilience.Timeout(ctx, 10*time.Second, func(ctx context.Context) (string, error) {
//	    return fetchScript(ctx, candidate)
//	})
//	if errors.Is(err, context.DeadlineExceeded) {
//	    // the attempt timed out; the caller may move on to the next candidate
//	}
//
// TimeoutFunc is the error-only convenience form.
package resilience
