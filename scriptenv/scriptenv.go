package scriptenv

import "context"

// Environment executes a script from a URL. Load reports success or failure
// exactly once per call and should honor context cancellation: the loader
// cancels the context of attempts it has abandoned.
type Environment interface {
	Load(ctx context.Context, url string) error
}

// Func adapts an ordinary function to the Environment interface.
type Func func(ctx context.Context, url string) error

// Load implements Environment by calling the function itself.
func (f Func) Load(ctx context.Context, url string) error { return f(ctx, url) }
