package resolver

// Context carries the identity of the script being resolved. The loader
// applies version/path defaults before any resolver runs, so resolvers see
// final values.
type Context struct {
	Package string
	Version string
	Path    string
}

// Resolver turns a script identity into a fully qualified URL.
// Implementations must be pure: the same Context always yields the same URL.
type Resolver interface {
	Resolve(rc Context) (string, error)
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(rc Context) (string, error)

// Resolve implements Resolver by calling the function itself.
func (f Func) Resolve(rc Context) (string, error) { return f(rc) }
