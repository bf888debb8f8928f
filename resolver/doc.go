// Package resolver turns script identities into provider-specific URLs.
//
// A Resolver is a pure mapping from (package, version, path) to a fully
// qualified URL. The package ships a pattern-based Template kind covering
// the public CDN providers and a Func adapter for custom strategies.
//
// # Usage
//
//	url, err := resolver.UnpkgTemplate.Resolve(resolver.Context{
//	    Package: "lodash",
//	    Version: "4.17.21",
//	    Path:    "lodash.min.js",
//	})
//	// url == "https://unpkg.com/lodash@4.17.21/lodash.min.js"
package resolver
