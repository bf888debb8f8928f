// Package registry manages the named CDN providers consulted during a load.
//
// Providers are kept in registration order, which is the fallback order used
// when a caller does not override it. Re-registering an existing name swaps
// its resolver in place without moving its position.
//
// # Usage
//
//	reg := registry.NewDefault()
//	reg.Register("mirror", resolver.Template{
//	    Pattern: "https://mirror.example.com/{package}@{version}/{path}",
//	})
//	names := reg.Names() // [jsdelivr unpkg cdnjs skypack mirror]
package registry
