// Package loader orchestrates script loading across an ordered set of CDN
// providers with automatic fallback.
//
//	l, err := loader.New(loader.Config{})
//	if err != nil {
//		return err
//	}
//	url, err := l.Load(ctx, "lodash",
//		loader.WithVersion("4.17.21"),
//		loader.WithPath("lodash.min.js"),
//	)
//
// Each call walks its candidate providers in order: the first successful
// load wins, failed candidates are recorded, and the call errors only when
// every candidate has been tried. Successful URLs are cached so repeated
// loads skip the network.
//
// The package-level functions mirror the instance API on a lazily created
// default loader:
//
//	url, err := loader.LoadLibrary(ctx, "lodash")
package loader
