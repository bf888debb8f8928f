// Package testutil provides test doubles for exercising the loader: a
// scripted in-memory script environment and a fake CDN server backed by
// httptest.
//
// Env scripts outcomes per URL and records the request order:
//
//	env := testutil.NewEnv().
//		Fail("https://cdn.jsdelivr.net/npm/lodash@latest/index.js", someErr).
//		Succeed("https://unpkg.com/lodash@latest/index.js")
//
// Server fakes a CDN over real HTTP:
//
//	srv := testutil.NewServer().Script("/npm/lodash@latest/index.js", "...")
//	defer srv.Close()
package testutil
