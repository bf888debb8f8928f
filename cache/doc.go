// Package cache tracks script URLs that have already loaded successfully.
//
// Entries are keyed by the final resolved URL, added only after a confirmed
// load, and never expire. Repeat loads of a cached URL short-circuit without
// touching the execution environment.
package cache
