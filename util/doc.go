// Package util provides small generic helpers shared across cdnkit.
//
// It includes slice and zero-value helpers plus parsing and masking
// utilities used by the configuration layer.
package util
