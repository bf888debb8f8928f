package util

// Contains reports whether val occurs in items.
func Contains[T comparable](items []T, val T) bool {
	for i := range items {
		if items[i] == val {
			return true
		}
	}
	return false
}

// Coalesce returns the first non-zero value among its arguments, or the
// zero value when there is none.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
