package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Caller errors
const (
	// ErrCodeInvalidArgument indicates a caller-supplied argument is unusable.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeConfiguration indicates there are no providers to attempt.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// Per-candidate errors (recorded during fallback, never surfaced directly)
const (
	// ErrCodeResolver indicates a provider resolver failed to produce a URL.
	ErrCodeResolver ErrorCode = "RESOLVER_ERROR"
	// ErrCodeLoadFailure indicates the environment reported a failed load.
	ErrCodeLoadFailure ErrorCode = "LOAD_FAILURE"
	// ErrCodeLoadTimeout indicates a load did not signal within its window.
	ErrCodeLoadTimeout ErrorCode = "LOAD_TIMEOUT"
)

// Terminal errors
const (
	// ErrCodeAllProvidersFailed indicates every candidate was attempted and none succeeded.
	ErrCodeAllProvidersFailed ErrorCode = "ALL_PROVIDERS_FAILED"
	// ErrCodeInternal indicates an unexpected error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeLoadFailure: true,
	ErrCodeLoadTimeout: true,
	ErrCodeResolver:    false,
	ErrCodeInternal:    false,
}

// IsRetryableCode returns true if the error code indicates that another
// provider may still serve the request.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
