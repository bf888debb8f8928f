// Package errors provides unified error handling for the cdnkit library.
//
// It implements structured error types with machine-readable codes and
// retryable detection so callers can tell recoverable per-provider load
// failures apart from caller mistakes and terminal exhaustion.
//
// # Usage
//
//	err := errors.LoadFailed("jsdelivr", url, cause)
//	if appErr, ok := errors.AsAppError(err); ok && appErr.Retryable {
//	    // try the next provider
//	}
package errors
