package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// AppError is the error type returned by every cdnkit operation. The
// code tells callers what class of failure happened; Details carries
// the specifics a caller may want to inspect programmatically.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail records one detail entry and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	e.ensureDetails()[key] = value
	return e
}

// WithDetails merges the given entries into the details and returns the
// receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	dst := e.ensureDetails()
	for k, v := range details {
		dst[k] = v
	}
	return e
}

func (e *AppError) ensureDetails() map[string]any {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	return e.Details
}

// New builds an AppError with the retryability implied by the code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// InvalidArgument reports a caller-supplied argument that cannot be
// used. field names the offending argument and may be empty.
func InvalidArgument(field, reason string) *AppError {
	err := New(ErrCodeInvalidArgument, fmt.Sprintf("Invalid argument: %s", reason))
	if field != "" {
		err.WithDetail("field", field)
	}
	return err
}

// Configuration reports a loader with nothing to attempt.
func Configuration(reason string) *AppError {
	return New(ErrCodeConfiguration, reason)
}

// ResolverFailed reports a resolver that could not produce a URL.
func ResolverFailed(provider string, cause error) *AppError {
	return New(ErrCodeResolver, fmt.Sprintf("Provider %q failed to resolve a URL.", provider)).
		WithDetail("provider", provider).
		WithCause(cause)
}

// LoadFailed reports an environment that could not load the URL.
func LoadFailed(provider, url string, cause error) *AppError {
	return New(ErrCodeLoadFailure, fmt.Sprintf("Loading from provider %q failed.", provider)).
		WithDetails(map[string]any{"provider": provider, "url": url}).
		WithCause(cause)
}

// LoadTimedOut reports a load that did not signal inside its window.
func LoadTimedOut(provider, url string, timeout time.Duration) *AppError {
	return New(ErrCodeLoadTimeout, fmt.Sprintf("Loading from provider %q timed out after %s.", provider, timeout)).
		WithDetails(map[string]any{"provider": provider, "url": url, "timeout": timeout.String()})
}

// AllProvidersFailed reports an exhausted candidate list.
func AllProvidersFailed(pkg, version string, candidates []string) *AppError {
	msg := fmt.Sprintf("All providers failed to load %s@%s (tried: %s).",
		pkg, version, strings.Join(candidates, ", "))
	return New(ErrCodeAllProvidersFailed, msg).WithDetails(map[string]any{
		"package":    pkg,
		"version":    version,
		"candidates": candidates,
	})
}

// Internal reports an unexpected error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// Wrap normalizes an arbitrary error into an AppError. Nil stays nil,
// an error that already is (or wraps) an AppError is returned as is,
// and anything else becomes an internal error.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// AsAppError extracts the AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError reports whether err's chain contains an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// CodeOf returns the code carried by err, or the empty code for errors
// outside the AppError chain.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}
