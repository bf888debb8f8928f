package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/cdnkit/errors"
	"github.com/kbukum/cdnkit/util"
)

// FieldError pairs a field path with what is wrong about it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates field errors across checks, so a caller learns
// about every problem in one pass instead of fixing them one at a time.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator { return &Validator{} }

// AddError records a problem with field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the collected field errors.
func (v *Validator) Errors() []FieldError { return v.errors }

// Err combines the collected errors into a single invalid-argument error,
// or returns nil when every check passed.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}
	return errors.New(errors.ErrCodeInvalidArgument, strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Required checks that value is not blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OneOf checks that value is among the allowed spellings. Empty values
// pass; combine with Required when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" || util.Contains(allowed, value) {
		return v
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// URLTemplate checks that pattern looks like a usable CDN URL template:
// http or https, referencing the {package} placeholder somewhere. Empty
// patterns pass so Required stays the only emptiness check.
func (v *Validator) URLTemplate(field, pattern string) *Validator {
	if pattern == "" {
		return v
	}
	if !strings.HasPrefix(pattern, "http://") && !strings.HasPrefix(pattern, "https://") {
		v.AddError(field, "must start with http:// or https://")
		return v
	}
	if !strings.Contains(pattern, "{package}") {
		v.AddError(field, "must reference the {package} placeholder")
	}
	return v
}

// Unique checks that values has no repeated entries.
func (v *Validator) Unique(field string, values ...string) *Validator {
	seen := make([]string, 0, len(values))
	for _, val := range values {
		if util.Contains(seen, val) {
			v.AddError(field, fmt.Sprintf("duplicate entry %q", val))
			continue
		}
		seen = append(seen, val)
	}
	return v
}
