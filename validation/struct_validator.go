package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/cdnkit/errors"
)

var (
	structOnce sync.Once
	structVal   *validator.Validate
)

// structValidator returns the process-wide validator instance.
func structValidator() *validator.Validate {
	structOnce.Do(func() {
		structVal = validator.New(validator.WithRequiredStructEnabled())

		// Configuration structs carry mapstructure tags, so error messages
		// use those names instead of Go field names.
		structVal.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return snakeCase(fld.Name)
			}
			return name
		})
	})
	return structVal
}

// tagMessages maps validator tags to human-readable phrasings. %s stands
// for the tag parameter.
var tagMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gt":       "must be greater than %s",
	"gte":      "must be at least %s",
	"lte":      "must be at most %s",
	"url":      "must be a valid URL",
	"oneof":    "must be one of: %s",
	"dive":     "contains an invalid element",
}

// Validate checks a struct against its `validate:"..."` tags and returns
// an invalid-argument error naming every failing field, or nil.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.New(errors.ErrCodeInvalidArgument, "validation failed")
	}

	fields := make([]FieldError, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fe := FieldError{Field: snakeCase(e.Field()), Message: describe(e)}
		fields = append(fields, fe)
		messages = append(messages, fe.String())
	}

	return errors.New(errors.ErrCodeInvalidArgument, strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}

// describe renders one tag failure as a sentence fragment.
func describe(e validator.FieldError) string {
	tmpl, ok := tagMessages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, e.Param())
	}
	return tmpl
}

// snakeCase converts a Go field name to snake_case.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
