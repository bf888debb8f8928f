// Package validation provides input validation for cdnkit configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// the path configuration structs take; the programmatic Validator covers
// cross-field rules tags cannot express, such as URL template shape and
// duplicate provider names.
//
// # Struct Tag Validation
//
//	type Template struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	    URL  string `mapstructure:"url" validate:"required"`
//	}
//	err := validation.Validate(tpl)
//
// # Programmatic Validation
//
//	v := validation.New()
//	for i, cdn := range cdns {
//	    v.URLTemplate(fmt.Sprintf("cdns[%d].url", i), cdn.URL)
//	}
//	v.Unique("cdns", names...)
//	if err := v.Err(); err != nil {
//	    return err
//	}
//
// Both paths report failures as a single invalid-argument error listing
// every offending field.
package validation
