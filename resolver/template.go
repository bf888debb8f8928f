package resolver

import (
	"fmt"
	"strings"
)

// Placeholder tokens recognized in template patterns.
const (
	TokenPackage = "{package}"
	TokenVersion = "{version}"
	TokenPath    = "{path}"
)

// Template is a pattern-based resolver. The pattern may reference the
// {package}, {version} and {path} tokens. When OmitEmptyPath is set and the
// context path is empty, the path segment and its leading slash are dropped
// from the produced URL.
type Template struct {
	Pattern       string
	OmitEmptyPath bool
}

// Resolve substitutes the context into the pattern.
func (t Template) Resolve(rc Context) (string, error) {
	if strings.TrimSpace(t.Pattern) == "" {
		return "", fmt.Errorf("template pattern is empty")
	}
	pattern := t.Pattern
	if t.OmitEmptyPath && rc.Path == "" {
		pattern = strings.ReplaceAll(pattern, "/"+TokenPath, "")
		pattern = strings.ReplaceAll(pattern, TokenPath, "")
	}
	url := strings.NewReplacer(
		TokenPackage, rc.Package,
		TokenVersion, rc.Version,
		TokenPath, rc.Path,
	).Replace(pattern)
	return url, nil
}
