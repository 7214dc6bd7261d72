package files

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents an invalid tool argument.
type ValidationError struct {
	Field   string // Argument that failed validation
	Value   string // Invalid value
	Message string // Error message
	Hint    string // Helpful hint for fixing the error
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve.Hint != "" {
		return fmt.Sprintf("%s: %s (value: %q). %s", ve.Field, ve.Message, ve.Value, ve.Hint)
	}
	return fmt.Sprintf("%s: %s (value: %q)", ve.Field, ve.Message, ve.Value)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add appends a validation error.
func (ve *ValidationErrors) Add(field, value, message, hint string) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Hint:    hint,
	})
}

// HasErrors returns true if there are validation errors.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Err returns the collected errors, or nil when there are none.
func (ve ValidationErrors) Err() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (ve *ValidationErrors) requirePath(field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.Add(field, value, "path is required", "Pass a path relative to the workspace root or an absolute path")
		return
	}
	if strings.ContainsRune(value, 0) {
		ve.Add(field, value, "path contains a NUL byte", "")
	}
}

func (ve *ValidationErrors) checkPattern(field, pattern string) {
	if pattern == "" {
		return
	}
	if _, err := glob.Compile(pattern, '/'); err != nil {
		ve.Add(field, pattern, "invalid glob pattern", "Use shell-style patterns such as *.java, **/*.yml or {*.yml,*.yaml}")
	}
}
