package services

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError carries per-field problems for a 400 response,
// as a mapping from field name to a list of messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

// fieldError builds a ValidationError for a single field.
func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// asValidationError converts an ozzo validation result into a
// ValidationError. Non-validation errors pass through unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	fields := make(map[string][]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = []string{ferr.Error()}
	}
	return &ValidationError{Fields: fields}
}
