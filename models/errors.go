package models

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when the requested category does not exist
	// or is soft deleted.
	ErrNotFound = errors.New("category not found")

	// ErrDuplicateName is returned when a sibling already carries the name.
	ErrDuplicateName = errors.New("a sibling category with this name already exists")

	// ErrDuplicateSlug signals a slug unique-constraint violation. It is
	// resolved internally by slug reallocation and should not reach callers.
	ErrDuplicateSlug = errors.New("slug is already in use")

	// ErrCycle is returned when a parent change would make a category its
	// own ancestor.
	ErrCycle = errors.New("category cannot become a descendant of itself")

	// ErrHasActiveChildren rejects deleting a category with active children.
	ErrHasActiveChildren = errors.New("category has active child categories")
)

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
