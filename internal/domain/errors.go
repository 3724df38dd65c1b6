package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidComponent indicates a catalog record that cannot be indexed.
var ErrInvalidComponent = errors.New("invalid component")

// ValidationError describes a malformed catalog record found while building an index.
type ValidationError struct {
	// Index is the position of the offending record in the catalog.
	Index int
	// ID is the record ID, empty when the ID itself is missing.
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s at position %d: %s", ErrInvalidComponent, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s %q at position %d: %s", ErrInvalidComponent, e.ID, e.Index, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidComponent).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidComponent
}
