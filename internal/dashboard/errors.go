package dashboard

import "errors"

// Dashboard errors.
var (
	// ErrNotFound is returned when a single-entity view has nothing to show.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a view parameter is outside what the
	// indexing API serves.
	ErrInvalidInput = errors.New("invalid input")
)
