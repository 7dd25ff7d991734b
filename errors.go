package ipl

import "errors"

// Common errors returned by buffer construction and filter operations.
// Callers match them with errors.Is.
var (
	// ErrInvalidArgument indicates a nil or empty buffer, or a filter
	// parameter outside its valid range.
	ErrInvalidArgument = errors.New("ipl: invalid argument")

	// ErrTooLarge indicates an operation would require a working
	// allocation beyond the engine's limits.
	ErrTooLarge = errors.New("ipl: allocation too large")

	// ErrUnsupportedFormat indicates a pixel format the engine cannot
	// process.
	ErrUnsupportedFormat = errors.New("ipl: unsupported pixel format")

	// ErrInternal indicates an engine invariant was violated.
	ErrInternal = errors.New("ipl: internal error")
)
