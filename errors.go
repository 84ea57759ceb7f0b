package offmesh

import "errors"

// Common errors used throughout the offmesh package
var (
	// ErrReadFile indicates a document could not be read. Parse failures are never wrapped with it.
	ErrReadFile = errors.New("failed to read file")

	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
)
