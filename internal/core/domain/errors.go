package domain

import "errors"

// Common domain errors.
var (
	// ErrAuthRequired indicates no usable token could be obtained without user interaction.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotConfigured indicates a required setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrInvalidInput indicates caller-supplied input failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a stored record does not exist.
	ErrNotFound = errors.New("not found")
)
