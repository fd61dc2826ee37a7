package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Access control errors
	ErrAccessDenied    = errors.New("access denied")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid token")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	ObjectNameKey = "object_name"
	ScopeKey      = "scope"
)
