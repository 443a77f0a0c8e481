package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for unified post operations
var (
	// ErrNotFound is returned when a post id resolves in neither source
	ErrNotFound = errors.New("post not found")

	// ErrNotAuthenticated is returned when a write is attempted anonymously
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when mutating a post the actor doesn't own,
	// or when mutating a remote catalog post at all
	ErrForbidden = errors.New("operation not permitted on this post")

	// ErrUpstreamUnavailable is returned when the remote catalog fails or
	// times out; aggregate reads fail as a whole rather than returning a
	// silent partial merge
	ErrUpstreamUnavailable = errors.New("remote catalog unavailable")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
