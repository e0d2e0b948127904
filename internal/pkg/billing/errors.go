package billing

import "fmt"

// ValidationError marks a request with missing or malformed fields. The API
// layer translates it to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// NotFoundError marks a lookup for an unknown resource. Translated to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// OwnershipError marks a resource that belongs to a different student than
// the one acting on it. Translated to 403.
type OwnershipError struct {
	Resource string
	ID       string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s %s belongs to a different student", e.Resource, e.ID)
}
