// Package apierror provides the standardized error responses and the domain
// error taxonomy for the API. All errors returned to clients go through this
// package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.).
package apierror

import "errors"

// Sentinel domain errors. Services return these (wrapped with context via
// fmt.Errorf %w) and the handler layer maps them to HTTP statuses.
var (
	// ErrInsufficientStock means a stock-out delta would drive a product's
	// quantity negative. The whole operation is rejected; nothing is written.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique constraint was violated (duplicate product
	// or category code, duplicate username/email).
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the authenticated user lacks the role or permission
	// required for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials means a login attempt failed. The message is
	// deliberately the same for unknown-user and bad-password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}
