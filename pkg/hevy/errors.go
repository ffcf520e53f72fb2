package hevy

import (
	"errors"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrInvalidPage       = errors.New("page must be a positive integer greater than 0")
	ErrInvalidPageSize   = errors.New("page size must be a positive integer greater than 0 and no more than 10")
	ErrWorkoutIDRequired = errors.New("workout ID is required")
	ErrMissingCount      = errors.New("response did not contain a workout count")
)

// FieldError is a single schema violation. Path uses dotted wire names with
// numeric list indexes, e.g. "exercises.0.sets.2.weight_kg".
type FieldError struct {
	Path    string `json:"path"    yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// String renders the violation as "path: message".
func (f FieldError) String() string {
	path := f.Path
	if path == "" {
		path = "value"
	}

	return path + ": " + f.Message
}

// ValidationError is returned when a create candidate fails schema
// validation. Fields holds every violation found, in order.
type ValidationError struct {
	Fields []FieldError `json:"fields" yaml:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		lines = append(lines, field.String())
	}

	return "validation failed:\n" + strings.Join(lines, "\n")
}

// Paths returns the path of every violation, in order.
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		paths = append(paths, field.Path)
	}

	return paths
}

// RequestError covers input rejected locally before any network call
// (StatusCode is 0) and requests the API rejected (StatusCode is the HTTP
// status). Message is the human-readable diagnostic.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}

	return "API request failed: " + e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError builds a locally detected RequestError from a sentinel.
func NewRequestError(err error) *RequestError {
	return &RequestError{Message: err.Error(), Err: err}
}

// AuthenticationError is returned when the API rejects the credential
// (HTTP 401). It carries no payload.
type AuthenticationError struct{}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return "API request failed: invalid API key"
}

// IsValidationError checks if the error is a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

// IsRequestError checks if the error is a RequestError.
func IsRequestError(err error) bool {
	var requestErr *RequestError

	return errors.As(err, &requestErr)
}

// IsAuthenticationError checks if the error is an AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError

	return errors.As(err, &authErr)
}

// IsNotFound checks if the error is a RequestError for an HTTP 404.
func IsNotFound(err error) bool {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.StatusCode == http.StatusNotFound
	}

	return false
}

// StatusCode returns the HTTP status attached to err, 401 for an
// AuthenticationError, or 0 when the error never reached the API.
func StatusCode(err error) int {
	if IsAuthenticationError(err) {
		return http.StatusUnauthorized
	}

	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.StatusCode
	}

	return 0
}
