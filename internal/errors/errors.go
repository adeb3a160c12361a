package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFieldsRequired is returned when a request is missing required fields.
	ErrFieldsRequired = errors.New("please fill in all fields")
	// ErrInvalidEmail is returned when an email fails syntax validation.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is the single generic login failure. It must not
	// distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("email or password incorrect")
	// ErrSessionInvalid is returned when a session cannot be resolved to an
	// active user. Callers treat it as anonymous, never as a failure.
	ErrSessionInvalid = errors.New("session is no longer valid")
)

// ValidationError carries a user-facing message for an input rule failure,
// such as a password strength violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError wraps a user-facing validation message as an error.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPError carries an HTTP status alongside a domain error.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// IsExpected reports whether err is a validation, credential, or conflict
// failure the client contract answers with HTTP 200 and success=false.
func IsExpected(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	switch {
	case errors.Is(err, ErrFieldsRequired),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidCredentials):
		return true
	}
	return false
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unexpected is a
// persistence or internal failure and must not leak detail.
func MapErrorToHTTP(err error) *HTTPError {
	if IsExpected(err) {
		return NewHTTPError(http.StatusOK, err.Error())
	}
	return NewHTTPError(http.StatusInternalServerError, "something went wrong, please try again")
}
