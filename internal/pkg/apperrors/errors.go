package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrSemesterNotFound      = errors.New("semester not found")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrAdminNotFound         = errors.New("admin not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrMissingRequiredField = errors.New("missing required field")
	ErrValidationFailed     = errors.New("validation failed")
	ErrBadRequest           = errors.New("bad request")
)

// Submission pipeline errors
var (
	ErrUpstreamUpload    = errors.New("upstream upload failed")
	ErrPersistenceFailed = errors.New("persistence failed")
)

// NewNotFoundError creates a resource-not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewMissingFieldError reports an absent mandatory request field.
func NewMissingFieldError(field string) error {
	return &CustomError{
		Err:     ErrMissingRequiredField,
		Message: field + " is required",
		Field:   field,
	}
}

// NewUpstreamError wraps an upstream upload failure with detail that is
// logged server-side but never returned to the client verbatim.
func NewUpstreamError(detail string) error {
	return &CustomError{
		Err:     ErrUpstreamUpload,
		Message: detail,
	}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}
