package apierror

import "net/http"

const (
	// TagInvalidAuth is the tag of authentication errors.
	TagInvalidAuth = "invalid-auth"
	// TagForbidden is the tag of authorization errors.
	TagForbidden = "forbidden"
	// TagInvalidParameters is the tag of malformed requests.
	TagInvalidParameters = "invalid-parameters"
	// TagNotFound is the tag of missing records.
	TagNotFound = "not-found"
)

type (
	// An APIError represents the error format rendered by the mock API server.
	APIError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*APIError); ok && apierr.HTTPCode != 0 {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new APIError with the given message.
func New(message string) *APIError {
	return &APIError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new APIError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *APIError {
	return &APIError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Unauthorized returns the error rendered when the credentials are missing or invalid.
func Unauthorized(message string) *APIError {
	return NewWithTagCode(http.StatusUnauthorized, TagInvalidAuth, message)
}

// Forbidden returns the error rendered when the current user is not allowed to perform the action.
func Forbidden(message string) *APIError {
	return NewWithTagCode(http.StatusForbidden, TagForbidden, message)
}

// Error implements error interface.
func (e *APIError) Error() string {
	return e.FieldError.Message
}
