package api

import (
	"errors"
	"fmt"
)

// ErrUserCancelled is returned when the user declines a confirmation.
// Callers abort silently and leave state untouched.
var ErrUserCancelled = errors.New("cancelled by user")

// AuthenticationError means no usable session token was available.
// It is always returned before any network request is made.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "no access token found - user may not be authenticated"
	}
	return "authentication failed: " + e.Reason
}

// NetworkError wraps a transport level failure
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the compliance API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s failed (%d)", e.Method, e.Path, e.StatusCode)
}

// UploadError is a non-2xx response from the storage upload endpoint.
// Body is the response text, possibly empty. Any non-empty body is the message.
type UploadError struct {
	StatusCode int
	Body       string
}

func (e *UploadError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("upload failed (%d)", e.StatusCode)
}

// ValidationError is a client side check that blocked a submission
type ValidationError struct {
	Title   string
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsAuthentication reports whether err is or wraps an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.StatusCode
	}
	return 0
}
