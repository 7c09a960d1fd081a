// ABOUTME: Error taxonomy for backend calls
// ABOUTME: Maps failures to the message a user should see, if any

package client

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is shown for failures without a backend-provided message
const GenericErrorMessage = "An error occurred."

var (
	// ErrUnauthorized means the backend rejected the token; the session has been cleared
	ErrUnauthorized = errors.New("session expired or not authorized")
	// ErrNetwork means the backend could not be reached
	ErrNetwork = errors.New("network error")
	// ErrInvalidResponse means a response body could not be decoded
	ErrInvalidResponse = errors.New("invalid response from backend")
)

// ErrorResponse is the backend's error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// APIError is a non-2xx response other than 401/403
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: %s", e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// IsUnauthorized reports whether err came from a rejected session
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// UserMessage returns what to show inline for err. Backend messages are shown
// verbatim; unauthorized errors show nothing because the caller navigates to
// login instead; everything else gets a generic message.
func UserMessage(err error) string {
	if err == nil || IsUnauthorized(err) {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}
