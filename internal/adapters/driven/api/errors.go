package api

import (
	"encoding/json"
	"fmt"
)

// StatusError is a non-2xx API response that does not map to a sentinel
// domain error.
type StatusError struct {
	// StatusCode is the HTTP status.
	StatusCode int

	// Message is the server-provided error message, when parseable.
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// newStatusError builds a StatusError, extracting the server message from
// common error body shapes.
func newStatusError(status int, body []byte) *StatusError {
	e := &StatusError{StatusCode: status}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			e.Message = parsed.Message
		case parsed.Error != "":
			e.Message = parsed.Error
		case parsed.Detail != "":
			e.Message = parsed.Detail
		}
	}
	return e
}
