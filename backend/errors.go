package backend

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// APIError is an HTTP error response from the backend. The message is what
// the UI shows, so extraction follows a fixed precedence: the body's
// "detail" field, then "message", then a line synthesized from the status,
// then a generic fallback when the body is not even JSON.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// UnreachableError means the request never produced an HTTP response:
// connection refused, DNS failure, timeout. It is a different failure class
// from APIError and the UI wording must reflect that.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("cannot reach the forecast service at %s - check that the backend is running", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	var parsed errorBody
	if err := sonic.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return &APIError{StatusCode: statusCode, Message: parsed.Detail}
		}
		if parsed.Message != "" {
			return &APIError{StatusCode: statusCode, Message: parsed.Message}
		}
	}
	if reason := http.StatusText(statusCode); reason != "" {
		return &APIError{StatusCode: statusCode, Message: fmt.Sprintf("backend returned %d %s", statusCode, reason)}
	}
	return &APIError{StatusCode: statusCode, Message: "request failed"}
}
