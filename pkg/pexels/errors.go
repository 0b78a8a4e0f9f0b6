package pexels

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents a terminal, non-retryable failure from the Pexels API:
// any non-2xx status that is not eligible for retry, or a retryable status
// whose retry budget has been exhausted. The structured fields are carried
// end-to-end and serialized only at the presentation boundary.
type APIError struct {
	StatusCode int    `json:"code"                 yaml:"code"`
	Reason     string `json:"reason"               yaml:"reason"`
	RequestID  string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Type       string `json:"type,omitempty"       yaml:"type,omitempty"`
	Hint       string `json:"hint,omitempty"       yaml:"hint,omitempty"`
	Body       string `json:"body,omitempty"       yaml:"body,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s (code: %d)", e.Reason, e.StatusCode)
	if e.Type != "" {
		msg += ": " + e.Type
	}

	if e.Hint != "" {
		msg += ": " + e.Hint
	}

	if e.RequestID != "" {
		msg += " (request id: " + e.RequestID + ")"
	}

	return msg
}

// TransportError represents a connection-level failure (DNS, dial, TLS,
// timeout) after the retry budget is exhausted. The message is redacted
// before construction and never contains credential material.
type TransportError struct {
	Message string `json:"error" yaml:"error"`
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return e.Message
}

// Static errors for wrapping with context.
var (
	ErrTokenRequired     = errors.New("token not provided; use 'pexels auth login' or set PEXELS_TOKEN")
	ErrInvalidHost       = errors.New("invalid API host")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// NewAPIError builds an APIError from a terminal HTTP response. The body is
// inspected for the upstream's structured {"type": ..., "hint": ...} error
// shape; unparseable bodies are carried as raw text.
func NewAPIError(statusCode int, requestID string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Reason:     reasonPhrase(statusCode),
		RequestID:  requestID,
	}

	text := strings.TrimSpace(string(body))
	if text != "" {
		apiErr.Body = text
	}

	var structured struct {
		Type string `json:"type"`
		Hint string `json:"hint"`
	}

	if err := json.Unmarshal(body, &structured); err == nil {
		apiErr.Type = structured.Type
		apiErr.Hint = structured.Hint
	}

	return apiErr
}

func reasonPhrase(statusCode int) string {
	if reason := http.StatusText(statusCode); reason != "" {
		return reason
	}

	return "error"
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsRateLimited checks if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}

// IsUnauthorized checks if the error is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized ||
			apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// ErrorPayload converts an error into the structured mapping emitted at the
// presentation boundary. Typed API and transport errors expose their fields
// directly; everything else becomes {"error": <text>}.
func ErrorPayload(err error) map[string]interface{} {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		payload := map[string]interface{}{
			"code":   apiErr.StatusCode,
			"reason": apiErr.Reason,
		}
		if apiErr.RequestID != "" {
			payload["request_id"] = apiErr.RequestID
		}

		if apiErr.Type != "" {
			payload["type"] = apiErr.Type
		}

		if apiErr.Hint != "" {
			payload["hint"] = apiErr.Hint
		}

		if apiErr.Body != "" {
			payload["body"] = apiErr.Body
		}

		return payload
	}

	return map[string]interface{}{"error": err.Error()}
}
