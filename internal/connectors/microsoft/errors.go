package microsoft

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error types for Outlook REST API responses.
var (
	// ErrUnauthorised indicates the access token is invalid or expired.
	ErrUnauthorised = errors.New("microsoft: unauthorised")

	// ErrForbidden indicates the user lacks permission for the requested resource.
	ErrForbidden = errors.New("microsoft: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("microsoft: not found")

	// ErrConflict indicates the resource was changed concurrently.
	ErrConflict = errors.New("microsoft: conflict")

	// ErrPreconditionFailed indicates a stale change key.
	ErrPreconditionFailed = errors.New("microsoft: precondition failed")

	// ErrRateLimited indicates the request was throttled by the service.
	ErrRateLimited = errors.New("microsoft: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("microsoft: bad request")

	// ErrServerError indicates a server-side error.
	ErrServerError = errors.New("microsoft: server error")

	// ErrUnexpectedStatus indicates a non-success status with no dedicated sentinel.
	ErrUnexpectedStatus = errors.New("microsoft: unexpected status")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusPreconditionFailed:
		return ErrPreconditionFailed
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		if statusCode >= 300 {
			return ErrUnexpectedStatus
		}
		return nil
	}
}

// IsSuccess checks if the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

// HasBody checks if a successful status code carries a response document.
// Only 200 and 201 responses are decoded; other 2xx codes resolve empty.
func HasBody(statusCode int) bool {
	return statusCode == http.StatusOK || statusCode == http.StatusCreated
}

// IsUnauthorised checks if the status code indicates an authentication failure.
func IsUnauthorised(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRateLimited checks if the status code indicates rate limiting.
func IsRateLimited(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the status code indicates a missing resource.
func IsNotFound(statusCode int) bool {
	return statusCode == http.StatusNotFound
}

// ServiceError is a structured error reported by the remote service.
type ServiceError struct {
	// StatusCode is the HTTP status, zero when unknown.
	StatusCode int
	// Code is the service error code, e.g. "ErrorItemNotFound".
	Code string
	// Message is the human readable description.
	Message string
	// Details holds the raw response header lines.
	Details []string
	// URL is the request address that failed.
	URL string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	var b strings.Builder
	b.WriteString("microsoft: ")
	switch {
	case e.Code != "" && e.Message != "":
		b.WriteString(e.Code + ": " + e.Message)
	case e.Code != "":
		b.WriteString(e.Code)
	case e.Message != "":
		b.WriteString(e.Message)
	default:
		b.WriteString("service error")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	return b.String()
}

// Unwrap maps the error onto the status sentinels so errors.Is works.
func (e *ServiceError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// errorBody is the service error document.
type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	URL     string   `json:"url,omitempty"`
}

type errorEnvelope struct {
	Error *errorBody `json:"error"`
}

// ParseServiceError builds a ServiceError from a failed HTTP response.
// Header lines become the details and url records the request address.
// Bodies that are not error documents become the message verbatim.
func ParseServiceError(statusCode int, body []byte, header http.Header, url string) *ServiceError {
	svcErr := &ServiceError{
		StatusCode: statusCode,
		Details:    headerLines(header),
		URL:        url,
	}

	if parsed, ok := decodeErrorBody(body); ok {
		svcErr.Code = parsed.Code
		svcErr.Message = parsed.Message
		return svcErr
	}

	svcErr.Message = strings.TrimSpace(string(body))
	if svcErr.Message == "" {
		svcErr.Message = http.StatusText(statusCode)
	}
	return svcErr
}

// ParseErrorString decodes an error document carried as plain text.
// It accepts both the {"error": {...}} envelope and a bare {code, message}
// object. The second return is false when s is not an error document.
func ParseErrorString(s string) (*ServiceError, bool) {
	parsed, ok := decodeErrorBody([]byte(s))
	if !ok {
		return nil, false
	}
	return &ServiceError{
		Code:    parsed.Code,
		Message: parsed.Message,
		Details: parsed.Details,
		URL:     parsed.URL,
	}, true
}

func decodeErrorBody(body []byte) (*errorBody, bool) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var env errorEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err == nil && env.Error != nil {
		return env.Error, true
	}

	var bare errorBody
	if err := json.Unmarshal([]byte(trimmed), &bare); err != nil {
		return nil, false
	}
	if bare.Code == "" && bare.Message == "" {
		return nil, false
	}
	return &bare, true
}

func headerLines(header http.Header) []string {
	if len(header) == 0 {
		return nil
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+strings.Join(header[k], ", "))
	}
	return lines
}
