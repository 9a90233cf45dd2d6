package microsoft

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   error
	}{
		{
			name:       "unauthorised",
			statusCode: http.StatusUnauthorized,
			expected:   ErrUnauthorised,
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			expected:   ErrForbidden,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			expected:   ErrNotFound,
		},
		{
			name:       "conflict",
			statusCode: http.StatusConflict,
			expected:   ErrConflict,
		},
		{
			name:       "stale change key",
			statusCode: http.StatusPreconditionFailed,
			expected:   ErrPreconditionFailed,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			expected:   ErrRateLimited,
		},
		{
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			expected:   ErrBadRequest,
		},
		{
			name:       "internal server error",
			statusCode: http.StatusInternalServerError,
			expected:   ErrServerError,
		},
		{
			name:       "method not allowed",
			statusCode: http.StatusMethodNotAllowed,
			expected:   ErrUnexpectedStatus,
		},
		{
			name:       "success returns nil",
			statusCode: http.StatusOK,
			expected:   nil,
		},
		{
			name:       "no content returns nil",
			statusCode: http.StatusNoContent,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapError(tt.statusCode)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsSuccess(http.StatusAccepted))
	assert.False(t, IsSuccess(http.StatusMultipleChoices))
	assert.True(t, HasBody(http.StatusOK))
	assert.True(t, HasBody(http.StatusCreated))
	assert.False(t, HasBody(http.StatusAccepted))
	assert.True(t, IsUnauthorised(http.StatusUnauthorized))
	assert.False(t, IsUnauthorised(http.StatusForbidden))
	assert.True(t, IsRateLimited(http.StatusTooManyRequests))
	assert.True(t, IsNotFound(http.StatusNotFound))
}

func TestParseServiceError_Envelope(t *testing.T) {
	header := http.Header{}
	header.Set("Request-Id", "abc")
	header.Set("Content-Type", "application/json")
	body := []byte(`{"error":{"code":"ErrorItemNotFound","message":"The specified object was not found in the store."}}`)

	err := ParseServiceError(http.StatusNotFound, body, header, "https://svc/Me/Messages/x")

	assert.Equal(t, "ErrorItemNotFound", err.Code)
	assert.Equal(t, "The specified object was not found in the store.", err.Message)
	assert.Equal(t, "https://svc/Me/Messages/x", err.URL)
	assert.Equal(t, []string{"Content-Type: application/json", "Request-Id: abc"}, err.Details)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "ErrorItemNotFound")
	assert.Contains(t, err.Error(), "status 404")
}

func TestParseServiceError_PlainBody(t *testing.T) {
	err := ParseServiceError(http.StatusBadGateway, []byte("upstream unavailable\n"), nil, "u")

	assert.Empty(t, err.Code)
	assert.Equal(t, "upstream unavailable", err.Message)
	assert.Nil(t, err.Details)
	assert.True(t, errors.Is(err, ErrServerError))
}

func TestParseServiceError_EmptyBody(t *testing.T) {
	err := ParseServiceError(http.StatusForbidden, nil, nil, "u")

	assert.Equal(t, "Forbidden", err.Message)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestParseErrorString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		wantCode string
	}{
		{name: "envelope", input: `{"error":{"code":"A","message":"m"}}`, ok: true, wantCode: "A"},
		{name: "bare object", input: `{"code":"B","message":"m","url":"u"}`, ok: true, wantCode: "B"},
		{name: "unrelated object", input: `{"value":[]}`, ok: false},
		{name: "plain text", input: "connection reset", ok: false},
		{name: "broken json", input: `{"code":`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr, ok := ParseErrorString(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, svcErr)
				assert.Equal(t, tt.wantCode, svcErr.Code)
			}
		})
	}
}

func TestServiceError_ErrorFormats(t *testing.T) {
	assert.Equal(t, "microsoft: service error", (&ServiceError{}).Error())
	assert.Equal(t, "microsoft: X", (&ServiceError{Code: "X"}).Error())
	assert.Equal(t, "microsoft: msg", (&ServiceError{Message: "msg"}).Error())
	assert.Nil(t, (&ServiceError{}).Unwrap())
}
