package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error without cause",
			err: &Error{
				Code:    CodeValidation,
				Message: "invalid email address",
			},
			want: "VAL_001: invalid email address",
		},
		{
			name: "error with cause",
			err: &Error{
				Code:    CodeInternalDatabase,
				Message: "failed to fetch user",
				Cause:   errors.New("connection refused"),
			},
			want: "INT_002: failed to fetch user: connection refused",
		},
		{
			name: "error with empty message",
			err: &Error{
				Code:    CodeInternal,
				Message: "",
			},
			want: "INT_001: ",
		},
		{
			name: "error with nested structured cause",
			err: &Error{
				Code:    CodeInternal,
				Message: "operation failed",
				Cause: &Error{
					Code:    CodeTimeout,
					Message: "database timeout",
				},
			},
			want: "INT_001: operation failed: TIMEOUT_001: database timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("underlying error")
	err := &Error{
		Code:    CodeInternal,
		Message: "operation failed",
		Cause:   cause,
	}

	assert.Equal(t, cause, err.Unwrap())

	errNoCause := &Error{
		Code:    CodeValidation,
		Message: "invalid input",
	}

	assert.Nil(t, errNoCause.Unwrap())
}

func TestError_Unwrap_ErrorsIs(t *testing.T) {
	t.Parallel()
	cause := errors.New("specific error")
	err := &Error{
		Code:    CodeInternal,
		Message: "wrapper",
		Cause:   cause,
	}

	assert.True(t, errors.Is(err, cause), "errors.Is should find the cause in the error chain")
}

func TestError_Unwrap_ErrorsAs(t *testing.T) {
	t.Parallel()
	innerErr := &Error{
		Code:    CodeTimeout,
		Message: "timeout",
	}
	outerErr := &Error{
		Code:    CodeInternal,
		Message: "wrapper",
		Cause:   innerErr,
	}

	var target *Error
	require.True(t, errors.As(outerErr, &target), "errors.As should find *Error in chain")
	assert.Equal(t, CodeInternal, target.Code)
}

func TestError_Category(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "VAL", New(CodeValidation, "x").Category())
	assert.Equal(t, "TIMEOUT", New(CodeTimeoutDatabase, "x").Category())
	assert.Equal(t, "UNKNOWN", (&Error{Code: "UNKNOWN_001"}).Category())
}

func TestError_HTTPStatus(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code Code
		want int
	}{
		{"validation", CodeValidation, http.StatusBadRequest},
		{"validation format", CodeValidationFormat, http.StatusBadRequest},
		{"authentication", CodeAuthentication, http.StatusUnauthorized},
		{"authorization", CodeAuthorization, http.StatusForbidden},
		{"not found", CodeNotFound, http.StatusNotFound},
		{"conflict", CodeConflict, http.StatusConflict},
		{"internal", CodeInternal, http.StatusInternalServerError},
		{"circular cause", CodeInternalCircularCause, http.StatusInternalServerError},
		{"unavailable", CodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", CodeTimeout, http.StatusGatewayTimeout},
		{"unknown category", Code("UNKNOWN_001"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := &Error{Code: tt.code, Message: "test"}
			assert.Equal(t, tt.want, err.HTTPStatus(), "Error.HTTPStatus() for %v", tt.code)
		})
	}
}

func TestError_WithRetryable(t *testing.T) {
	t.Parallel()
	original := New(CodeConflict, "serialization failure")
	require.False(t, original.Retryable)

	modified := original.WithRetryable(true)

	assert.False(t, original.Retryable, "WithRetryable modified the original error")
	assert.True(t, modified.Retryable)
	assert.Equal(t, original.Code, modified.Code)
	assert.Equal(t, original.Message, modified.Message)
}

func TestError_WithDetails(t *testing.T) {
	t.Parallel()
	original := &Error{
		Code:    CodeValidation,
		Message: "validation failed",
		Details: map[string]any{"field": "email"},
	}

	modified := original.WithDetails(map[string]any{"reason": "invalid format"})

	assert.NotContains(t, original.Details, "reason", "WithDetails modified the original error")
	assert.Equal(t, "email", modified.Details["field"], "WithDetails did not preserve existing details")
	assert.Equal(t, "invalid format", modified.Details["reason"], "WithDetails did not add new details")
	assert.Equal(t, original.Code, modified.Code)
	assert.Equal(t, original.Message, modified.Message)
}

func TestError_WithDetail_Chaining(t *testing.T) {
	t.Parallel()
	err := New(CodeValidation, "validation failed").
		WithDetail("field", "email").
		WithDetail("reason", "invalid format").
		WithDetail("value", "not-an-email")

	assert.Equal(t, "email", err.Details["field"])
	assert.Equal(t, "invalid format", err.Details["reason"])
	assert.Equal(t, "not-an-email", err.Details["value"])
}

func TestError_Format(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *Error
		format   string
		contains []string
	}{
		{
			name: "standard format %v",
			err: &Error{
				Code:    CodeValidation,
				Message: "invalid input",
			},
			format:   "%v",
			contains: []string{"VAL_001", "invalid input"},
		},
		{
			name: "detailed format %+v",
			err: &Error{
				Code:      CodeTimeout,
				Message:   "deadline exceeded",
				Retryable: true,
			},
			format:   "%+v",
			contains: []string{"Error{", "Code:", "TIMEOUT_001", "Message:", "Retryable: true", "}"},
		},
		{
			name: "detailed format %+v with cause",
			err: &Error{
				Code:    CodeInternal,
				Message: "operation failed",
				Cause:   errors.New("underlying"),
			},
			format:   "%+v",
			contains: []string{"Error{", "Cause:", "underlying", "}"},
		},
		{
			name: "string format %s",
			err: &Error{
				Code:    CodeNotFound,
				Message: "user not found",
			},
			format:   "%s",
			contains: []string{"NF_001", "user not found"},
		},
		{
			name: "quoted format %q",
			err: &Error{
				Code:    CodeNotFound,
				Message: "user not found",
			},
			format:   "%q",
			contains: []string{"\"NF_001", "user not found\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fmt.Sprintf(tt.format, tt.err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want, "Format(%q) = %q, should contain %q", tt.format, got, want)
			}
		})
	}
}

func TestError_Immutability(t *testing.T) {
	t.Parallel()
	original := &Error{
		Code:      CodeValidation,
		Message:   "original message",
		Retryable: false,
		Details:   map[string]any{"original": true},
	}

	origCode := original.Code
	origMsg := original.Message
	origRetryable := original.Retryable
	origDetailsLen := len(original.Details)

	_ = original.Error()
	_ = original.Unwrap()
	_ = original.Category()
	_ = original.HTTPStatus()
	_ = original.WithRetryable(true)
	_ = original.WithDetails(map[string]any{"new": true})
	_ = original.WithDetail("another", "value")

	assert.Equal(t, origCode, original.Code, "Code was mutated")
	assert.Equal(t, origMsg, original.Message, "Message was mutated")
	assert.Equal(t, origRetryable, original.Retryable, "Retryable was mutated")
	assert.Len(t, original.Details, origDetailsLen, "Details was mutated")
}
