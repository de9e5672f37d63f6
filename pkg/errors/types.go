package errors

import (
	"fmt"
	"net/http"
)

// Error represents a classified failure with a machine-readable code,
// an explicit retryability flag, and an optional upstream cause.
// It implements the standard error interface and provides additional
// context for error handling, logging, and API responses.
//
// Error is designed to be:
//   - Immutable: Fields are not modified after creation; all With*
//     methods return copies
//   - Chainable: Supports error wrapping via the Cause field
//   - Structured: Provides machine-readable code, category, and
//     retryability suitable for automated handling
//   - Portable: Marshals to a JSON-safe mapping that survives
//     cross-process propagation (see MarshalJSON)
type Error struct {
	// Code is the machine-readable error code (e.g., "AUTH_001").
	// The code's prefix determines the error's category.
	Code Code

	// Message is the human-readable error message.
	// This message may be shown to end users and should not contain
	// sensitive information such as internal paths or credentials.
	Message string

	// Retryable reports whether the specific failure that produced
	// this error is safe to retry automatically. It is fixed at
	// construction: constructors derive it from the code's category
	// (see Code.DefaultRetryable) unless overridden with
	// WithRetryable.
	Retryable bool

	// Cause is the underlying error that caused this error, if any.
	// Use Unwrap() to access the cause for error chain inspection.
	Cause error

	// Details contains additional structured data about the error.
	// This can include field-level validation errors, resource
	// identifiers, or other context useful for debugging. A nil map
	// means "no details"; an empty non-nil map is preserved as an
	// empty object on the wire.
	Details map[string]any
}

// Error implements the error interface, returning the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of this error, supporting
// errors.Unwrap() and errors.Is() from the standard library.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the coarse grouping of this error, derived from
// the code prefix (e.g., "VAL", "AUTH", "TIMEOUT"). Many codes share
// a category.
func (e *Error) Category() string {
	return e.Code.Category()
}

// HTTPStatus returns the appropriate HTTP status code for this error
// based on its error code category.
func (e *Error) HTTPStatus() int {
	switch e.Code.Category() {
	case "VAL":
		return http.StatusBadRequest
	case "AUTH":
		return http.StatusUnauthorized
	case "AUTHZ":
		return http.StatusForbidden
	case "NF":
		return http.StatusNotFound
	case "CONF":
		return http.StatusConflict
	case "INT":
		return http.StatusInternalServerError
	case "UNAVAIL":
		return http.StatusServiceUnavailable
	case "TIMEOUT":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WithRetryable returns a new Error with the retryability flag set to
// the given value. The original error is not modified. Use this when
// a classifier knows more about transience than the code's category
// default (e.g., a serialization conflict that is safe to retry).
func (e *Error) WithRetryable(retryable bool) *Error {
	clone := *e
	clone.Retryable = retryable
	return &clone
}

// WithDetails returns a new Error with the specified details added.
// The original error is not modified.
func (e *Error) WithDetails(details map[string]any) *Error {
	newDetails := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		newDetails[k] = v
	}
	for k, v := range details {
		newDetails[k] = v
	}
	clone := *e
	clone.Details = newDetails
	return &clone
}

// WithDetail returns a new Error with a single detail key-value pair
// added. The original error is not modified.
func (e *Error) WithDetail(key string, value any) *Error {
	newDetails := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		newDetails[k] = v
	}
	newDetails[key] = value
	clone := *e
	clone.Details = newDetails
	return &clone
}

// Format implements fmt.Formatter for detailed error output.
// Use %v for standard output, %+v for detailed output including the
// cause chain and retryability.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "Error{Code: %q, Message: %q, Retryable: %t", e.Code, e.Message, e.Retryable)
			if len(e.Details) > 0 {
				fmt.Fprintf(s, ", Details: %v", e.Details)
			}
			if e.Cause != nil {
				fmt.Fprintf(s, ", Cause: %+v", e.Cause)
			}
			fmt.Fprint(s, "}")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
