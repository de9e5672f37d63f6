package errors

import (
	"encoding/json"
)

// wireError is the JSON-safe projection of an Error for cross-process
// propagation: code, category, message, retryable, optional details,
// optional nested cause. There is no schema versioning or binary
// format; the contract is "a plain JSON mapping".
//
// Details uses omitzero rather than omitempty: a nil map (no details)
// is omitted, while an empty non-nil map is serialized as an empty
// object. Absent and empty are distinct states.
type wireError struct {
	Code      Code           `json:"code"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitzero"`
	Cause     any            `json:"cause,omitempty"`
}

// MarshalJSON implements json.Marshaler. Nested *Error causes are
// projected recursively; foreign error causes are flattened to their
// message string, since an arbitrary error type is not guaranteed to
// be JSON-safe.
//
// A decoded payload satisfies IsStructuredShape as a map[string]any,
// so structured errors keep working with the chain traversal and
// retryability policies after a JSON round trip. See DecodeWire.
func (e *Error) MarshalJSON() ([]byte, error) {
	var cause any
	if e.Cause != nil {
		if nested, ok := e.Cause.(*Error); ok {
			cause = nested
		} else {
			cause = e.Cause.Error()
		}
	}
	return json.Marshal(wireError{
		Code:      e.Code,
		Category:  e.Code.Category(),
		Message:   e.Message,
		Retryable: e.Retryable,
		Details:   e.Details,
		Cause:     cause,
	})
}

// DecodeWire parses a JSON error payload into the generic map form
// that the shape predicates and chain traversal operate over. Use
// this for errors received from another process:
//
//	node, err := errors.DecodeWire(body)
//	if err != nil {
//	    return err
//	}
//	retryable, _ := errors.IsChainRetryable(node)
//
// Returns a CodeValidationFormat error if the payload is not a JSON
// object.
func DecodeWire(data []byte) (map[string]any, error) {
	var node map[string]any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, Wrap(err, CodeValidationFormat, "malformed error payload")
	}
	return node, nil
}
