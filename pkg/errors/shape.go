package errors

import (
	"reflect"
)

// Shape predicates: pure, non-panicking capability checks over
// arbitrary values. The chain traversal functions call these on every
// node, so they must tolerate anything — *Error values, foreign error
// types, plain maps produced by decoding a JSON error payload from
// another process, primitives, and nil.

// causer is the legacy cause accessor popularized by github.com/pkg/errors.
// Supported alongside the standard Unwrap so that chains built with
// either convention traverse the same way.
type causer interface {
	Cause() error
}

// singleUnwrapper is the standard library's single-cause wrapping
// convention (errors.Unwrap).
type singleUnwrapper interface {
	Unwrap() error
}

// multiUnwrapper is the errors.Join convention. The chain model is
// linear, so traversal follows the first joined child.
type multiUnwrapper interface {
	Unwrap() []error
}

// causeOf extracts the next node in v's cause chain. The second
// return value reports whether v exposes a cause at all.
//
// Recognized shapes, in order:
//   - map[string]any with a "cause" key: the key's value, even if nil.
//     A present-but-nil cause is a valid terminal node, distinct from
//     an absent key.
//   - error with Unwrap() error or Cause() error: the result if
//     non-nil; a nil result means "no cause" per Go convention.
//   - error with Unwrap() []error: the first joined child, if any.
//
// Everything else — primitives, nil, structs without an accessor —
// has no cause.
func causeOf(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	// A typed-nil pointer satisfies the accessor interfaces but its
	// methods would dereference a nil receiver. Treat it as terminal.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	switch node := v.(type) {
	case map[string]any:
		c, ok := node["cause"]
		return c, ok
	case singleUnwrapper:
		if c := node.Unwrap(); c != nil {
			return c, true
		}
		return nil, false
	case causer:
		if c := node.Cause(); c != nil {
			return c, true
		}
		return nil, false
	case multiUnwrapper:
		if joined := node.Unwrap(); len(joined) > 0 {
			return joined[0], true
		}
		return nil, false
	}
	return nil, false
}

// HasCause reports whether v exposes a cause link the chain traversal
// can follow. It never panics, for any input including nil.
func HasCause(v any) bool {
	_, ok := causeOf(v)
	return ok
}

// IsStructuredShape reports whether v carries the structured-error
// contract: a string code, a string category, and a boolean retryable
// flag. Both real *Error instances and plain map[string]any values
// (e.g., a structured error that crossed a process boundary as JSON)
// satisfy the shape; the value's declared type is irrelevant.
func IsStructuredShape(v any) bool {
	switch node := v.(type) {
	case *Error:
		return node != nil
	case map[string]any:
		if _, ok := node["code"].(string); !ok {
			return false
		}
		if _, ok := node["category"].(string); !ok {
			return false
		}
		_, ok := node["retryable"].(bool)
		return ok
	}
	return false
}

// IsRetryableShape reports whether v satisfies the structured-error
// shape and is marked retryable. This is the predicate behind
// IsChainRetryable, IsRootCauseRetryable, and FirstRetryableCause.
func IsRetryableShape(v any) bool {
	if !IsStructuredShape(v) {
		return false
	}
	switch node := v.(type) {
	case *Error:
		return node.Retryable
	case map[string]any:
		retryable, _ := node["retryable"].(bool)
		return retryable
	}
	return false
}
