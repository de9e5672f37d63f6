// Package errors provides a structured error model with cause-chain
// traversal and retryability decisions. It defines common error
// categories, stable machine-readable codes, and helper functions for
// creating, wrapping, inspecting, and walking errors.
//
// # Error Model
//
// Every [*Error] carries a [Code] (its category is the code prefix),
// a human-readable message, an explicit retryability flag fixed at
// construction, an optional details map, and an optional cause. The
// value is immutable: With* methods return copies.
//
// # Error Codes
//
// Codes follow the pattern CATEGORY_XXX (e.g., "AUTH_001") and map to
// HTTP status by category:
//
//   - Validation errors (VAL): invalid input — 400
//   - Authentication errors (AUTH): invalid credentials — 401
//   - Authorization errors (AUTHZ): insufficient permissions — 403
//   - NotFound errors (NF): resource does not exist — 404
//   - Conflict errors (CONF): state conflict — 409
//   - Internal errors (INT): unexpected failures — 500
//   - Unavailable errors (UNAVAIL): transient outage — 503, retryable
//   - Timeout errors (TIMEOUT): exceeded time limit — 504, retryable
//
// # Cause Chains
//
// Wrapping links errors into a chain that [RootCause], [FindInChain],
// [FilterChain], [SomeInChain], and [EveryInChain] traverse lazily,
// outermost first, with identity-based cycle detection and a depth
// bound ([DefaultMaxDepth], overridable per call with [WithMaxDepth]).
// The traversal is polymorphic: nodes may be *Error values, foreign
// errors exposing Unwrap() error, Unwrap() []error, or Cause() error,
// plain map[string]any nodes from decoded JSON, primitives, or nil.
// A chain that loops raises a [CodeInternalCircularCause] error
// instead of hanging; see [IsCircularChain].
//
// # Retry Decisions
//
// Three policies answer "should this failure be retried":
//
//	retryable, err := errors.IsChainRetryable(failure)   // anything transient upstream
//	retryable, err := errors.IsRootCauseRetryable(failure) // deepest cause only
//	node, ok, err := errors.FirstRetryableCause(failure)  // the justifying node
//
// # Usage
//
// Create a new error with context:
//
//	err := errors.New(errors.CodeValidation, "email address is invalid")
//
// Wrap an existing error:
//
//	err := errors.Wrap(err, errors.CodeInternal, "failed to process request")
//
// Check error category:
//
//	if errors.IsNotFound(err) {
//	    // handle not found
//	}
//
// Decide on a retry across process boundaries:
//
//	node, _ := errors.DecodeWire(payload)
//	if ok, _ := errors.IsChainRetryable(node); ok {
//	    // schedule retry
//	}
package errors
