package errors

// Retryability decision policies. All three are fixed specializations
// of the chain traversal primitives with IsRetryableShape as the
// predicate; they differ only in aggressiveness:
//
//   - IsChainRetryable: retry if anything upstream hints at transience
//   - IsRootCauseRetryable: retry only if the deepest cause is transient
//   - FirstRetryableCause: expose the node that justified the decision
//
// Retry execution (backoff, budgets) is deliberately out of scope;
// these functions only decide.

// IsChainRetryable reports whether any node in start's cause chain is
// a retryable structured error. This is the most permissive policy:
// a retryable failure anywhere between the surface error and the root
// cause is enough.
//
// A circular chain yields a CodeInternalCircularCause error so that
// calling retry logic can distinguish "malformed error graph" from
// "no retryable cause".
func IsChainRetryable(start any, opts ...WalkOption) (bool, error) {
	return SomeInChain(start, IsRetryableShape, opts...)
}

// IsRootCauseRetryable reports whether the deepest reachable cause —
// and only that node — is a retryable structured error. This is a
// stricter, more conservative signal than IsChainRetryable: an outer
// retryable wrapper around a permanent root does not qualify.
//
// Root-retryable implies chain-retryable (the root is a member of the
// chain); the converse does not hold.
func IsRootCauseRetryable(start any, opts ...WalkOption) (bool, error) {
	root, err := RootCause(start, opts...)
	if err != nil {
		return false, err
	}
	return IsRetryableShape(root), nil
}

// FirstRetryableCause returns the outermost retryable structured
// error in start's cause chain, for logging and telemetry. The
// boolean reports whether such a node exists. A cycle beyond the
// match is not observed (see FindInChain).
func FirstRetryableCause(start any, opts ...WalkOption) (any, bool, error) {
	return FindInChain(start, IsRetryableShape, opts...)
}
