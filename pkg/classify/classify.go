// Package classify converts driver and transport errors into structured
// platform errors. Each classifier inspects the error shapes its driver
// produces (sentinel values, typed errors, status codes) and wraps the
// original error under a stable platform code with the right
// retryability, so retry loops and response mapping can work from one
// vocabulary regardless of which backend failed.
//
// All classifiers share the same contract: nil in, nil out; the
// original error is always preserved as the cause, reachable via
// errors.Is and errors.As; an already-classified error passes through
// unchanged.
package classify

import (
	"context"
	"errors"
	"net"
	"syscall"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Error classifies an error from an unknown source. It recognizes
// context cancellation, deadline expiry, and common network failure
// shapes; anything else becomes a non-retryable internal error. Use
// the driver-specific classifiers ([Postgres], [Redis], [Minio],
// [Neo4j], [GRPC]) when the source is known, since they recognize far
// more shapes.
func Error(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}
	if e := classifyCommon(err, message); e != nil {
		return e
	}
	return beerr.Wrap(err, beerr.CodeInternal, message)
}

// passthrough returns the error unchanged when it is already a
// structured platform error. Re-classifying would bury the original
// code under a generic one.
func passthrough(err error) (*beerr.Error, bool) {
	var e *beerr.Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// classifyCommon handles the error shapes every classifier shares:
// context cancellation, deadline expiry, and network-level failures.
// Returns nil when the error matches none of them.
//
// Cancellation is not retryable: the caller abandoned the operation,
// and retrying an intentionally canceled request is wasteful. Deadline
// expiry is a timeout and retryable by default.
func classifyCommon(err error, message string) *beerr.Error {
	if errors.Is(err, context.Canceled) {
		return beerr.Wrap(err, beerr.CodeInternal, message).WithRetryable(false)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return beerr.Wrap(err, beerr.CodeTimeout, message)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return beerr.Wrap(err, beerr.CodeTimeout, message)
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return beerr.Wrap(err, beerr.CodeUnavailable, message)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return beerr.Wrap(err, beerr.CodeUnavailable, message)
	}
	return nil
}
