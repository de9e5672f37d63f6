package classify

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Redis classifies an error from a go-redis operation.
//
// Classification rules, checked in order:
//
//   - [redis.Nil] — not found, not retryable; go-redis reports missing
//     keys as an error rather than a zero value
//   - [redis.TxFailedErr] — conflict, retryable: an optimistic WATCH
//     transaction lost the race and can simply run again
//   - context deadline expiry — database timeout, retryable
//   - context cancellation and network failures per the shared rules
//   - anything else — internal database error, not retryable
func Redis(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}
	if errors.Is(err, redis.Nil) {
		return beerr.Wrap(err, beerr.CodeNotFoundResource, message)
	}
	if errors.Is(err, redis.TxFailedErr) {
		return beerr.Wrap(err, beerr.CodeConflict, message).WithRetryable(true)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return beerr.Wrap(err, beerr.CodeTimeoutDatabase, message)
	}
	if e := classifyCommon(err, message); e != nil {
		return e
	}
	return beerr.Wrap(err, beerr.CodeInternalDatabase, message)
}
