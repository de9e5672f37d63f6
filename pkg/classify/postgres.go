package classify

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Postgres classifies an error from a pgx operation.
//
// Classification rules, checked in order:
//
//   - [pgx.ErrNoRows] — not found, not retryable
//   - SQLSTATE 40001 (serialization failure) and 40P01 (deadlock
//     detected) — conflict, retryable: re-running the transaction
//     usually succeeds
//   - SQLSTATE 57014 (query canceled) — database timeout, retryable;
//     this is what statement_timeout raises
//   - SQLSTATE class 08 (connection exceptions) and class 53
//     (insufficient resources) — unavailable, retryable
//   - SQLSTATE 23505 (unique violation) — already exists, not retryable
//   - SQLSTATE class 23 (other integrity violations) — validation, not
//     retryable
//   - context cancellation, deadline expiry, and network failures per
//     the shared rules
//   - anything else — internal database error, not retryable
func Postgres(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return beerr.Wrap(err, beerr.CodeNotFoundResource, message)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return beerr.Wrap(err, beerr.CodeConflict, message).
				WithRetryable(true).
				WithDetail("sqlstate", pgErr.Code)
		case pgErr.Code == "57014":
			return beerr.Wrap(err, beerr.CodeTimeoutDatabase, message).
				WithDetail("sqlstate", pgErr.Code)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "53"):
			return beerr.Wrap(err, beerr.CodeUnavailable, message).
				WithDetail("sqlstate", pgErr.Code)
		case pgErr.Code == "23505":
			return beerr.Wrap(err, beerr.CodeConflictAlreadyExists, message).
				WithDetail("sqlstate", pgErr.Code)
		case strings.HasPrefix(pgErr.Code, "23"):
			return beerr.Wrap(err, beerr.CodeValidation, message).
				WithDetail("sqlstate", pgErr.Code)
		default:
			return beerr.Wrap(err, beerr.CodeInternalDatabase, message).
				WithDetail("sqlstate", pgErr.Code)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return beerr.Wrap(err, beerr.CodeTimeoutDatabase, message)
	}
	if e := classifyCommon(err, message); e != nil {
		return e
	}
	return beerr.Wrap(err, beerr.CodeInternalDatabase, message)
}
