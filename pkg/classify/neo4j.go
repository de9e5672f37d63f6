package classify

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Neo4j classifies an error from a neo4j-go-driver operation.
//
// Classification rules, checked in order:
//
//   - server errors with a Neo.TransientError code, or any error the
//     driver itself reports as retryable via [neo4j.IsRetryable] —
//     unavailable, retryable
//   - Neo.ClientError.Security codes — authentication failure, not
//     retryable
//   - Neo.ClientError.Statement and Neo.ClientError.Schema codes —
//     validation failure, not retryable: the query or the data it
//     touches is wrong, retrying cannot help
//   - context deadline expiry — database timeout, retryable
//   - context cancellation and network failures per the shared rules
//   - anything else — internal database error, not retryable
func Neo4j(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}

	var serverErr *db.Neo4jError
	if errors.As(err, &serverErr) {
		switch {
		case strings.HasPrefix(serverErr.Code, "Neo.TransientError"):
			return beerr.Wrap(err, beerr.CodeUnavailable, message).
				WithDetail("neo4j_code", serverErr.Code)
		case strings.HasPrefix(serverErr.Code, "Neo.ClientError.Security"):
			return beerr.Wrap(err, beerr.CodeAuthentication, message).
				WithDetail("neo4j_code", serverErr.Code)
		case strings.HasPrefix(serverErr.Code, "Neo.ClientError.Statement"),
			strings.HasPrefix(serverErr.Code, "Neo.ClientError.Schema"):
			return beerr.Wrap(err, beerr.CodeValidation, message).
				WithDetail("neo4j_code", serverErr.Code)
		default:
			return beerr.Wrap(err, beerr.CodeInternalDatabase, message).
				WithDetail("neo4j_code", serverErr.Code)
		}
	}

	if neo4j.IsRetryable(err) {
		return beerr.Wrap(err, beerr.CodeUnavailable, message)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return beerr.Wrap(err, beerr.CodeTimeoutDatabase, message)
	}
	if e := classifyCommon(err, message); e != nil {
		return e
	}
	return beerr.Wrap(err, beerr.CodeInternalDatabase, message)
}
