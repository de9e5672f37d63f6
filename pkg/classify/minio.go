package classify

import (
	"github.com/minio/minio-go/v7"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Minio classifies an error from a MinIO/S3 operation. The S3 error
// code from the server response drives classification:
//
//   - NoSuchKey, NoSuchBucket — not found, not retryable
//   - AccessDenied — authorization failure, not retryable
//   - BucketAlreadyExists, BucketAlreadyOwnedByYou — already exists,
//     not retryable
//   - SlowDown — the service asked us to back off: overloaded,
//     retryable
//   - RequestTimeout — timeout, retryable
//   - other S3 errors — internal, not retryable, with the S3 code
//     preserved in the details
//
// Errors without an S3 error response (connection failures, timeouts
// before a response arrived) fall through to the shared rules.
func Minio(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return beerr.Wrap(err, beerr.CodeNotFoundResource, message).
			WithDetail("s3_code", resp.Code)
	case "AccessDenied":
		return beerr.Wrap(err, beerr.CodeAuthorizationDenied, message).
			WithDetail("s3_code", resp.Code)
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return beerr.Wrap(err, beerr.CodeConflictAlreadyExists, message).
			WithDetail("s3_code", resp.Code)
	case "SlowDown":
		return beerr.Wrap(err, beerr.CodeUnavailableOverloaded, message).
			WithDetail("s3_code", resp.Code)
	case "RequestTimeout":
		return beerr.Wrap(err, beerr.CodeTimeoutDependency, message).
			WithDetail("s3_code", resp.Code)
	case "":
		// No S3 error response: the failure happened below the HTTP
		// layer or the response could not be parsed.
		if e := classifyCommon(err, message); e != nil {
			return e
		}
		return beerr.Wrap(err, beerr.CodeInternal, message)
	default:
		return beerr.Wrap(err, beerr.CodeInternal, message).
			WithDetail("s3_code", resp.Code)
	}
}
