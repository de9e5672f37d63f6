package classify

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// GRPC classifies an error returned by a gRPC call. The gRPC status
// code maps onto the platform vocabulary:
//
//	InvalidArgument, OutOfRange    — validation, not retryable
//	Unauthenticated                — authentication, not retryable
//	PermissionDenied               — authorization, not retryable
//	NotFound                       — not found, not retryable
//	AlreadyExists                  — conflict, not retryable
//	Aborted                        — conflict, retryable
//	FailedPrecondition             — conflict, not retryable
//	Unavailable                    — unavailable, retryable
//	ResourceExhausted              — overloaded, retryable
//	DeadlineExceeded               — dependency timeout, retryable
//	Canceled                       — internal, not retryable
//	everything else                — internal, not retryable
//
// Errors that carry no gRPC status fall through to the shared rules.
func GRPC(err error, message string) *beerr.Error {
	if err == nil {
		return nil
	}
	if e, ok := passthrough(err); ok {
		return e
	}

	st, ok := status.FromError(err)
	if !ok {
		if e := classifyCommon(err, message); e != nil {
			return e
		}
		return beerr.Wrap(err, beerr.CodeInternal, message)
	}

	wrap := func(code beerr.Code) *beerr.Error {
		return beerr.Wrap(err, code, message).
			WithDetail("grpc_code", st.Code().String())
	}

	switch st.Code() {
	case codes.InvalidArgument, codes.OutOfRange:
		return wrap(beerr.CodeValidation)
	case codes.Unauthenticated:
		return wrap(beerr.CodeAuthentication)
	case codes.PermissionDenied:
		return wrap(beerr.CodeAuthorizationDenied)
	case codes.NotFound:
		return wrap(beerr.CodeNotFoundResource)
	case codes.AlreadyExists:
		return wrap(beerr.CodeConflictAlreadyExists)
	case codes.Aborted:
		return wrap(beerr.CodeConflict).WithRetryable(true)
	case codes.FailedPrecondition:
		return wrap(beerr.CodeConflict)
	case codes.Unavailable:
		return wrap(beerr.CodeUnavailableDependency)
	case codes.ResourceExhausted:
		return wrap(beerr.CodeUnavailableOverloaded)
	case codes.DeadlineExceeded:
		return wrap(beerr.CodeTimeoutDependency)
	case codes.Canceled:
		return wrap(beerr.CodeInternal).WithRetryable(false)
	default:
		return wrap(beerr.CodeInternal)
	}
}

// GRPCCode maps a structured error back to the gRPC status code a
// server handler should return. Foreign and nil errors map to
// codes.Internal and codes.OK respectively.
func GRPCCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	e, ok := beerr.AsError(err)
	if !ok {
		return codes.Internal
	}
	switch e.Code.Category() {
	case beerr.CategoryValidation:
		return codes.InvalidArgument
	case beerr.CategoryAuthentication:
		return codes.Unauthenticated
	case beerr.CategoryAuthorization:
		return codes.PermissionDenied
	case beerr.CategoryNotFound:
		return codes.NotFound
	case beerr.CategoryConflict:
		if e.Code == beerr.CodeConflictAlreadyExists {
			return codes.AlreadyExists
		}
		return codes.Aborted
	case beerr.CategoryUnavailable:
		return codes.Unavailable
	case beerr.CategoryTimeout:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// GRPCStatus converts a structured error into a *status.Status suitable
// for returning from a gRPC handler. The status message is the error's
// operator message; nil errors produce an OK status.
func GRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	e := beerr.FromError(err)
	return status.New(GRPCCode(e), e.Message)
}
