// Package response provides a uniform API response envelope for services
// built on the base-error model. Every response carries a status
// discriminator and exactly one of a data payload (success) or a
// [Problem] document (failure), so clients can branch on a single field
// instead of probing for the presence of payload keys.
//
// Failure payloads follow RFC 9457 (Problem Details for HTTP APIs),
// extended with the platform error vocabulary: stable error code,
// category, retryability, and structured details. Use [OK] and [Fail]
// for the common cases, or [NewBuilder] when request metadata needs to
// be attached:
//
//	env, err := response.NewBuilder().
//	    WithError(err).
//	    WithRequestID(reqID).
//	    WithMeta("duration_ms", elapsed.Milliseconds()).
//	    Build()
package response

import (
	"encoding/json"
	"net/http"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Status discriminates success envelopes from error envelopes. It is
// always present in the serialized form, so clients never need to infer
// the outcome from which payload fields happen to exist.
type Status string

const (
	// StatusSuccess marks an envelope carrying a data payload.
	StatusSuccess Status = "success"

	// StatusError marks an envelope carrying a [Problem] document.
	StatusError Status = "error"
)

// Envelope is the wire form of an API response. Exactly one of Data or
// Error is populated, matching the Status discriminator. RequestID and
// Meta are optional correlation fields and are omitted from JSON when
// empty.
type Envelope struct {
	Status    Status         `json:"status"`
	Data      any            `json:"data,omitempty"`
	Error     *Problem       `json:"error,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Meta      map[string]any `json:"meta,omitzero"`
}

// OK creates a success envelope wrapping the given payload. A nil
// payload is allowed and produces an envelope whose data field is
// omitted from JSON; the status discriminator still reports success.
func OK(data any) *Envelope {
	return &Envelope{
		Status: StatusSuccess,
		Data:   data,
	}
}

// Fail creates an error envelope from any error value. The error is
// normalized through [beerr.FromError], so foreign errors surface as
// internal problems rather than leaking raw messages structure-free.
// Returns nil when err is nil: no error means no error envelope.
func Fail(err error, opts ...ProblemOption) *Envelope {
	problem := FromError(err, opts...)
	if problem == nil {
		return nil
	}
	return &Envelope{
		Status: StatusError,
		Error:  problem,
	}
}

// IsSuccess reports whether the envelope carries a data payload rather
// than a problem document.
func (e *Envelope) IsSuccess() bool {
	return e.Status == StatusSuccess
}

// HTTPStatus returns the HTTP status code a handler should write for
// this envelope: the problem's status for error envelopes, 200 OK for
// success envelopes.
func (e *Envelope) HTTPStatus() int {
	if e.Status == StatusError && e.Error != nil {
		return e.Error.Status
	}
	return http.StatusOK
}

// Write serializes the envelope to the given [http.ResponseWriter] with
// the appropriate status code and content type. Error envelopes are
// written as application/problem+json per RFC 9457; success envelopes
// as application/json.
func (e *Envelope) Write(w http.ResponseWriter) error {
	contentType := "application/json"
	if e.Status == StatusError {
		contentType = ProblemContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(e.HTTPStatus())
	if err := json.NewEncoder(w).Encode(e); err != nil {
		return beerr.Wrap(err, beerr.CodeInternal, "response: failed to encode envelope")
	}
	return nil
}
