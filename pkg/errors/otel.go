package errors

import (
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OpenTelemetry attribute keys for classified errors. Kept under the
// "error." namespace alongside the semantic-convention error.type.
const (
	// AttrErrorCode is the structured error code (e.g., "TIMEOUT_002").
	AttrErrorCode = attribute.Key("error.code")

	// AttrErrorCategory is the code's category prefix (e.g., "TIMEOUT").
	AttrErrorCategory = attribute.Key("error.category")

	// AttrErrorRetryable is the error's own retryability flag.
	AttrErrorRetryable = attribute.Key("error.retryable")

	// AttrErrorChainRetryable reports whether anything in the cause
	// chain was retryable (the IsChainRetryable policy).
	AttrErrorChainRetryable = attribute.Key("error.chain_retryable")

	// AttrErrorRootCode is the code of the deepest structured cause,
	// when it differs from the surface error's code.
	AttrErrorRootCode = attribute.Key("error.root_code")
)

// SpanAttributes derives OpenTelemetry attributes from a classified
// error: its code, category, and retryability, the chain-wide
// retryability decision, and the root cause's code when a deeper
// structured cause exists. Returns nil for a nil error or one that
// carries no *Error in its chain.
//
// A circular cause chain does not fail attribute derivation; the
// chain-derived attributes are simply omitted.
func SpanAttributes(err error) []attribute.KeyValue {
	e, ok := AsError(err)
	if !ok {
		return nil
	}

	attrs := []attribute.KeyValue{
		AttrErrorCode.String(e.Code.String()),
		AttrErrorCategory.String(e.Code.Category()),
		AttrErrorRetryable.Bool(e.Retryable),
	}

	if chainRetryable, cerr := IsChainRetryable(e); cerr == nil {
		attrs = append(attrs, AttrErrorChainRetryable.Bool(chainRetryable))
	}
	if root, cerr := RootCause(e); cerr == nil {
		if re, ok := root.(*Error); ok && re.Code != e.Code {
			attrs = append(attrs, AttrErrorRootCode.String(re.Code.String()))
		}
	}
	return attrs
}

// RecordError records err on the span with the attributes from
// SpanAttributes and marks the span status as error. No-ops on a nil
// error or an invalid span, so callers can use it unconditionally on
// failure paths:
//
//	if err != nil {
//	    errors.RecordError(span, err)
//	    return err
//	}
func RecordError(span trace.Span, err error) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err, trace.WithAttributes(SpanAttributes(err)...))
	if e, ok := AsError(err); ok {
		span.SetStatus(otelcodes.Error, e.Message)
	} else {
		span.SetStatus(otelcodes.Error, err.Error())
	}
}
