package response

import (
	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// Builder constructs an [Envelope] with validation and optional request
// metadata. Use [NewBuilder] to start building.
//
// The builder follows the fluent API pattern: all configuration methods
// return the builder for chaining. Call [Builder.Build] to validate and
// produce the envelope.
//
// Example:
//
//	env, err := response.NewBuilder().
//	    WithData(order).
//	    WithRequestID(reqID).
//	    WithMeta("duration_ms", elapsed.Milliseconds()).
//	    Build()
type Builder struct {
	data        any
	dataSet     bool
	err         error
	errSet      bool
	requestID   string
	meta        map[string]any
	problemOpts []ProblemOption
}

// NewBuilder creates a new empty envelope builder. Exactly one of
// [Builder.WithData] or [Builder.WithError] must be called before
// [Builder.Build].
func NewBuilder() *Builder {
	return &Builder{}
}

// WithData sets the success payload. A nil payload is allowed; calling
// WithData at all commits the envelope to the success branch.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	b.dataSet = true
	return b
}

// WithError sets the failure cause. The error is converted to a
// [Problem] document during [Builder.Build], honoring any options set
// via [Builder.WithProblemOptions].
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	b.errSet = true
	return b
}

// WithProblemOptions sets the [ProblemOption] values applied when the
// failure cause is converted to a problem document.
func (b *Builder) WithProblemOptions(opts ...ProblemOption) *Builder {
	b.problemOpts = append(b.problemOpts, opts...)
	return b
}

// WithRequestID sets the correlation identifier echoed back to the
// client in the request_id field.
func (b *Builder) WithRequestID(id string) *Builder {
	b.requestID = id
	return b
}

// WithMeta adds a single metadata entry. Metadata is for response-level
// annotations (timing, pagination cursors, deprecation notices) that
// belong to neither the payload nor the problem document.
func (b *Builder) WithMeta(key string, value any) *Builder {
	if b.meta == nil {
		b.meta = make(map[string]any)
	}
	b.meta[key] = value
	return b
}

// Build validates the configuration and constructs the [*Envelope].
// Returns a [*beerr.Error] with code [beerr.CodeValidation] unless
// exactly one of WithData or WithError was called: an envelope must
// commit to one branch of the discriminated union.
//
// The metadata map is copied into the envelope, so mutating the builder
// after Build does not affect envelopes already produced.
func (b *Builder) Build() (*Envelope, error) {
	if b.dataSet && b.errSet {
		return nil, beerr.New(beerr.CodeValidation,
			"response: envelope cannot carry both data and an error")
	}
	if !b.dataSet && !b.errSet {
		return nil, beerr.New(beerr.CodeValidation,
			"response: envelope requires either data or an error")
	}

	var meta map[string]any
	if len(b.meta) > 0 {
		meta = make(map[string]any, len(b.meta))
		for k, v := range b.meta {
			meta[k] = v
		}
	}

	env := &Envelope{
		RequestID: b.requestID,
		Meta:      meta,
	}
	if b.errSet {
		env.Status = StatusError
		env.Error = FromError(b.err, b.problemOpts...)
		if env.Error == nil {
			return nil, beerr.New(beerr.CodeValidation,
				"response: WithError requires a non-nil error")
		}
	} else {
		env.Status = StatusSuccess
		env.Data = b.data
	}
	return env, nil
}

// MustBuild is like [Builder.Build] but panics on validation failure.
// Use it only where the branch is statically known to be set, such as
// handler helpers that always call WithData.
func (b *Builder) MustBuild() *Envelope {
	env, err := b.Build()
	if err != nil {
		panic(err)
	}
	return env
}
