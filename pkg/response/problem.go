package response

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// ProblemContentType is the media type for RFC 9457 problem documents.
const ProblemContentType = "application/problem+json"

// Problem is an RFC 9457 problem details document extended with the
// platform error vocabulary. The standard members (type, title, status,
// detail, instance) make the document self-describing to generic HTTP
// clients; the extension members (code, category, retryable, details)
// carry the structured error model for platform-aware callers.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extension members.
	Code      beerr.Code     `json:"code"`
	Category  string         `json:"category"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitzero"`
}

// ProblemOption customizes problem document construction in [FromError].
type ProblemOption func(*problemConfig)

type problemConfig struct {
	typeBase string
	instance string
}

// WithTypeBase sets the base URI used to build the problem "type"
// member. The error code, lowercased, is appended as the final path
// segment (e.g. base "https://errors.example.com" and code VAL_001
// produce "https://errors.example.com/val_001"). Without this option
// the type member is "about:blank" per RFC 9457.
func WithTypeBase(base string) ProblemOption {
	return func(cfg *problemConfig) {
		cfg.typeBase = strings.TrimSuffix(base, "/")
	}
}

// WithInstance sets an explicit "instance" member instead of the
// generated urn:uuid occurrence identifier. Use this when the caller
// already has a correlation identifier for the failing request.
func WithInstance(instance string) ProblemOption {
	return func(cfg *problemConfig) {
		cfg.instance = instance
	}
}

// FromError builds a [Problem] document from any error. Structured
// errors map directly: the HTTP status derives from the error category,
// the title from a fixed per-category table, and the extension members
// from the error fields. Foreign errors are first normalized through
// [beerr.FromError] and surface as internal problems.
//
// The retryable member reflects the whole cause chain, not just the
// surface error: a non-retryable wrapper around a retryable timeout
// still yields retryable=true. If chain inspection fails (the cause
// graph is circular), the surface error's own flag is used instead.
//
// Each problem receives a unique urn:uuid instance identifier unless
// [WithInstance] overrides it. Returns nil when err is nil.
func FromError(err error, opts ...ProblemOption) *Problem {
	e := beerr.FromError(err)
	if e == nil {
		return nil
	}

	cfg := problemConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	retryable, chainErr := beerr.IsChainRetryable(e)
	if chainErr != nil {
		retryable = e.Retryable
	}

	instance := cfg.instance
	if instance == "" {
		instance = "urn:uuid:" + uuid.NewString()
	}

	return &Problem{
		Type:      typeURI(cfg.typeBase, e.Code),
		Title:     titleForCategory(e.Category()),
		Status:    e.HTTPStatus(),
		Detail:    e.Message,
		Instance:  instance,
		Code:      e.Code,
		Category:  e.Category(),
		Retryable: retryable,
		Details:   e.Details,
	}
}

func typeURI(base string, code beerr.Code) string {
	if base == "" {
		return "about:blank"
	}
	return fmt.Sprintf("%s/%s", base, strings.ToLower(code.String()))
}

// titleForCategory maps an error category to the human-readable problem
// title. Unknown categories fall back to the internal error title,
// matching the HTTP status fallback in the error model.
func titleForCategory(category string) string {
	switch category {
	case beerr.CategoryValidation:
		return "Validation Failed"
	case beerr.CategoryAuthentication:
		return "Authentication Required"
	case beerr.CategoryAuthorization:
		return "Permission Denied"
	case beerr.CategoryNotFound:
		return "Resource Not Found"
	case beerr.CategoryConflict:
		return "Conflict"
	case beerr.CategoryUnavailable:
		return "Service Unavailable"
	case beerr.CategoryTimeout:
		return "Request Timed Out"
	case beerr.CategoryInternal:
		return "Internal Server Error"
	default:
		return "Internal Server Error"
	}
}
