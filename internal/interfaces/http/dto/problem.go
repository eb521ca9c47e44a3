package dto

import (
	"errors"
	"net/http"

	"github.com/finman/backend/internal/domain/shared"
)

// ProblemContentType is the media type for problem responses (RFC 7807)
const ProblemContentType = "application/problem+json"

// problemTypeBase prefixes the type URI of every problem
const problemTypeBase = "https://finman.dev/problems/"

// Problem is an RFC 7807 problem details document
type Problem struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	TraceID  string            `json:"traceId,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// NewProblem builds a problem document for the given status
func NewProblem(status int, slug, detail string) *Problem {
	return &Problem{
		Type:   problemTypeBase + slug,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// WithInstance attaches the request path
func (p *Problem) WithInstance(instance string) *Problem {
	p.Instance = instance
	return p
}

// WithTraceID attaches the request correlation ID
func (p *Problem) WithTraceID(traceID string) *Problem {
	p.TraceID = traceID
	return p
}

// WithErrors attaches per-field validation messages
func (p *Problem) WithErrors(errs map[string]string) *Problem {
	p.Errors = errs
	return p
}

// domainCodeStatus maps domain error codes to HTTP status codes
var domainCodeStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_REVERSAL":     http.StatusConflict,
	"INVALID_INPUT":        http.StatusBadRequest,
	"BAD_REQUEST":          http.StatusBadRequest,
	"OVERPAYMENT":          http.StatusBadRequest,
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"FORBIDDEN":            http.StatusForbidden,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"UNPROCESSABLE":        http.StatusUnprocessableEntity,
}

// domainCodeSlug maps domain error codes to problem type slugs
var domainCodeSlug = map[string]string{
	"NOT_FOUND":            "not-found",
	"ALREADY_EXISTS":       "conflict",
	"CONCURRENCY_CONFLICT": "concurrency-conflict",
	"INVALID_REVERSAL":     "invalid-reversal",
	"INVALID_INPUT":        "bad-request",
	"BAD_REQUEST":          "bad-request",
	"OVERPAYMENT":          "overpayment",
	"UNAUTHORIZED":         "unauthorized",
	"FORBIDDEN":            "forbidden",
	"INVALID_STATE":        "invalid-state",
	"UNPROCESSABLE":        "unprocessable",
}

// ProblemFromError maps a domain error to its problem document.
// Unknown errors become an opaque 500 so storage details never leak.
func ProblemFromError(err error) *Problem {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status, ok := domainCodeStatus[domainErr.Code]
		if !ok {
			return NewProblem(http.StatusInternalServerError, "internal", "An unexpected error occurred")
		}
		return NewProblem(status, domainCodeSlug[domainErr.Code], domainErr.Message)
	}
	return NewProblem(http.StatusInternalServerError, "internal", "An unexpected error occurred")
}
