package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeIndexNotLoaded   ErrorResponseCode = "index_not_loaded"
	ErrorResponseCodeIndexUnavailable ErrorResponseCode = "index_unavailable"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchDocsParams are the query parameters of GET /api/v1/search.
type SearchDocsParams struct {
	Q         string `form:"q" json:"q"`
	Highlight *bool  `form:"highlight,omitempty" json:"highlight,omitempty"`
	Limit     *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

// Highlight holds HTML fragments with matched terms wrapped in <mark>.
type Highlight struct {
	Title   string `json:"title"`
	Args    string `json:"args,omitempty"`
	Type    string `json:"type,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// SearchResultItem is one match record, optionally highlighted.
type SearchResultItem struct {
	result.Result
	Highlight *Highlight `json:"highlight,omitempty"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Query  string             `json:"query"`
	Terms  []string           `json:"terms"`
	Items  []SearchResultItem `json:"items"`
	Total  int                `json:"total"`
	Cached bool               `json:"cached"`
}

// IndexResponse is the body of GET /api/v1/index.
type IndexResponse struct {
	Loaded bool           `json:"loaded"`
	Root   string         `json:"root,omitempty"`
	Digest string         `json:"digest,omitempty"`
	Stats  *doctree.Stats `json:"stats,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServerInterface lists the API operations.
type ServerInterface interface {
	// GET /api/v1/search
	SearchDocs(w http.ResponseWriter, r *http.Request, params SearchDocsParams)
	// GET /api/v1/index
	GetIndex(w http.ResponseWriter, r *http.Request)
	// GET /health
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// GET /metrics
	Metrics(w http.ResponseWriter, r *http.Request)
}

// InvalidParamFormatError reports a query parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on the base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	errorHandler := options.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	w := &wrapper{handler: si, errorHandler: errorHandler}

	r.Get("/api/v1/search", w.SearchDocs)
	r.Get("/api/v1/index", si.GetIndex)
	r.Get("/health", si.HealthCheck)
	r.Get("/metrics", si.Metrics)

	return r
}

type wrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// SearchDocs binds query parameters and delegates.
func (w *wrapper) SearchDocs(rw http.ResponseWriter, r *http.Request) {
	var params SearchDocsParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, true, "q", query, &params.Q); err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "highlight", query, &params.Highlight); err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: "highlight", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		w.errorHandler(rw, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	w.handler.SearchDocs(rw, r, params)
}
