package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
	"github.com/kailas-cloud/docdex/internal/logger"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface for the chi router.
type Server struct {
	search         searchuc.Searcher
	index          searchuc.IndexReader
	health         *healthuc.Service
	maxQueryLength int
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search searchuc.Searcher,
	index searchuc.IndexReader,
	health *healthuc.Service,
	maxQueryLength int,
	logger *zap.Logger,
) *Server {
	if maxQueryLength <= 0 || maxQueryLength > query.MaxLength {
		maxQueryLength = query.MaxLength
	}
	s := &Server{
		search:         search,
		index:          index,
		health:         health,
		maxQueryLength: maxQueryLength,
		logger:         logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndexNotLoaded, http.StatusServiceUnavailable, ErrorResponseCodeIndexNotLoaded),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeIndexUnavailable),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
	}
	return s
}

// SearchDocs handles GET /api/v1/search.
func (s *Server) SearchDocs(w http.ResponseWriter, r *http.Request, params SearchDocsParams) {
	if len(params.Q) > s.maxQueryLength {
		s.handleDomainError(w, r, fmt.Errorf("%w: query exceeds %d bytes", domain.ErrInvalidQuery, s.maxQueryLength))
		return
	}
	if params.Limit != nil && *params.Limit < 1 {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "limit must be positive")
		return
	}

	out, err := s.search.Search(r.Context(), params.Q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := out.Page.Items
	if params.Limit != nil && *params.Limit < len(items) {
		items = items[:*params.Limit]
	}

	highlight := derefBool(params.Highlight)
	resp := SearchResponse{
		Query:  params.Q,
		Terms:  out.Query.Terms(),
		Items:  make([]SearchResultItem, len(items)),
		Total:  out.Page.Total,
		Cached: out.Cached,
	}
	if resp.Terms == nil {
		resp.Terms = []string{}
	}
	for i := range items {
		resp.Items[i] = SearchResultItem{Result: items[i]}
		if highlight {
			resp.Items[i].Highlight = highlightResult(&out.Query, &items[i])
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetIndex handles GET /api/v1/index.
func (s *Server) GetIndex(w http.ResponseWriter, _ *http.Request) {
	program, ok := s.index.Snapshot()
	if !ok {
		writeJSON(w, http.StatusOK, IndexResponse{Loaded: false})
		return
	}

	stats := program.Root.Count()
	writeJSON(w, http.StatusOK, IndexResponse{
		Loaded: true,
		Root:   program.Root.FullName,
		Digest: program.Digest,
		Stats:  &stats,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// highlightResult renders the fragments the docs search widget shows:
// title, argument list, owning type and sanitized summary.
func highlightResult(q *query.Query, r *result.Result) *Highlight {
	title := q.Highlight(r.Name)
	if r.Kind == kind.Type {
		title = q.Highlight(r.FullName)
	}
	if prefix := r.Kind.Prefix(); prefix != "" {
		title = "<b>" + prefix + "</b>" + title
	}

	return &Highlight{
		Title:   title,
		Args:    q.Highlight(r.ArgsString),
		Type:    q.Highlight(r.Type),
		Summary: q.Highlight(query.SanitizeSummary(r.Summary)),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrIndexNotLoaded,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
