package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hoodmatch/internal/domain"
	"github.com/kailas-cloud/hoodmatch/internal/domain/attribute"
	domnb "github.com/kailas-cloud/hoodmatch/internal/domain/neighborhood"
	"github.com/kailas-cloud/hoodmatch/internal/domain/preference"
	logpkg "github.com/kailas-cloud/hoodmatch/internal/logger"
	discoveruc "github.com/kailas-cloud/hoodmatch/internal/usecase/discover"
	healthuc "github.com/kailas-cloud/hoodmatch/internal/usecase/health"
	matchuc "github.com/kailas-cloud/hoodmatch/internal/usecase/match"
)

// DefaultMaxLimit caps ?limit= and search limits when no explicit cap is configured.
const DefaultMaxLimit = 100

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// NeighborhoodReader reads the neighborhood dataset.
type NeighborhoodReader interface {
	List(ctx context.Context) ([]domnb.Neighborhood, error)
	Get(ctx context.Context, id string) (domnb.Neighborhood, error)
}

// Server holds the HTTP handlers of the hoodmatch API.
type Server struct {
	match         *matchuc.Service
	discover      *discoveruc.Service
	neighborhoods NeighborhoodReader
	health        *healthuc.Service
	logger        *zap.Logger
	maxLimit      int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	match *matchuc.Service,
	discover *discoveruc.Service,
	neighborhoods NeighborhoodReader,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		match:         match,
		discover:      discover,
		neighborhoods: neighborhoods,
		health:        health,
		logger:        logger,
		maxLimit:      DefaultMaxLimit,
	}
	s.errorHandlers = []errorHandler{
		fieldErrorHandler,
		sentinelHandler(domain.ErrInvalidPreferences, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError,
			http.StatusBadGateway, ErrorCodeEmbeddingProviderError),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// WithMaxLimit sets the upper bound applied to requested result limits.
func (s *Server) WithMaxLimit(n int) *Server {
	if n > 0 {
		s.maxLimit = n
	}
	return s
}

// Match handles POST /match.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.bindLimit(w, r)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body")
		return
	}

	values, field := preferencesFromBody(body)
	if field != "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid or missing field: "+field)
		return
	}

	prefs, err := preference.New(values)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.match.Match(r.Context(), &prefs, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ScoredNeighborhood, len(results))
	for i := range results {
		items[i] = matchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// ListNeighborhoods handles GET /neighborhoods.
func (s *Server) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	items, err := s.neighborhoods.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out := make([]Neighborhood, len(items))
	for i := range items {
		out[i] = neighborhoodToDTO(&items[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetNeighborhood handles GET /neighborhoods/{id}.
func (s *Server) GetNeighborhood(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter id")
		return
	}

	n, err := s.neighborhoods.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, neighborhoodToDTO(&n))
}

// SearchNeighborhoods handles POST /neighborhoods/search.
func (s *Server) SearchNeighborhoods(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body")
		return
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit < 1 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be at least 1")
			return
		}
		limit = min(*req.Limit, s.maxLimit)
	}

	hits, err := s.discover.Search(r.Context(), req.Query, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out := make([]SearchHit, len(hits))
	for i := range hits {
		out[i] = hitToDTO(&hits[i])
	}
	writeJSON(w, http.StatusOK, out)
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

// bindLimit reads the optional ?limit= query parameter. 0 means no limit.
func (s *Server) bindLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter limit")
		return 0, false
	}
	if limit == nil {
		return 0, true
	}
	if *limit < 1 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be at least 1")
		return 0, false
	}
	return min(*limit, s.maxLimit), true
}

// preferencesFromBody checks presence and numeric type of every attribute in canonical order.
// It returns the first missing or non-numeric field name.
func preferencesFromBody(body map[string]json.RawMessage) (map[attribute.Attribute]float64, string) {
	values := make(map[attribute.Attribute]float64, len(body))
	for _, a := range attribute.All() {
		raw, ok := body[string(a)]
		if !ok {
			return nil, string(a)
		}
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil || v == nil {
			return nil, string(a)
		}
		values[a] = *v
	}
	return values, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidPreferences,
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// fieldErrorHandler names the offending preference field.
func fieldErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
		fmt.Sprintf("Invalid field: %s: %s", fe.Field, fe.Reason))
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
