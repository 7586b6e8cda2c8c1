// Package chi implements the HTTP transport on the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/mode"
	"github.com/arcadia-cloud/placedex/internal/domain/search/query"
	"github.com/arcadia-cloud/placedex/internal/domain/search/result"
	healthuc "github.com/arcadia-cloud/placedex/internal/usecase/health"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest          = "bad_request"
	codeValidationFailed    = "validation_failed"
	codeUnauthorized        = "unauthorized"
	codeStoreUnavailable    = "store_unavailable"
	codeProviderUnavailable = "provider_unavailable"
	codeSearchFailed        = "search_failed"
	codeInternalError       = "internal_error"
)

// Searcher runs the strategy chain for one query.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (result.Outcome, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg, queryText string) bool

// Server exposes the search API over HTTP.
type Server struct {
	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusBadGateway, codeStoreUnavailable),
		sentinelHandler(domain.ErrProvider, http.StatusBadGateway, codeProviderUnavailable),
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, codeProviderUnavailable),
		sentinelHandler(domain.ErrNoEmbeddings, http.StatusBadGateway, codeSearchFailed),
	}
	return s
}

// Routes mounts the API endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode,omitempty"`
}

type searchResultItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Website   string   `json:"website,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Score     float64  `json:"score"`
}

type searchResponse struct {
	SearchID string             `json:"search_id"`
	Strategy string             `json:"strategy"`
	Results  []searchResultItem `json:"results"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Query echoes the search text on terminal search failures so callers
	// can correlate without keeping request state.
	Query string `json:"query,omitempty"`
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := query.New(req.Query, mode.Mode(req.Mode))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	out, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err, q.Text())
		return
	}

	writeJSON(w, http.StatusOK, outcomeToResponse(out))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func outcomeToResponse(out result.Outcome) searchResponse {
	results := out.Results()
	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = resultToItem(results[i])
	}
	return searchResponse{
		SearchID: out.SearchID(),
		Strategy: string(out.Strategy()),
		Results:  items,
	}
}

func resultToItem(r result.Result) searchResultItem {
	c := r.Candidate()
	attrs := c.Attrs()

	item := searchResultItem{
		ID:      c.ID(),
		Name:    attrs.Name,
		Address: attrs.Address,
		City:    attrs.City,
		State:   attrs.State,
		Phone:   attrs.Phone,
		Website: attrs.Website,
		Score:   r.Score(),
	}
	if attrs.Latitude != 0 || attrs.Longitude != 0 {
		lat, lon := attrs.Latitude, attrs.Longitude
		item.Latitude = &lat
		item.Longitude = &lon
	}
	return item
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrStoreUnavailable,
		domain.ErrProvider,
		domain.ErrMalformedResponse,
		domain.ErrNoEmbeddings,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg, queryText string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeJSON(w, status, errorResponse{
			Code:    code,
			Message: msg,
			Query:   queryText,
		})
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error, queryText string) {
	s.logger.Warn("domain error", zap.Error(err), zap.String("query", queryText))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg, queryText) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
