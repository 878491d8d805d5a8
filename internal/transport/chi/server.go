// Package chi exposes the drug query engine over HTTP.
package chi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/logger"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
)

const maxBodyBytes = 64 << 10

// Server holds the HTTP handlers.
type Server struct {
	answers       *answer.Service
	compare       *compareuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answers *answer.Service,
	compare *compareuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		answers:       answers,
		compare:       compare,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/ask", s.Ask)
		r.Get("/drugs/{name}", s.GetDrug)
		r.Get("/compare", s.Compare)
	})
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	categories, err := category.ParseSet(req.Categories)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	a, err := animal.Parse(req.Animal)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.answers.Ask(r.Context(), answer.Request{
		Query:      req.Query,
		Categories: categories,
		Animal:     a,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToResponse(&res))
}

// GetDrug handles GET /v1/drugs/{name}.
func (s *Server) GetDrug(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi matches on RawPath when it is set, and then the param is still escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	q := r.URL.Query()
	categories, err := category.ParseSet(splitList(q.Get("categories")))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	a, err := animal.Parse(q.Get("animal"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	res, err := s.answers.Lookup(r.Context(), name, categories, a)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToResponse(&res))
}

// Compare handles GET /v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.compare.Compare(r.Context(), q.Get("first"), q.Get("second"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comparisonToResponse(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthToResponse(&report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

// splitList parses a comma-separated query parameter.
func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Split(v, ",")
}
