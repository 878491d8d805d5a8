package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain"
)

// ErrorCode is the machine-readable error code in an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest            ErrorCode = "bad_request"
	CodeValidationFailed      ErrorCode = "validation_failed"
	CodeUnauthorized          ErrorCode = "unauthorized"
	CodeNotFound              ErrorCode = "not_found"
	CodeMethodNotAllowed      ErrorCode = "method_not_allowed"
	CodeDrugNotFound          ErrorCode = "drug_not_found"
	CodeRateLimited           ErrorCode = "rate_limited"
	CodeNormalizerUnavailable ErrorCode = "normalizer_unavailable"
	CodeSearchFailed          ErrorCode = "search_failed"
	CodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// clientSentinels are the errors whose text is safe to show to clients.
var clientSentinels = []error{
	domain.ErrEmptyQuery,
	domain.ErrInvalidCategory,
	domain.ErrInvalidAnimal,
	domain.ErrDrugNotFound,
	domain.ErrNormalizerUnavailable,
	domain.ErrSearchFailed,
	domain.ErrCatalogEmpty,
}

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCategory, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidAnimal, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrDrugNotFound, http.StatusNotFound, CodeDrugNotFound),
		sentinelHandler(domain.ErrNormalizerUnavailable, http.StatusServiceUnavailable, CodeNormalizerUnavailable),
		sentinelHandler(domain.ErrSearchFailed, http.StatusInternalServerError, CodeSearchFailed),
	}
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
	for _, s := range clientSentinels {
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

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
