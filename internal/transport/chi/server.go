// Package chi exposes the retrieval service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/result"
	chatuc "github.com/hearthvault/recall/internal/usecase/chat"
	healthuc "github.com/hearthvault/recall/internal/usecase/health"
	indexuc "github.com/hearthvault/recall/internal/usecase/index"
	searchuc "github.com/hearthvault/recall/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the usecase services.
type Server struct {
	search        *searchuc.Service
	chat          *chatuc.Service
	indexer       *indexuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	chat *chatuc.Service,
	indexer *indexuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		chat:    chat,
		indexer: indexer,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnauthenticated, http.StatusUnauthorized, codeUnauthenticated),
		sentinelHandler(domain.ErrContentNotFound, http.StatusNotFound, codeContentNotFound),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusInternalServerError, codeDimensionMismatch),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, codeGenerationProvider),
		sentinelHandler(domain.ErrAllQueriesFailed, http.StatusBadGateway, codeAllQueriesFailed),
		sentinelHandler(domain.ErrVectorStoreError, http.StatusBadGateway, codeVectorStore),
	}
	return s
}

// RegisterRoutes mounts the API routes onto the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Post("/chat", s.handleChat)
		r.Post("/index", s.handleIndex)
		r.Delete("/index/{id}", s.handleDeleteIndex)
	})
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleSearch handles POST /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return
	}

	var dto SearchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := searchRequestFromDTO(dto, userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// handleChat handles POST /api/v1/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return
	}

	var dto ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	messages, err := messagesFromDTO(dto.Messages)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.chat.Chat(r.Context(), chatuc.Request{
		UserID:        userID,
		Messages:      messages,
		ContextItemID: dto.ContextID,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := resp.Sources
	if sources == nil {
		sources = []result.Record{}
	}
	writeJSON(w, http.StatusOK, ChatResponseDTO{Content: resp.Content, Sources: sources})
}

// handleIndex handles POST /api/v1/index.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return
	}

	var dto IndexRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	outcome, err := s.indexer.Index(r.Context(), indexRequestFromDTO(dto, userID))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IndexResponseDTO{
		Status: string(outcome.Status),
		Reason: outcome.Reason,
	})
}

// handleDeleteIndex handles DELETE /api/v1/index/{id}.
func (s *Server) handleDeleteIndex(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "authentication required")
		return
	}

	if err := s.indexer.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponseDTO{
		Status: string(report.Status),
		Checks: checks,
		Index: HealthIndexDTO{
			TotalVectors: report.TotalVectors,
			Dimensions:   report.Dimensions,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrUnauthenticated,
		domain.ErrContentNotFound,
		domain.ErrDimensionMismatch,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
		domain.ErrAllQueriesFailed,
		domain.ErrVectorStoreError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
