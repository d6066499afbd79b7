package chi

import (
	"fmt"
	"time"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/content"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
	indexuc "github.com/hearthvault/recall/internal/usecase/index"
	searchuc "github.com/hearthvault/recall/internal/usecase/search"
)

// errorCode is a stable machine-readable error identifier.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthenticated    errorCode = "unauthenticated"
	codeContentNotFound    errorCode = "content_not_found"
	codeEmbeddingProvider  errorCode = "embedding_provider_error"
	codeGenerationProvider errorCode = "generation_provider_error"
	codeVectorStore        errorCode = "vector_store_error"
	codeAllQueriesFailed   errorCode = "all_queries_failed"
	codeDimensionMismatch  errorCode = "dimension_mismatch"
	codeInternal           errorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// TimeRangeDTO bounds results to an upload interval.
type TimeRangeDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SearchRequestDTO is the POST /search body.
type SearchRequestDTO struct {
	Query       string        `json:"query"`
	ContentType string        `json:"contentType,omitempty"`
	ContextID   string        `json:"contextId,omitempty"`
	TimeRange   *TimeRangeDTO `json:"timeRange,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// AppliedFiltersDTO echoes the caller's facets.
type AppliedFiltersDTO struct {
	ContentType string        `json:"contentType,omitempty"`
	TimeRange   *TimeRangeDTO `json:"timeRange,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// SearchMetadataDTO describes how the result set was produced.
type SearchMetadataDTO struct {
	TotalResults    int               `json:"totalResults"`
	ExpandedQueries []string          `json:"expandedQueries"`
	AppliedFilters  AppliedFiltersDTO `json:"appliedFilters"`
}

// SearchResponseDTO is the POST /search response.
type SearchResponseDTO struct {
	Results  []result.Record   `json:"results"`
	Metadata SearchMetadataDTO `json:"metadata"`
}

// MessageDTO is one chat turn.
type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequestDTO is the POST /chat body.
type ChatRequestDTO struct {
	Messages  []MessageDTO `json:"messages"`
	ContextID string       `json:"contextId,omitempty"`
}

// ChatResponseDTO is the POST /chat response.
type ChatResponseDTO struct {
	Content string          `json:"content"`
	Sources []result.Record `json:"sources"`
}

// IndexRequestDTO is the POST /index body.
type IndexRequestDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	Text        string     `json:"text,omitempty"`
	Preview     string     `json:"preview,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`
	UploadedAt  *time.Time `json:"uploadedAt,omitempty"`
}

// IndexResponseDTO is the POST /index response.
type IndexResponseDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// HealthIndexDTO reports vector index stats.
type HealthIndexDTO struct {
	TotalVectors int64 `json:"totalVectors"`
	Dimensions   int   `json:"dimensions"`
}

// HealthResponseDTO is the GET /health response.
type HealthResponseDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Index  HealthIndexDTO    `json:"index"`
}

func searchRequestFromDTO(dto SearchRequestDTO, userID string) (request.Request, error) {
	var tr *request.TimeRange
	if dto.TimeRange != nil {
		tr = &request.TimeRange{Start: dto.TimeRange.Start, End: dto.TimeRange.End}
	}

	req, err := request.New(
		dto.Query, userID, content.Type(dto.ContentType), dto.ContextID, tr, dto.Tags,
	)
	if err != nil {
		return request.Request{}, fmt.Errorf("build search request: %w", err)
	}
	return req, nil
}

func searchResponseToDTO(resp *searchuc.Response) SearchResponseDTO {
	results := resp.Results
	if results == nil {
		results = []result.Record{}
	}
	expanded := resp.ExpandedQueries
	if expanded == nil {
		expanded = []string{}
	}

	af := AppliedFiltersDTO{
		ContentType: resp.AppliedFilters.ContentType,
		Tags:        resp.AppliedFilters.Tags,
	}
	if tr := resp.AppliedFilters.TimeRange; tr != nil {
		af.TimeRange = &TimeRangeDTO{Start: tr.Start, End: tr.End}
	}

	return SearchResponseDTO{
		Results: results,
		Metadata: SearchMetadataDTO{
			TotalResults:    resp.TotalResults,
			ExpandedQueries: expanded,
			AppliedFilters:  af,
		},
	}
}

func messagesFromDTO(dtos []MessageDTO) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(dtos))
	for _, m := range dtos {
		role := domain.Role(m.Role)
		if role != domain.RoleUser && role != domain.RoleAssistant {
			return nil, fmt.Errorf("unknown message role %q", m.Role)
		}
		messages = append(messages, domain.Message{Role: role, Content: m.Content})
	}
	return messages, nil
}

func indexRequestFromDTO(dto IndexRequestDTO, userID string) indexuc.Request {
	req := indexuc.Request{
		DocID:       dto.ID,
		Title:       dto.Title,
		ContentType: content.Type(dto.ContentType),
		Text:        dto.Text,
		Preview:     dto.Preview,
		Tags:        dto.Tags,
		UploadedBy:  userID,
		Visibility:  dto.Visibility,
	}
	if dto.UploadedAt != nil {
		req.UploadedAt = *dto.UploadedAt
	}
	return req
}
