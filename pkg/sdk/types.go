package sdk

import (
	"fmt"
	"time"
)

// TimeRange bounds results to an upload interval.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SearchRequest is a semantic search query.
type SearchRequest struct {
	Query       string     `json:"query"`
	ContentType string     `json:"contentType,omitempty"`
	ContextID   string     `json:"contextId,omitempty"`
	TimeRange   *TimeRange `json:"timeRange,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Result is one scored archive item.
type Result struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Preview    string   `json:"preview"`
	Tags       []string `json:"tags"`
	UploadedBy string   `json:"uploadedBy"`
	UploadedAt string   `json:"uploadedAt"`
	Score      float64  `json:"score"`
}

// AppliedFilters echoes the facets the server applied.
type AppliedFilters struct {
	ContentType string     `json:"contentType,omitempty"`
	TimeRange   *TimeRange `json:"timeRange,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// SearchMetadata describes how the result set was produced.
type SearchMetadata struct {
	TotalResults    int            `json:"totalResults"`
	ExpandedQueries []string       `json:"expandedQueries"`
	AppliedFilters  AppliedFilters `json:"appliedFilters"`
}

// SearchResponse is the search result set.
type SearchResponse struct {
	Results  []Result       `json:"results"`
	Metadata SearchMetadata `json:"metadata"`
}

// Message is one chat turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a retrieval-grounded question.
type ChatRequest struct {
	Messages  []Message `json:"messages"`
	ContextID string    `json:"contextId,omitempty"`
}

// ChatResponse is a generated answer with its sources.
type ChatResponse struct {
	Content string   `json:"content"`
	Sources []Result `json:"sources"`
}

// IndexRequest is a content item to vectorize.
type IndexRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	Text        string     `json:"text,omitempty"`
	Preview     string     `json:"preview,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Visibility  string     `json:"visibility,omitempty"`
	UploadedAt  *time.Time `json:"uploadedAt,omitempty"`
}

// IndexOutcome reports what happened to an indexing request.
// Status is "indexed", "skipped", or "degraded".
type IndexOutcome struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// HealthIndex reports vector index stats.
type HealthIndex struct {
	TotalVectors int64 `json:"totalVectors"`
	Dimensions   int   `json:"dimensions"`
}

// Health is the server health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Index  HealthIndex       `json:"index"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recall API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}
