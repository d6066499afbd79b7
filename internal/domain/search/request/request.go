// Package request defines the validated search input.
package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/hearthvault/recall/internal/domain/content"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	// MaxTags is the maximum number of tag filters per request.
	MaxTags = 16
)

// TimeRange bounds results to an upload interval. Start must not be after End.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Request is a validated search query against the archive.
type Request struct {
	query         string
	userID        string
	contentType   content.Type
	contextItemID string
	timeRange     *TimeRange
	tags          []string
}

// New validates and normalizes search parameters.
// The query is trimmed; empty tags are dropped. contentType may be empty.
func New(
	query, userID string,
	contentType content.Type,
	contextItemID string,
	timeRange *TimeRange,
	tags []string,
) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if userID == "" {
		return Request{}, fmt.Errorf("requesting user is required")
	}
	if contentType != "" && !contentType.IsValid() {
		return Request{}, fmt.Errorf("unknown content type %q", contentType)
	}
	if timeRange != nil && timeRange.Start.After(timeRange.End) {
		return Request{}, fmt.Errorf("time range start is after end")
	}

	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) > MaxTags {
		return Request{}, fmt.Errorf("too many tags (max %d)", MaxTags)
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}

	return Request{
		query:         query,
		userID:        userID,
		contentType:   contentType,
		contextItemID: contextItemID,
		timeRange:     timeRange,
		tags:          cleaned,
	}, nil
}

// Query returns the trimmed search query text.
func (r *Request) Query() string { return r.query }

// UserID returns the requesting user identity.
func (r *Request) UserID() string { return r.userID }

// ContentType returns the optional content kind filter ("" when absent).
func (r *Request) ContentType() content.Type { return r.contentType }

// ContextItemID returns the optional content item that biases query expansion.
func (r *Request) ContextItemID() string { return r.contextItemID }

// TimeRange returns the optional upload time bounds (nil when absent).
func (r *Request) TimeRange() *TimeRange { return r.timeRange }

// Tags returns the tag filter values (nil when absent).
func (r *Request) Tags() []string { return r.tags }
