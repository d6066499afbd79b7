// Package index vectorizes content items into the search index, best effort.
package index

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/content"
	"github.com/hearthvault/recall/internal/logger"
	"github.com/hearthvault/recall/internal/policy"
	"github.com/hearthvault/recall/internal/repository/vector"
)

// Status classifies an indexing outcome.
type Status string

const (
	// StatusIndexed means the vector was stored.
	StatusIndexed Status = "indexed"
	// StatusSkipped means the item was deliberately not indexed.
	StatusSkipped Status = "skipped"
	// StatusDegraded means indexing failed; the item remains searchable only
	// if a previous vector exists.
	StatusDegraded Status = "degraded"
)

// defaultRetryDelay is the pause before the single upsert retry.
const defaultRetryDelay = time.Second

// Request is a content item to vectorize.
type Request struct {
	DocID       string
	Title       string
	ContentType content.Type
	Text        string
	Preview     string
	Tags        []string
	UploadedBy  string
	Visibility  string
	UploadedAt  time.Time
}

// Outcome reports what happened to an indexing request. Indexing is best
// effort: provider failures degrade the outcome instead of failing the call.
type Outcome struct {
	Status Status
	Reason string
}

// Service vectorizes content items.
type Service struct {
	embedder   Embedder
	repo       Repository
	dimensions int
	retryDelay time.Duration
}

// New creates an indexing service.
func New(embedder Embedder, repo Repository, dimensions int) *Service {
	return &Service{
		embedder:   embedder,
		repo:       repo,
		dimensions: dimensions,
		retryDelay: defaultRetryDelay,
	}
}

// Index embeds the item's text and upserts the vector with its metadata.
// Private items are skipped. A failed upsert is retried once after a pause.
// Only invalid input and dimension mismatches are returned as errors.
func (s *Service) Index(ctx context.Context, req Request) (Outcome, error) {
	log := logger.FromContext(ctx)

	if err := validate(req); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	if req.Visibility == policy.VisibilityPrivate {
		return Outcome{Status: StatusSkipped, Reason: "private content is not indexed"}, nil
	}

	res, err := s.embedder.Embed(ctx, embeddingText(req))
	if err != nil {
		log.Warn("content embedding failed", zap.String("docId", req.DocID), zap.Error(err))
		return Outcome{Status: StatusDegraded, Reason: "embedding failed"}, nil
	}
	if s.dimensions > 0 && len(res.Embedding) != s.dimensions {
		return Outcome{}, domain.NewDimensionMismatch(len(res.Embedding), s.dimensions)
	}

	item := vector.Item{
		DocID:       req.DocID,
		Title:       req.Title,
		ContentType: string(req.ContentType),
		Preview:     req.Preview,
		Tags:        req.Tags,
		UploadedBy:  req.UploadedBy,
		Visibility:  req.Visibility,
		UploadedAt:  req.UploadedAt,
		Vector:      res.Embedding,
	}

	if err := s.upsertWithRetry(ctx, item); err != nil {
		log.Warn("vector upsert failed after retry", zap.String("docId", req.DocID), zap.Error(err))
		return Outcome{Status: StatusDegraded, Reason: "vector storage failed after retry"}, nil
	}

	return Outcome{Status: StatusIndexed}, nil
}

// Remove deletes a content item's vector from the index.
func (s *Service) Remove(ctx context.Context, docID string) error {
	if strings.TrimSpace(docID) == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidRequest)
	}
	return s.repo.Delete(ctx, docID)
}

// upsertWithRetry tries the upsert twice, pausing between attempts.
func (s *Service) upsertWithRetry(ctx context.Context, item vector.Item) error {
	err := s.repo.Upsert(ctx, item)
	if err == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.retryDelay):
	}

	return s.repo.Upsert(ctx, item)
}

func validate(req Request) error {
	if strings.TrimSpace(req.DocID) == "" {
		return fmt.Errorf("document id is required")
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("text or title is required")
	}
	if req.ContentType != "" && !req.ContentType.IsValid() {
		return fmt.Errorf("unknown content type %q", req.ContentType)
	}
	return nil
}

// embeddingText builds the text to vectorize from the item's fields.
func embeddingText(req Request) string {
	if strings.TrimSpace(req.Text) == "" {
		return req.Title
	}
	if strings.TrimSpace(req.Title) == "" {
		return req.Text
	}
	return req.Title + "\n" + req.Text
}
