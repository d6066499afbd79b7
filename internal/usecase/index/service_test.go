package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/repository/vector"
)

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls = append(m.calls, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3, 0.4}}, nil
}

type mockRepo struct {
	upsertFn func(ctx context.Context, item vector.Item) error
	deleteFn func(ctx context.Context, docID string) error
	upserts  []vector.Item
	deletes  []string
}

func (m *mockRepo) Upsert(ctx context.Context, item vector.Item) error {
	m.upserts = append(m.upserts, item)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, item)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, docID string) error {
	m.deletes = append(m.deletes, docID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, docID)
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *mockEmbedder, *mockRepo) {
	t.Helper()
	embedder := &mockEmbedder{}
	repo := &mockRepo{}
	svc := New(embedder, repo, 4)
	svc.retryDelay = 0
	return svc, embedder, repo
}

func indexRequest() Request {
	return Request{
		DocID:       "doc-1",
		Title:       "Summer 1985",
		ContentType: "image",
		Text:        "The lake house trip with the cousins.",
		Tags:        []string{"summer", "lake"},
		UploadedBy:  "user-1",
		Visibility:  "shared",
		UploadedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIndex_StoresVectorWithMetadata(t *testing.T) {
	svc, embedder, repo := newTestService(t)

	outcome, err := svc.Index(context.Background(), indexRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusIndexed {
		t.Errorf("status = %s, want %s", outcome.Status, StatusIndexed)
	}

	if len(embedder.calls) != 1 || embedder.calls[0] != "Summer 1985\nThe lake house trip with the cousins." {
		t.Errorf("unexpected embedding text: %q", embedder.calls)
	}

	if len(repo.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(repo.upserts))
	}
	item := repo.upserts[0]
	if item.DocID != "doc-1" || item.Title != "Summer 1985" || item.Visibility != "shared" {
		t.Errorf("unexpected item: %+v", item)
	}
	if len(item.Vector) != 4 {
		t.Errorf("vector length = %d, want 4", len(item.Vector))
	}
}

func TestIndex_SkipsPrivateContent(t *testing.T) {
	svc, embedder, repo := newTestService(t)

	req := indexRequest()
	req.Visibility = "private"

	outcome, err := svc.Index(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusSkipped {
		t.Errorf("status = %s, want %s", outcome.Status, StatusSkipped)
	}
	if len(embedder.calls) != 0 || len(repo.upserts) != 0 {
		t.Error("private content must not touch the embedder or the index")
	}
}

func TestIndex_EmbeddingFailureDegrades(t *testing.T) {
	svc, embedder, repo := newTestService(t)
	embedder.embedFn = func(context.Context, string) (domain.EmbeddingResult, error) {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
	}

	outcome, err := svc.Index(context.Background(), indexRequest())
	if err != nil {
		t.Fatalf("best-effort indexing must not fail: %v", err)
	}
	if outcome.Status != StatusDegraded || outcome.Reason != "embedding failed" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(repo.upserts) != 0 {
		t.Error("no upsert expected after embedding failure")
	}
}

func TestIndex_UpsertRetriesOnce(t *testing.T) {
	svc, _, repo := newTestService(t)

	attempts := 0
	repo.upsertFn = func(context.Context, vector.Item) error {
		attempts++
		if attempts == 1 {
			return domain.ErrVectorStoreError
		}
		return nil
	}

	outcome, err := svc.Index(context.Background(), indexRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusIndexed {
		t.Errorf("status = %s, want %s", outcome.Status, StatusIndexed)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestIndex_UpsertFailureAfterRetryDegrades(t *testing.T) {
	svc, _, repo := newTestService(t)
	repo.upsertFn = func(context.Context, vector.Item) error {
		return domain.ErrVectorStoreError
	}

	outcome, err := svc.Index(context.Background(), indexRequest())
	if err != nil {
		t.Fatalf("best-effort indexing must not fail: %v", err)
	}
	if outcome.Status != StatusDegraded || outcome.Reason != "vector storage failed after retry" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(repo.upserts) != 2 {
		t.Errorf("expected 2 attempts, got %d", len(repo.upserts))
	}
}

func TestIndex_DimensionMismatchIsFatal(t *testing.T) {
	svc, embedder, repo := newTestService(t)
	embedder.embedFn = func(context.Context, string) (domain.EmbeddingResult, error) {
		return domain.EmbeddingResult{Embedding: []float32{1, 2}}, nil
	}

	_, err := svc.Index(context.Background(), indexRequest())
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Error("no upsert expected after dimension mismatch")
	}
}

func TestIndex_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing doc id", func(r *Request) { r.DocID = " " }},
		{"no text or title", func(r *Request) { r.Text, r.Title = "", "" }},
		{"unknown content type", func(r *Request) { r.ContentType = "spreadsheet" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := indexRequest()
			tt.mutate(&req)
			_, err := svc.Index(context.Background(), req)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestIndex_TitleOnlyFallsBackToTitle(t *testing.T) {
	svc, embedder, _ := newTestService(t)

	req := indexRequest()
	req.Text = ""

	if _, err := svc.Index(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.calls[0] != "Summer 1985" {
		t.Errorf("embedding text = %q, want the title", embedder.calls[0])
	}
}

func TestRemove(t *testing.T) {
	svc, _, repo := newTestService(t)

	if err := svc.Remove(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deletes) != 1 || repo.deletes[0] != "doc-1" {
		t.Errorf("unexpected deletes: %v", repo.deletes)
	}
}

func TestRemove_EmptyID(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Remove(context.Background(), "  ")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRemove_NotFoundPassesThrough(t *testing.T) {
	svc, _, repo := newTestService(t)
	repo.deleteFn = func(context.Context, string) error {
		return domain.ErrContentNotFound
	}

	err := svc.Remove(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}
