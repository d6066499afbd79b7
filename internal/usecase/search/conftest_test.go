package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
	"github.com/hearthvault/recall/internal/policy"
)

// mockRepo implements Repository; calls are recorded per invocation.
type mockRepo struct {
	mu      sync.Mutex
	queryFn func(ctx context.Context, vector []float32, filters filter.Expression, k int) ([]result.Match, error)
	calls   []repoCall
}

type repoCall struct {
	vector  []float32
	filters filter.Expression
	k       int
}

func (m *mockRepo) Query(
	ctx context.Context, vector []float32, filters filter.Expression, k int,
) ([]result.Match, error) {
	m.mu.Lock()
	m.calls = append(m.calls, repoCall{vector: vector, filters: filters, k: k})
	m.mu.Unlock()
	if m.queryFn != nil {
		return m.queryFn(ctx, vector, filters, k)
	}
	return nil, nil
}

func (m *mockRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockEmbedder implements Embedder with per-text vectors.
type mockEmbedder struct {
	mu      sync.Mutex
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3, 0.4}}, nil
}

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockExpander implements Expander.
type mockExpander struct {
	expandFn func(ctx context.Context, req *request.Request) ([]string, error)
}

func (m *mockExpander) Expand(ctx context.Context, req *request.Request) ([]string, error) {
	if m.expandFn != nil {
		return m.expandFn(ctx, req)
	}
	return nil, nil
}

func testConfig() Config {
	return Config{
		Dimensions:  4,
		DefaultTopK: 10,
		VariantTopK: 5,
		MaxResults:  10,
	}
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder, *mockExpander) {
	t.Helper()
	repo := &mockRepo{}
	embedder := &mockEmbedder{}
	expander := &mockExpander{}
	svc := New(repo, embedder, expander, policy.NewSharedOrOwner(), testConfig())
	return svc, repo, embedder, expander
}

func searchRequest(t *testing.T, query string) *request.Request {
	t.Helper()
	req, err := request.New(query, "user-1", "", "", nil, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return &req
}

func searchRequestWithFacets(t *testing.T) *request.Request {
	t.Helper()
	tr := &request.TimeRange{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	req, err := request.New("family reunion", "user-1", "image", "", tr, []string{"summer", "lake"})
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return &req
}
