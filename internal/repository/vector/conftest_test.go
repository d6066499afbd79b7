package vector

import (
	"context"
	"testing"
	"time"

	"github.com/hearthvault/recall/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn      func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn   func(ctx context.Context, key string) (map[string]string, error)
	delFn       func(ctx context.Context, key string) error
	existsFn    func(ctx context.Context, key string) (bool, error)
	searchKNNFn func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	indexInfoFn func(ctx context.Context, name string) (*db.IndexInfo, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	if m.indexInfoFn != nil {
		return m.indexInfoFn(ctx, name)
	}
	return &db.IndexInfo{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "recall:content:idx", "recall:content:")
	return repo, ms
}

func testItem(t *testing.T) Item {
	t.Helper()
	return Item{
		DocID:       "doc-1",
		Title:       "Grandma's kitchen",
		ContentType: "image",
		Preview:     "A photo of the old kitchen",
		Tags:        []string{"family", "1980s"},
		UploadedBy:  "user-1",
		Visibility:  "shared",
		UploadedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Vector:      testVector(8),
	}
}

func testVector(dim int) []float32 {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = float32(i) * 0.001
	}
	return vec
}
