// Package vector persists content items in the vector index and runs
// filtered KNN queries against it.
package vector

import (
	"context"
	"fmt"

	"github.com/hearthvault/recall/internal/db"
	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/result"
	"github.com/hearthvault/recall/internal/metrics"
)

// store is the consumer interface for content items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error)
}

// Repo implements the vector index access used by the search, index, and
// health usecases.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates a vector repository.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, indexName: indexName, keyPrefix: keyPrefix}
}

// Query runs a filtered KNN search and returns the top k matches in
// descending similarity order.
func (r *Repo) Query(ctx context.Context, vector []float32, filters filter.Expression, k int) ([]result.Match, error) {
	res, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName,
		Filters:      filters,
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	})
	if err != nil {
		metrics.VectorQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: knn query: %v", domain.ErrVectorStoreError, err)
	}
	metrics.VectorQueriesTotal.WithLabelValues("ok").Inc()

	matches := make([]result.Match, 0, len(res.Entries))
	for _, entry := range res.Entries {
		matches = append(matches, entryToMatch(entry, r.keyPrefix))
	}
	return matches, nil
}

// Upsert stores a content item as a hash under the index key prefix.
func (r *Repo) Upsert(ctx context.Context, item Item) error {
	if item.DocID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidRequest)
	}
	if len(item.Vector) == 0 {
		return fmt.Errorf("%w: vector is required", domain.ErrInvalidRequest)
	}

	key := r.keyPrefix + item.DocID
	if err := r.store.HSet(ctx, key, buildHashFields(item)); err != nil {
		return fmt.Errorf("%w: hset %s: %v", domain.ErrVectorStoreError, key, err)
	}
	return nil
}

// Get returns a stored content item by document id.
func (r *Repo) Get(ctx context.Context, docID string) (Item, error) {
	key := r.keyPrefix + docID

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return Item{}, fmt.Errorf("%w: hgetall %s: %v", domain.ErrVectorStoreError, key, err)
	}
	if len(fields) == 0 {
		return Item{}, domain.ErrContentNotFound
	}
	return parseHashFields(docID, fields), nil
}

// Delete removes a content item from the index.
func (r *Repo) Delete(ctx context.Context, docID string) error {
	key := r.keyPrefix + docID

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: exists %s: %v", domain.ErrVectorStoreError, key, err)
	}
	if !exists {
		return domain.ErrContentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: del %s: %v", domain.ErrVectorStoreError, key, err)
	}
	return nil
}

// Stats returns the number of indexed documents.
func (r *Repo) Stats(ctx context.Context) (int64, error) {
	info, err := r.store.IndexInfo(ctx, r.indexName)
	if err != nil {
		return 0, fmt.Errorf("%w: index info: %v", domain.ErrVectorStoreError, err)
	}
	return info.NumDocs, nil
}
