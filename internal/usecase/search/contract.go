package search

import (
	"context"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
)

// Repository runs filtered KNN queries against the vector index.
type Repository interface {
	Query(ctx context.Context, vector []float32, filters filter.Expression, k int) ([]result.Match, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Expander rewrites a query into semantic variations.
type Expander interface {
	Expand(ctx context.Context, req *request.Request) ([]string, error)
}

// AccessPolicy produces the visibility filter for a requesting user.
type AccessPolicy interface {
	FilterFor(userID string) (filter.Expression, error)
}
