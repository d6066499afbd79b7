package index

import (
	"context"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/repository/vector"
)

// Embedder vectorizes content text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Repository persists content vectors.
type Repository interface {
	Upsert(ctx context.Context, item vector.Item) error
	Delete(ctx context.Context, docID string) error
}
