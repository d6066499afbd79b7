package expand

import (
	"context"

	"github.com/hearthvault/recall/internal/domain"
)

// Generator produces text completions for query expansion.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}
