package chat

import (
	"context"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/usecase/search"
)

// Retriever runs the search pipeline to ground the answer.
type Retriever interface {
	Search(ctx context.Context, req *request.Request) (*search.Response, error)
}

// Generator produces the chat completion.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}
