// Package chat answers questions about the archive, grounded on retrieval.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
	"github.com/hearthvault/recall/internal/logger"
)

const (
	systemPromptGrounded = "You are a helpful family historian. Use this context to answer questions:\n\n%s"
	systemPromptFallback = "You are a helpful assistant for a family legacy archive. " +
		"Answer questions about family history and documents."

	// maxContextSources caps how many retrieved items are folded into the prompt.
	maxContextSources = 5
)

// Request is a chat turn. Messages is the conversation so far; the last user
// message drives retrieval.
type Request struct {
	UserID        string
	Messages      []domain.Message
	ContextItemID string
}

// Response is a generated answer plus the retrieved items it was grounded on.
// Sources is empty when retrieval failed or found nothing.
type Response struct {
	Content string
	Sources []result.Record
}

// Service generates retrieval-grounded chat answers.
type Service struct {
	retriever Retriever
	gen       Generator
}

// New creates a chat service.
func New(retriever Retriever, gen Generator) *Service {
	return &Service{retriever: retriever, gen: gen}
}

// Chat answers the latest user message. Retrieval failure degrades the answer
// to an ungrounded one; generation failure fails the request.
func (s *Service) Chat(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: requesting user is required", domain.ErrUnauthenticated)
	}
	query := latestUserMessage(req.Messages)
	if query == "" {
		return nil, fmt.Errorf("%w: a user message is required", domain.ErrInvalidRequest)
	}

	sources := s.retrieve(ctx, query, req)

	system := systemPromptFallback
	if len(sources) > 0 {
		system = fmt.Sprintf(systemPromptGrounded, contextBlock(sources))
	}

	content, err := s.gen.Generate(ctx, domain.GenerationRequest{
		System:   system,
		Messages: req.Messages,
	})
	if err != nil {
		log.Error("chat completion failed", zap.Error(err))
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return &Response{Content: content, Sources: sources}, nil
}

// retrieve runs the search pipeline for the query. Any failure is logged and
// yields no sources; chat never fails on retrieval.
func (s *Service) retrieve(ctx context.Context, query string, req Request) []result.Record {
	log := logger.FromContext(ctx)

	searchReq, err := request.New(query, req.UserID, "", req.ContextItemID, nil, nil)
	if err != nil {
		log.Warn("chat retrieval skipped", zap.Error(err))
		return nil
	}

	resp, err := s.retriever.Search(ctx, &searchReq)
	if err != nil {
		log.Warn("chat retrieval failed, answering without context", zap.Error(err))
		return nil
	}

	sources := resp.Results
	if len(sources) > maxContextSources {
		sources = sources[:maxContextSources]
	}
	return sources
}

// latestUserMessage returns the content of the last user-authored message.
func latestUserMessage(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}

// contextBlock renders retrieved items as a plain-text list for the prompt.
func contextBlock(sources []result.Record) string {
	var b strings.Builder
	for _, src := range sources {
		fmt.Fprintf(&b, "- %s", src.Title)
		if src.Type != "" {
			fmt.Fprintf(&b, " (%s)", src.Type)
		}
		if src.UploadedAt != "" {
			fmt.Fprintf(&b, ", uploaded %s", src.UploadedAt)
		}
		if len(src.Tags) > 0 {
			fmt.Fprintf(&b, ", tags: %s", strings.Join(src.Tags, ", "))
		}
		if src.Preview != "" {
			fmt.Fprintf(&b, ": %s", src.Preview)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
