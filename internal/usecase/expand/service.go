// Package expand rewrites a search query into semantic variations so the
// retrieval pipeline can cast a wider net over the archive.
package expand

import (
	"context"
	"fmt"
	"strings"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/request"
)

const (
	expansionMaxTokens   = 150
	expansionTemperature = 0.7
)

// Service generates semantic variations of a search query.
type Service struct {
	gen         Generator
	maxVariants int
}

// New creates a query expansion service.
func New(gen Generator, maxVariants int) *Service {
	return &Service{gen: gen, maxVariants: maxVariants}
}

// Expand returns up to maxVariants rewritten queries. The original query is
// not included in the result.
func (s *Service) Expand(ctx context.Context, req *request.Request) ([]string, error) {
	out, err := s.gen.Generate(ctx, domain.GenerationRequest{
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: BuildPrompt(req)},
		},
		MaxTokens:   expansionMaxTokens,
		Temperature: expansionTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("expand query: %w", err)
	}

	return parseVariants(out, s.maxVariants), nil
}

// BuildPrompt assembles the expansion prompt from the query and its hints.
func BuildPrompt(req *request.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Original query: %q\n", req.Query())
	if req.ContextItemID() != "" {
		b.WriteString("The user is asking about a specific item in their archive.\n")
	}
	if req.ContentType() != "" {
		fmt.Fprintf(&b, "Focus on %s content.\n", req.ContentType())
	}
	if tags := req.Tags(); len(tags) > 0 {
		fmt.Fprintf(&b, "Related tags: %s\n", strings.Join(tags, ", "))
	}
	b.WriteString("Generate 3 semantic search variations for family history context. One per line, no numbering.")

	return b.String()
}

// parseVariants splits the completion into one variant per line, dropping
// blanks and capping at maxVariants.
func parseVariants(out string, maxVariants int) []string {
	lines := strings.Split(out, "\n")
	variants := make([]string, 0, len(lines))
	for _, line := range lines {
		v := strings.TrimSpace(line)
		if v == "" {
			continue
		}
		variants = append(variants, v)
		if len(variants) == maxVariants {
			break
		}
	}
	return variants
}
