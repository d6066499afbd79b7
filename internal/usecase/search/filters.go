package search

import (
	"fmt"

	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/request"
)

// Index field names the request filters map onto.
const (
	fieldContentType = "contentType"
	fieldTags        = "tags"
	fieldTimestamp   = "timestamp"
)

// buildRequestFilter translates the caller-supplied facets into must
// conditions. The access policy's visibility filter is combined separately.
func buildRequestFilter(req *request.Request) (filter.Expression, error) {
	var must []filter.Condition

	if ct := req.ContentType(); ct != "" {
		cond, err := filter.NewMatch(fieldContentType, string(ct))
		if err != nil {
			return filter.Expression{}, fmt.Errorf("content type filter: %w", err)
		}
		must = append(must, cond)
	}

	if tr := req.TimeRange(); tr != nil {
		rng, err := filter.NewBetween(
			float64(tr.Start.UnixMilli()),
			float64(tr.End.UnixMilli()),
		)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("time range filter: %w", err)
		}
		cond, err := filter.NewRange(fieldTimestamp, rng)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("time range filter: %w", err)
		}
		must = append(must, cond)
	}

	if tags := req.Tags(); len(tags) > 0 {
		cond, err := filter.NewMatchAny(fieldTags, tags)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("tags filter: %w", err)
		}
		must = append(must, cond)
	}

	return filter.NewExpression(must, nil, nil)
}
