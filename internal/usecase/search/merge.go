package search

import (
	"sort"

	"github.com/hearthvault/recall/internal/domain/search/result"
)

// merge flattens per-query result batches in query order, deduplicates by
// document id, ranks by similarity, and truncates to limit.
//
// Deduplication is first-seen: when the same document appears under several
// queries, the occurrence from the earliest query (and earliest rank within
// it) wins, including its score.
func merge(batches [][]result.Match, limit int) []result.Merged {
	seen := make(map[string]struct{})
	merged := make([]result.Merged, 0, limit)

	for qi, batch := range batches {
		for _, m := range batch {
			if _, ok := seen[m.DocID()]; ok {
				continue
			}
			seen[m.DocID()] = struct{}{}
			merged = append(merged, result.NewMerged(m, qi))
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
