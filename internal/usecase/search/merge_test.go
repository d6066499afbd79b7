package search

import (
	"testing"

	"github.com/hearthvault/recall/internal/domain/search/result"
)

func match(docID string, score float64) result.Match {
	return result.New(docID, score, result.Metadata{})
}

func TestMerge_FirstSeenWins(t *testing.T) {
	// The duplicate "a" appears later with a higher score; the first
	// occurrence and its score must be kept.
	batches := [][]result.Match{
		{match("a", 0.9), match("b", 0.7)},
		{match("a", 0.95), match("c", 0.6)},
	}

	merged := merge(batches, 10)

	if len(merged) != 3 {
		t.Fatalf("expected 3 results, got %d", len(merged))
	}
	if merged[0].DocID() != "a" || merged[0].Score() != 0.9 {
		t.Errorf("merged[0] = %s@%f, want a@0.9", merged[0].DocID(), merged[0].Score())
	}
	if merged[1].DocID() != "b" || merged[1].Score() != 0.7 {
		t.Errorf("merged[1] = %s@%f, want b@0.7", merged[1].DocID(), merged[1].Score())
	}
	if merged[2].DocID() != "c" || merged[2].Score() != 0.6 {
		t.Errorf("merged[2] = %s@%f, want c@0.6", merged[2].DocID(), merged[2].Score())
	}
}

func TestMerge_SortsDescending(t *testing.T) {
	batches := [][]result.Match{
		{match("low", 0.2)},
		{match("high", 0.99), match("mid", 0.5)},
	}

	merged := merge(batches, 10)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if merged[i].DocID() != id {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].DocID(), id)
		}
	}
}

func TestMerge_Truncates(t *testing.T) {
	batches := [][]result.Match{{
		match("a", 0.9), match("b", 0.8), match("c", 0.7), match("d", 0.6),
	}}

	merged := merge(batches, 2)

	if len(merged) != 2 {
		t.Fatalf("expected 2 results, got %d", len(merged))
	}
	if merged[0].DocID() != "a" || merged[1].DocID() != "b" {
		t.Errorf("unexpected truncation: %s, %s", merged[0].DocID(), merged[1].DocID())
	}
}

func TestMerge_StableForEqualScores(t *testing.T) {
	batches := [][]result.Match{
		{match("first", 0.5)},
		{match("second", 0.5)},
	}

	merged := merge(batches, 10)

	if merged[0].DocID() != "first" || merged[1].DocID() != "second" {
		t.Errorf("equal scores must keep flatten order, got %s then %s",
			merged[0].DocID(), merged[1].DocID())
	}
}

func TestMerge_SkipsNilBatches(t *testing.T) {
	batches := [][]result.Match{
		nil,
		{match("a", 0.4)},
		nil,
	}

	merged := merge(batches, 10)

	if len(merged) != 1 {
		t.Fatalf("expected 1 result, got %d", len(merged))
	}
	if merged[0].SourceQueryIndex() != 1 {
		t.Errorf("source query index = %d, want 1", merged[0].SourceQueryIndex())
	}
}

func TestMerge_Empty(t *testing.T) {
	merged := merge(nil, 10)
	if len(merged) != 0 {
		t.Errorf("expected empty result, got %d", len(merged))
	}
}
