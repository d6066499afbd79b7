// Package result defines search hits and their display form.
package result

// Metadata is the descriptive payload stored alongside a content vector.
// Any field may be absent; display formatting substitutes fallbacks.
type Metadata struct {
	Title       string
	ContentType string
	Preview     string
	Tags        []string
	UploadedBy  string
	UploadedAt  string
}

// Match is a single scored hit from one vector query.
type Match struct {
	docID string
	score float64
	meta  Metadata
}

// New creates a search match.
func New(docID string, score float64, meta Metadata) Match {
	return Match{docID: docID, score: score, meta: meta}
}

// DocID returns the stable content item identity (not the index record id).
func (m *Match) DocID() string { return m.docID }

// Score returns the relevance score. Higher is more relevant.
func (m *Match) Score() float64 { return m.score }

// Meta returns the match metadata.
func (m *Match) Meta() Metadata { return m.meta }

// Merged is a Match that survived cross-list deduplication, annotated with the
// index of the expanded query that produced its kept occurrence.
type Merged struct {
	Match
	sourceQueryIndex int
}

// NewMerged annotates a match with its source query index.
func NewMerged(m Match, sourceQueryIndex int) Merged {
	return Merged{Match: m, sourceQueryIndex: sourceQueryIndex}
}

// SourceQueryIndex returns the expanded-query index (0 = original) whose
// result set contributed this match.
func (m *Merged) SourceQueryIndex() int { return m.sourceQueryIndex }

// Record is the display-ready form of a merged match.
type Record struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Preview    string   `json:"preview"`
	Tags       []string `json:"tags"`
	UploadedBy string   `json:"uploadedBy"`
	UploadedAt string   `json:"uploadedAt"`
	Score      float64  `json:"score"`
}

// DisplayRecord maps a merged match to its display record, substituting
// fallbacks for absent metadata. It never fails.
func DisplayRecord(m Merged) Record {
	meta := m.Meta()

	title := meta.Title
	if title == "" {
		title = "Untitled"
	}
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return Record{
		ID:         m.DocID(),
		Title:      title,
		Type:       meta.ContentType,
		Preview:    meta.Preview,
		Tags:       tags,
		UploadedBy: meta.UploadedBy,
		UploadedAt: meta.UploadedAt,
		Score:      m.Score(),
	}
}
