package vector

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hearthvault/recall/internal/db"
	"github.com/hearthvault/recall/internal/domain/search/result"
)

// Hash field names. Tag values with commas are not supported: the tags
// field uses "," as its TAG separator in the index schema.
const (
	fieldDocID       = "documentId"
	fieldTitle       = "title"
	fieldContentType = "contentType"
	fieldPreview     = "preview"
	fieldTags        = "tags"
	fieldUploadedBy  = "uploadedBy"
	fieldVisibility  = "visibility"
	fieldUploadedAt  = "uploadedAt"
	fieldTimestamp   = "timestamp"
	fieldVector      = "vector"

	tagSeparator = ","
)

// returnFields lists the hash fields fetched per KNN hit. The raw vector
// is deliberately excluded.
var returnFields = []string{
	fieldDocID,
	fieldTitle,
	fieldContentType,
	fieldPreview,
	fieldTags,
	fieldUploadedBy,
	fieldUploadedAt,
}

// Item is a content item as stored in the vector index.
type Item struct {
	DocID       string
	Title       string
	ContentType string
	Preview     string
	Tags        []string
	UploadedBy  string
	Visibility  string
	UploadedAt  time.Time
	Vector      []float32
}

// buildHashFields converts an Item into a flat map[string]string for HSET.
func buildHashFields(item Item) map[string]string {
	m := map[string]string{
		fieldDocID:       item.DocID,
		fieldTitle:       item.Title,
		fieldContentType: item.ContentType,
		fieldPreview:     item.Preview,
		fieldTags:        strings.Join(item.Tags, tagSeparator),
		fieldUploadedBy:  item.UploadedBy,
		fieldVisibility:  item.Visibility,
		fieldVector:      vectorToBytes(item.Vector),
	}
	if !item.UploadedAt.IsZero() {
		m[fieldUploadedAt] = item.UploadedAt.UTC().Format(time.RFC3339)
		m[fieldTimestamp] = strconv.FormatInt(item.UploadedAt.UnixMilli(), 10)
	}
	return m
}

// parseHashFields converts a flat hash map back into an Item.
func parseHashFields(docID string, m map[string]string) Item {
	item := Item{
		DocID:       docID,
		Title:       m[fieldTitle],
		ContentType: m[fieldContentType],
		Preview:     m[fieldPreview],
		Tags:        splitTags(m[fieldTags]),
		UploadedBy:  m[fieldUploadedBy],
		Visibility:  m[fieldVisibility],
		Vector:      bytesToVector(m[fieldVector]),
	}
	if ts, err := time.Parse(time.RFC3339, m[fieldUploadedAt]); err == nil {
		item.UploadedAt = ts
	}
	if id := m[fieldDocID]; id != "" {
		item.DocID = id
	}
	return item
}

// entryToMatch converts a search hit into a domain match. The document id
// falls back to the hash key minus the index prefix when the documentId
// field is absent.
func entryToMatch(entry db.SearchEntry, keyPrefix string) result.Match {
	docID := entry.Fields[fieldDocID]
	if docID == "" {
		docID = strings.TrimPrefix(entry.Key, keyPrefix)
	}

	meta := result.Metadata{
		Title:       entry.Fields[fieldTitle],
		ContentType: entry.Fields[fieldContentType],
		Preview:     entry.Fields[fieldPreview],
		Tags:        splitTags(entry.Fields[fieldTags]),
		UploadedBy:  entry.Fields[fieldUploadedBy],
		UploadedAt:  entry.Fields[fieldUploadedAt],
	}

	return result.New(docID, entry.Score, meta)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, tagSeparator)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 || len(b) == 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
