package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals malformed caller input, rejected before any provider call.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthenticated signals a missing or unresolvable requesting user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a text-generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrVectorStoreError signals a vector index failure.
	ErrVectorStoreError = errors.New("vector store error")
	// ErrDimensionMismatch signals an embedding whose dimension does not match the
	// index. A deployment bug, not a transient outage: never retried.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrAllQueriesFailed signals that every vector query in a search failed.
	ErrAllQueriesFailed = errors.New("all vector queries failed")
	// ErrContentNotFound signals a missing content item.
	ErrContentNotFound = errors.New("content not found")
)

// DimensionMismatchError wraps ErrDimensionMismatch with the observed and expected dimensions.
type DimensionMismatchError struct {
	Got  int
	Want int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: got %d, index expects %d", ErrDimensionMismatch.Error(), e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionMismatch creates a dimension mismatch error.
func NewDimensionMismatch(got, want int) error {
	return &DimensionMismatchError{Got: got, Want: want}
}
