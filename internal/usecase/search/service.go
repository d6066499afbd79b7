// Package search orchestrates the retrieval pipeline: query expansion,
// multi-vector embedding, parallel filtered KNN queries, and merge.
package search

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
	"github.com/hearthvault/recall/internal/logger"
	"github.com/hearthvault/recall/internal/metrics"
)

// Config holds the pipeline tuning knobs.
type Config struct {
	Dimensions  int // expected embedding width; anything else is a provider misconfiguration
	DefaultTopK int // candidates for the original query
	VariantTopK int // candidates per expansion variant
	MaxResults  int // final response size cap
}

// AppliedFilters echoes the caller-supplied facets back in the response.
// The access policy's visibility filter is never included.
type AppliedFilters struct {
	ContentType string
	TimeRange   *request.TimeRange
	Tags        []string
}

// Response is the outcome of one retrieval run.
type Response struct {
	Results         []result.Record
	TotalResults    int
	ExpandedQueries []string // variants actually queried, original excluded
	AppliedFilters  AppliedFilters
}

// Service runs the retrieval pipeline.
type Service struct {
	repo     Repository
	embedder Embedder
	expander Expander
	policy   AccessPolicy
	cfg      Config
}

// New creates a search service.
func New(repo Repository, embedder Embedder, expander Expander, policy AccessPolicy, cfg Config) *Service {
	return &Service{repo: repo, embedder: embedder, expander: expander, policy: policy, cfg: cfg}
}

// Search executes the full pipeline for a validated request.
//
// Expansion failure degrades the run to the original query alone. A failed
// embedding of the original query aborts the run; failed variant embeddings
// drop that variant. Vector query failures drop that query's results unless
// every query failed.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	log := logger.FromContext(ctx)

	queries := []string{req.Query()}

	variants, err := s.expander.Expand(ctx, req)
	degraded := err != nil
	if degraded {
		log.Warn("query expansion failed, using original query only", zap.Error(err))
	} else {
		queries = append(queries, variants...)
	}

	filters, err := s.buildFilter(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	vectors, queries, err := s.embedQueries(ctx, queries)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	batches, err := s.runQueries(ctx, vectors, filters)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	merged := merge(batches, s.cfg.MaxResults)
	records := make([]result.Record, 0, len(merged))
	for _, m := range merged {
		records = append(records, result.DisplayRecord(m))
	}

	if degraded {
		metrics.SearchRequestsTotal.WithLabelValues("degraded").Inc()
	} else {
		metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	}

	return &Response{
		Results:         records,
		TotalResults:    len(records),
		ExpandedQueries: queries[1:],
		AppliedFilters: AppliedFilters{
			ContentType: string(req.ContentType()),
			TimeRange:   req.TimeRange(),
			Tags:        req.Tags(),
		},
	}, nil
}

// buildFilter combines the caller's facets with the access policy.
func (s *Service) buildFilter(req *request.Request) (filter.Expression, error) {
	reqExpr, err := buildRequestFilter(req)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	policyExpr, err := s.policy.FilterFor(req.UserID())
	if err != nil {
		return filter.Expression{}, fmt.Errorf("access filter: %w", err)
	}

	combined, err := reqExpr.And(policyExpr)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("combine filters: %w", err)
	}
	return combined, nil
}

// embedQueries vectorizes all queries concurrently. Results land in a
// position-indexed slice so ordering never depends on completion time.
// Returns the vectors and the surviving queries, aligned by index.
func (s *Service) embedQueries(ctx context.Context, queries []string) ([][]float32, []string, error) {
	log := logger.FromContext(ctx)

	vectors := make([][]float32, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			res, err := s.embedder.Embed(ctx, q)
			if err != nil {
				errs[i] = err
				return
			}
			vectors[i] = res.Embedding
		}(i, q)
	}
	wg.Wait()

	if errs[0] != nil {
		return nil, nil, fmt.Errorf("embed query: %w", errs[0])
	}

	keptVectors := make([][]float32, 0, len(queries))
	keptQueries := make([]string, 0, len(queries))
	for i := range queries {
		if errs[i] != nil {
			log.Warn("dropping expansion variant after embedding failure",
				zap.Int("variant", i), zap.Error(errs[i]))
			continue
		}
		if s.cfg.Dimensions > 0 && len(vectors[i]) != s.cfg.Dimensions {
			return nil, nil, domain.NewDimensionMismatch(len(vectors[i]), s.cfg.Dimensions)
		}
		keptVectors = append(keptVectors, vectors[i])
		keptQueries = append(keptQueries, queries[i])
	}

	return keptVectors, keptQueries, nil
}

// runQueries issues one KNN query per vector concurrently. The original
// query (index 0) gets the larger candidate budget.
func (s *Service) runQueries(
	ctx context.Context, vectors [][]float32, filters filter.Expression,
) ([][]result.Match, error) {
	log := logger.FromContext(ctx)

	batches := make([][]result.Match, len(vectors))
	errs := make([]error, len(vectors))

	var wg sync.WaitGroup
	for i, vec := range vectors {
		wg.Add(1)
		go func(i int, vec []float32) {
			defer wg.Done()
			k := s.cfg.VariantTopK
			if i == 0 {
				k = s.cfg.DefaultTopK
			}
			batches[i], errs[i] = s.repo.Query(ctx, vec, filters, k)
		}(i, vec)
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			log.Warn("vector query failed", zap.Int("query", i), zap.Error(err))
			batches[i] = nil
		}
	}
	if failed == len(vectors) {
		return nil, fmt.Errorf("%w: %d queries failed", domain.ErrAllQueriesFailed, failed)
	}

	return batches, nil
}
