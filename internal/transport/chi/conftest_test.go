package chi

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hearthvault/recall/internal/domain"
	"github.com/hearthvault/recall/internal/domain/search/filter"
	"github.com/hearthvault/recall/internal/domain/search/request"
	"github.com/hearthvault/recall/internal/domain/search/result"
	"github.com/hearthvault/recall/internal/policy"
	"github.com/hearthvault/recall/internal/repository/vector"
	chatuc "github.com/hearthvault/recall/internal/usecase/chat"
	healthuc "github.com/hearthvault/recall/internal/usecase/health"
	indexuc "github.com/hearthvault/recall/internal/usecase/index"
	searchuc "github.com/hearthvault/recall/internal/usecase/search"
)

// fakeVectorRepo serves the search and index services.
type fakeVectorRepo struct {
	queryFn  func(ctx context.Context, vec []float32, filters filter.Expression, k int) ([]result.Match, error)
	upsertFn func(ctx context.Context, item vector.Item) error
	deleteFn func(ctx context.Context, docID string) error
	statsFn  func(ctx context.Context) (int64, error)
}

func (f *fakeVectorRepo) Query(
	ctx context.Context, vec []float32, filters filter.Expression, k int,
) ([]result.Match, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, vec, filters, k)
	}
	return nil, nil
}

func (f *fakeVectorRepo) Upsert(ctx context.Context, item vector.Item) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, item)
	}
	return nil
}

func (f *fakeVectorRepo) Delete(ctx context.Context, docID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, docID)
	}
	return nil
}

func (f *fakeVectorRepo) Stats(ctx context.Context) (int64, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx)
	}
	return 0, nil
}

type fakeEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if f.embedFn != nil {
		return f.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3, 0.4}}, nil
}

func (f *fakeEmbedder) HealthCheck(context.Context) error { return nil }

type fakeExpander struct {
	expandFn func(ctx context.Context, req *request.Request) ([]string, error)
}

func (f *fakeExpander) Expand(ctx context.Context, req *request.Request) ([]string, error) {
	if f.expandFn != nil {
		return f.expandFn(ctx, req)
	}
	return nil, nil
}

type fakeGenerator struct {
	generateFn func(ctx context.Context, req domain.GenerationRequest) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, req)
	}
	return "a grounded answer", nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

// testEnv bundles the server with its fakes.
type testEnv struct {
	repo     *fakeVectorRepo
	embedder *fakeEmbedder
	expander *fakeExpander
	gen      *fakeGenerator
	pinger   *fakePinger
	router   *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:     &fakeVectorRepo{},
		embedder: &fakeEmbedder{},
		expander: &fakeExpander{},
		gen:      &fakeGenerator{},
		pinger:   &fakePinger{},
	}

	searchSvc := searchuc.New(env.repo, env.embedder, env.expander,
		policy.NewSharedOrOwner(), searchuc.Config{
			Dimensions:  4,
			DefaultTopK: 10,
			VariantTopK: 5,
			MaxResults:  10,
		})
	chatSvc := chatuc.New(searchSvc, env.gen)
	indexSvc := indexuc.New(env.embedder, env.repo, 4)
	healthSvc := healthuc.New(env.pinger, env.embedder, env.repo, 4)

	server := NewServer(searchSvc, chatSvc, indexSvc, healthSvc, zap.NewNop())

	env.router = chi.NewRouter()
	env.router.Use(BearerAuthMiddleware(nil))
	server.RegisterRoutes(env.router)
	return env
}

// asUser adds the dev-mode user header.
func asUser(req *http.Request, userID string) *http.Request {
	req.Header.Set(devUserHeader, userID)
	return req
}
