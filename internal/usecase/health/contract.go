package health

import "context"

// DBPinger checks vector store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexStats reads vector index statistics.
type IndexStats interface {
	Stats(ctx context.Context) (int64, error)
}
