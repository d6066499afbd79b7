package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results and index statistics.
type Report struct {
	Status       Status
	Checks       map[string]CheckResult
	TotalVectors int64
	Dimensions   int
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	embedding  EmbeddingChecker
	stats      IndexStats
	dimensions int
}

// New creates a Service. embedding and stats can be nil.
func New(db DBPinger, embedding EmbeddingChecker, stats IndexStats, dimensions int) *Service {
	return &Service{db: db, embedding: embedding, stats: stats, dimensions: dimensions}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	report := Report{Checks: checks, Dimensions: s.dimensions}

	if s.stats != nil {
		if n, err := s.stats.Stats(ctx); err != nil {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
			report.TotalVectors = n
		}
	}

	report.Status = Healthy
	for _, v := range checks {
		if v == CheckError {
			report.Status = Degraded
			break
		}
	}

	return report
}
