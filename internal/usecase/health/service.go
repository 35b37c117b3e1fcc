package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	datasetSize int
	embedding   EmbeddingChecker
	cache       CachePinger
}

// New creates a Service. embedding and cache can be nil.
func New(datasetSize int, embedding EmbeddingChecker, cache CachePinger) *Service {
	return &Service{datasetSize: datasetSize, embedding: embedding, cache: cache}
}

// Check runs health checks against all components. The dataset check fails
// only when the snapshot came up empty; that makes search useless, so it is
// the one check that marks the whole service unhealthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.datasetSize > 0 {
		checks["dataset"] = CheckOK
	} else {
		checks["dataset"] = CheckError
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["dataset"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
