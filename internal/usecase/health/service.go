package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog is unusable.
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
	Status  Status
	Records int
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog    CatalogCounter
	normalizer Pinger
	db         Pinger
}

// New creates a Service. normalizer and db can be nil.
func New(catalog CatalogCounter, normalizer, db Pinger) *Service {
	return &Service{catalog: catalog, normalizer: normalizer, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	records := s.catalog.Len()
	checks["catalog"] = CheckOK
	if records == 0 {
		checks["catalog"] = CheckError
	}

	if s.normalizer != nil {
		checks["normalizer"] = ping(ctx, s.normalizer)
	}
	if s.db != nil {
		checks["database"] = ping(ctx, s.db)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["catalog"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Records: records, Checks: checks}
}

func ping(ctx context.Context, p Pinger) CheckResult {
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
