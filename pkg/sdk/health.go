package vetdex

import (
	"context"

	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "ok", "degraded", "error"
	Records int               // drugs in the knowledge base
	Checks  map[string]string // component → "ok"/"error"
}

// Health checks the knowledge base, the normalizer and, for WithRedis, the database.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Records: report.Records,
		Checks:  checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
