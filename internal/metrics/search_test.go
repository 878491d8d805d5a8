package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics() // must not panic on duplicate registration

	SearchOutcomesTotal.WithLabelValues("single").Inc()
	if v := testutil.ToFloat64(SearchOutcomesTotal.WithLabelValues("single")); v < 1 {
		t.Errorf("expected search_outcomes_total >= 1, got %f", v)
	}

	CatalogRecords.Set(42)
	if v := testutil.ToFloat64(CatalogRecords); v != 42 {
		t.Errorf("expected catalog_records = 42, got %f", v)
	}
}
