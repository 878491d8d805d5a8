package answer

import (
	"context"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	"github.com/kailas-cloud/vetdex/internal/domain/facet"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/domain/search/outcome"
)

// Catalog provides read access to the loaded drug records.
type Catalog interface {
	All() []drug.Record
	FindByExactName(name string) (drug.Record, bool)
}

// Interpreter turns a raw question into a normalized query.
type Interpreter interface {
	Interpret(ctx context.Context, raw string) (query.Normalized, error)
}

// Searcher matches cleaned query text against records.
type Searcher interface {
	Search(ctx context.Context, cleaned string, records []drug.Record) outcome.Outcome
}

// Selector picks the requested facets of a record.
type Selector interface {
	Select(rec *drug.Record, categories category.Set, a animal.Animal) facet.Set
}
