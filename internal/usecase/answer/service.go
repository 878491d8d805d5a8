// Package answer runs a question through interpretation, search and facet selection.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/facet"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/domain/search/outcome"
	"github.com/kailas-cloud/vetdex/internal/logger"
	"github.com/kailas-cloud/vetdex/internal/metrics"
)

// Request is a free-text question with optional caller hints.
type Request struct {
	Query string
	// Categories, when non-empty, replaces the detected categories.
	Categories category.Set
	// Animal, when set, replaces the detected animal.
	Animal animal.Animal
}

// Answer is the result of a successful question or lookup.
type Answer struct {
	Kind  outcome.Kind
	Query query.Normalized
	// Drugs holds one facet set per matched record, in ranking order.
	Drugs []facet.Set
	Top   []outcome.Candidate
}

// Service wires the pipeline stages together.
type Service struct {
	catalog     Catalog
	interpreter Interpreter
	searcher    Searcher
	selector    Selector
	logger      *zap.Logger
}

// New creates the answer pipeline.
func New(catalog Catalog, interpreter Interpreter, searcher Searcher, selector Selector, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:     catalog,
		interpreter: interpreter,
		searcher:    searcher,
		selector:    selector,
		logger:      logger,
	}
}

// Ask answers a free-text question.
// Returns ErrDrugNotFound for not_found and ErrSearchFailed for the error outcome.
func (s *Service) Ask(ctx context.Context, req Request) (Answer, error) {
	q, err := s.interpreter.Interpret(ctx, req.Query)
	if err != nil {
		return Answer{}, fmt.Errorf("interpret query: %w", err)
	}
	if len(req.Categories) > 0 {
		q.Categories = req.Categories
	}
	if req.Animal.IsSet() {
		q.Animal = req.Animal
	}
	for _, c := range q.Categories.Sorted() {
		metrics.QueryCategoriesTotal.WithLabelValues(string(c)).Inc()
	}

	start := time.Now()
	res := s.searcher.Search(ctx, q.Cleaned, s.catalog.All())
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchOutcomesTotal.WithLabelValues(string(res.Kind)).Inc()

	log := s.requestLogger(ctx)
	switch res.Kind {
	case outcome.NotFound:
		log.Info("drug not found", zap.String("cleaned", q.Cleaned))
		return Answer{}, fmt.Errorf("no drug matches %q: %w", q.Cleaned, domain.ErrDrugNotFound)
	case outcome.Error:
		log.Error("search failed", zap.String("cleaned", q.Cleaned), zap.String("reason", res.Reason))
		return Answer{}, fmt.Errorf("%s: %w", res.Reason, domain.ErrSearchFailed)
	}

	// Каждая запись проходит через селектор и проверку противопоказаний.
	drugs := make([]facet.Set, len(res.Records))
	for i := range res.Records {
		drugs[i] = s.selector.Select(&res.Records[i], q.Categories, q.Animal)
		s.observeWarning(drugs[i])
	}
	if res.Kind == outcome.Multiple {
		log.Info("ambiguous query", zap.String("cleaned", q.Cleaned), zap.Int("drugs", len(drugs)))
	}
	return Answer{Kind: res.Kind, Query: q, Drugs: drugs, Top: res.Top}, nil
}

// Lookup selects facets of the record with exactly the given name.
// Used to resolve a multiple-match answer. Empty categories mean the full record.
func (s *Service) Lookup(ctx context.Context, name string, categories category.Set, a animal.Animal) (Answer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Answer{}, fmt.Errorf("drug name: %w", domain.ErrEmptyQuery)
	}
	rec, ok := s.catalog.FindByExactName(name)
	if !ok {
		return Answer{}, fmt.Errorf("drug %q: %w", name, domain.ErrDrugNotFound)
	}
	if len(categories) == 0 {
		categories = category.NewSet(category.Full)
	}

	set := s.selector.Select(&rec, categories, a)
	s.observeWarning(set)
	s.requestLogger(ctx).Debug("drug looked up", zap.String("name", rec.Name))

	return Answer{
		Kind:  outcome.Single,
		Query: query.Normalized{Raw: name, Cleaned: strings.ToLower(name), Categories: categories, Animal: a},
		Drugs: []facet.Set{set},
	}, nil
}

func (s *Service) observeWarning(set facet.Set) {
	if w := set.Warning(); w != nil {
		metrics.ContraindicationWarningsTotal.WithLabelValues(string(w.Animal)).Inc()
	}
}

// requestLogger prefers the request-scoped logger when the transport set one.
func (s *Service) requestLogger(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
