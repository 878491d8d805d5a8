package vetdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/vetdex/internal/db"
	dbRedis "github.com/kailas-cloud/vetdex/internal/db/redis"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/nlp/rules"
	"github.com/kailas-cloud/vetdex/internal/repository/catalog"
	drugrepo "github.com/kailas-cloud/vetdex/internal/repository/drug"
	"github.com/kailas-cloud/vetdex/internal/repository/tabular"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
	facetuc "github.com/kailas-cloud/vetdex/internal/usecase/facet"
	healthuc "github.com/kailas-cloud/vetdex/internal/usecase/health"
	"github.com/kailas-cloud/vetdex/internal/usecase/interpret"
	"github.com/kailas-cloud/vetdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "vetdex:"
)

// Внутренние интерфейсы для подмены в тестах.
type answerUseCase interface {
	Ask(ctx context.Context, req answer.Request) (answer.Answer, error)
	Lookup(ctx context.Context, name string, categories category.Set, a animal.Animal) (answer.Answer, error)
}

type compareUseCase interface {
	Compare(ctx context.Context, first, second string) (compareuc.Comparison, error)
}

// Client is the vetdex SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	answers   answerUseCase
	compare   compareUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the knowledge base and builds the query pipeline.
// Exactly one of WithRecords, WithTabularFile or WithRedis is required.
// The provided context is used for loading.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	switch cfg.sources() {
	case 0:
		return nil, errors.New("vetdex: knowledge base required (use WithRecords, WithTabularFile or WithRedis)")
	case 1:
	default:
		return nil, errors.New("vetdex: use only one of WithRecords, WithTabularFile or WithRedis")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	records, store, err := loadRecords(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := wireClient(records, store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

// loadRecords reads the knowledge base. The store is non-nil only for WithRedis
// and stays open for health checks.
func loadRecords(ctx context.Context, cfg *clientConfig) ([]drug.Record, db.Store, error) {
	switch {
	case cfg.records != nil:
		return drugsToDomain(cfg.records), nil, nil

	case cfg.tabularPath != "":
		records, _, err := tabular.LoadFile(cfg.tabularPath, tabular.Options{
			Separator: cfg.separator,
			Encoding:  cfg.encoding,
			Sheet:     cfg.sheet,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("vetdex: load %s: %w", cfg.tabularPath, err)
		}
		return records, nil, nil

	default:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("vetdex: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("vetdex: database not ready: %w", err)
		}

		prefix := cfg.keyPrefix
		if prefix == "" {
			prefix = defaultKeyPrefix
		}
		records, err := drugrepo.New(store, prefix).Load(ctx)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("vetdex: load snapshot: %w", err)
		}
		return records, store, nil
	}
}

func wireClient(records []drug.Record, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	cat, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("vetdex: %w", err)
	}

	var norm interface {
		interpret.Normalizer
		healthuc.Pinger
	} = rules.New()
	if cfg.normalizer != nil {
		norm = &normalizerAdapter{inner: cfg.normalizer}
	}

	searchSvc := search.New(search.Config{
		Threshold:   cfg.threshold,
		ExactCutoff: cfg.exactCutoff,
	}, nil)
	answers := answer.New(
		cat,
		interpret.New(norm, interpret.Config{}, nil),
		searchSvc,
		facetuc.New(nil, nil),
		nil,
	)

	var dbPinger healthuc.Pinger
	if store != nil {
		dbPinger = store
	}

	return &Client{
		store:     store,
		answers:   answers,
		compare:   compareuc.New(cat, nil),
		healthSvc: healthuc.New(cat, norm, dbPinger),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ask answers a free-text question.
// Returns ErrDrugNotFound when nothing matched and ErrSearchFailed when the
// catalog scan could not complete.
func (c *Client) Ask(ctx context.Context, req AskRequest) (_ Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("ask", start, err, "query", req.Query) }()

	cats, err := category.ParseSet(req.Categories)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	a, err := animal.Parse(req.Animal)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}

	res, err := c.answers.Ask(ctx, answer.Request{Query: req.Query, Categories: cats, Animal: a})
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return answerFromDomain(&res), nil
}

// Lookup returns the requested facets of the drug with exactly this name.
// Use it to resolve a StatusMultiple answer. No categories means the full record.
func (c *Client) Lookup(ctx context.Context, name string, categories []string, animalName string) (_ Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("lookup", start, err, "name", name) }()

	cats, err := category.ParseSet(categories)
	if err != nil {
		return Answer{}, fmt.Errorf("lookup: %w", err)
	}
	a, err := animal.Parse(animalName)
	if err != nil {
		return Answer{}, fmt.Errorf("lookup: %w", err)
	}

	res, err := c.answers.Lookup(ctx, name, cats, a)
	if err != nil {
		return Answer{}, fmt.Errorf("lookup: %w", err)
	}
	return answerFromDomain(&res), nil
}

// Compare reports where two drugs agree on classification, indications and
// mechanism of action.
func (c *Client) Compare(ctx context.Context, first, second string) (_ Comparison, err error) {
	start := time.Now()
	defer func() { c.obs.observe("compare", start, err, "first", first, "second", second) }()

	res, err := c.compare.Compare(ctx, first, second)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare: %w", err)
	}
	return comparisonFromDomain(&res), nil
}
