package vetdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
	"github.com/kailas-cloud/vetdex/internal/usecase/answer"
	compareuc "github.com/kailas-cloud/vetdex/internal/usecase/compare"
)

func drugsToDomain(in []Drug) []drug.Record {
	out := make([]drug.Record, len(in))
	for i, d := range in {
		out[i] = drug.Record{
			Name:              d.Name,
			TradeNames:        d.TradeNames,
			Classification:    d.Classification,
			Mechanism:         d.Mechanism,
			Indications:       d.Indications,
			SideEffects:       d.SideEffects,
			Contraindications: d.Contraindications,
			Interactions:      d.Interactions,
			Usage:             d.Usage,
			Storage:           d.Storage,
			Monitoring:        d.Monitoring,
			Formulations:      d.Formulations,
			DogDosage:         d.DogDosage,
			CatDosage:         d.CatDosage,
		}
	}
	return out
}

func answerFromDomain(a *answer.Answer) Answer {
	drugs := make([]Facets, len(a.Drugs))
	for i := range a.Drugs {
		drugs[i] = Facets(a.Drugs[i].Map())
	}
	return Answer{
		Status:     Status(a.Kind),
		Query:      a.Query.Raw,
		Cleaned:    a.Query.Cleaned,
		Categories: a.Query.Categories.Strings(),
		Animal:     string(a.Query.Animal),
		Drugs:      drugs,
	}
}

func comparisonFromDomain(c *compareuc.Comparison) Comparison {
	aspects := make([]Aspect, len(c.Aspects))
	for i, a := range c.Aspects {
		aspects[i] = Aspect{
			Field:  string(a.Field),
			Same:   a.Verdict == compareuc.Same,
			First:  a.First,
			Second: a.Second,
		}
	}
	return Comparison{First: c.First, Second: c.Second, Aspects: aspects}
}

// normalizerAdapter wraps a public Normalizer as the internal one.
type normalizerAdapter struct {
	inner Normalizer
}

func (a *normalizerAdapter) Analyze(ctx context.Context, text string) ([]query.Token, error) {
	tokens, err := a.inner.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}
	out := make([]query.Token, len(tokens))
	for i, t := range tokens {
		out[i] = query.Token{Text: t.Text, Lemma: t.Lemma, POS: t.POS}
	}
	return out, nil
}

// Ping delegates to the inner normalizer when it supports health checks.
func (a *normalizerAdapter) Ping(ctx context.Context) error {
	if p, ok := a.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
