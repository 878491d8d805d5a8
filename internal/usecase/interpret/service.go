// Package interpret turns a raw question into search text and intent signals.
package interpret

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/domain/query/keywords"
)

// DefaultFunctionPOS lists the universal POS tags dropped from cleaned text.
var DefaultFunctionPOS = []string{"ADP", "CCONJ", "SCONJ", "PUNCT", "SPACE"}

// Config holds the interpreter vocabularies.
type Config struct {
	Keywords    keywords.Tables
	FunctionPOS []string
}

// Service interprets user queries.
type Service struct {
	normalizer  Normalizer
	animals     map[animal.Animal][]string
	categories  map[category.Category]map[string]struct{}
	functionPOS map[string]struct{}
	logger      *zap.Logger
}

// New creates an interpreter. Empty config tables fall back to the defaults.
func New(normalizer Normalizer, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	tables := keywords.Default().Merge(cfg.Keywords)

	pos := cfg.FunctionPOS
	if len(pos) == 0 {
		pos = DefaultFunctionPOS
	}
	functionPOS := make(map[string]struct{}, len(pos))
	for _, p := range pos {
		functionPOS[strings.ToUpper(p)] = struct{}{}
	}

	cats := make(map[category.Category]map[string]struct{}, len(tables.Categories))
	for c, words := range tables.Categories {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		cats[c] = set
	}

	return &Service{
		normalizer:  normalizer,
		animals:     tables.Animals,
		categories:  cats,
		functionPOS: functionPOS,
		logger:      logger,
	}
}

// Interpret normalizes raw and detects the requested categories and animal.
func (s *Service) Interpret(ctx context.Context, raw string) (query.Normalized, error) {
	if strings.TrimSpace(raw) == "" {
		// Пустой вопрос: нечего искать, поиск вернёт not_found.
		return query.Normalized{Raw: raw, Categories: category.NewSet(category.Full)}, nil
	}
	lower := strings.ToLower(raw)

	tokens, err := s.normalizer.Analyze(ctx, lower)
	if err != nil {
		return query.Normalized{}, fmt.Errorf("%w: %w", domain.ErrNormalizerUnavailable, err)
	}

	q := query.Normalized{
		Raw:     raw,
		Cleaned: s.clean(tokens),
		Animal:  s.DetectAnimal(lower),
	}

	if len(strings.Fields(lower)) == 1 {
		// A bare word is taken to be a drug name.
		q.Categories = category.NewSet(category.Full)
	} else {
		q.Categories = s.detectCategories(tokens)
	}

	s.logger.Debug("query interpreted",
		zap.String("raw", raw),
		zap.String("cleaned", q.Cleaned),
		zap.Strings("categories", q.Categories.Strings()),
		zap.String("animal", string(q.Animal)),
	)
	return q, nil
}

// DetectAnimal returns the first animal, in detection order, whose keyword
// occurs anywhere in the lower-cased text.
func (s *Service) DetectAnimal(lower string) animal.Animal {
	for _, a := range animal.DetectionOrder {
		for _, kw := range s.animals[a] {
			if kw != "" && strings.Contains(lower, kw) {
				return a
			}
		}
	}
	return animal.None
}

// detectCategories matches each token's surface form and lemma against every
// category vocabulary. No match means the full record.
func (s *Service) detectCategories(tokens []query.Token) category.Set {
	found := category.NewSet()
	for _, tok := range tokens {
		text := strings.ToLower(tok.Text)
		lemma := strings.ToLower(tok.Lemma)
		for _, c := range category.All {
			if c == category.Full {
				continue
			}
			words := s.categories[c]
			if _, ok := words[text]; ok {
				found.Add(c)
				continue
			}
			if _, ok := words[lemma]; ok && lemma != "" {
				found.Add(c)
			}
		}
	}
	if len(found) == 0 {
		found.Add(category.Full)
	}
	return found
}

// clean drops function words and joins the remaining surface forms.
func (s *Service) clean(tokens []query.Token) string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, skip := s.functionPOS[strings.ToUpper(tok.POS)]; skip {
			continue
		}
		if t := strings.TrimSpace(tok.Text); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}
