// Package compare reports similarities and differences between two drugs.
package compare

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// Catalog resolves drugs by exact name.
type Catalog interface {
	FindByExactName(name string) (drug.Record, bool)
}

// Verdict tells whether both drugs share a value.
type Verdict string

// Verdict constants.
const (
	Same      Verdict = "same"
	Different Verdict = "different"
)

// compared fields, in report order. Classification is always reported,
// the others only when at least one drug has data.
var compared = []drug.Field{drug.FieldClassification, drug.FieldIndications, drug.FieldMechanism}

// Aspect is the comparison of one field.
type Aspect struct {
	Field   drug.Field
	Verdict Verdict
	First   string
	Second  string
}

// Comparison is the result of comparing two drugs.
type Comparison struct {
	First   string
	Second  string
	Aspects []Aspect
}

// Service compares drugs from the catalog.
type Service struct {
	catalog Catalog
	logger  *zap.Logger
}

// New creates a comparison service.
func New(catalog Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Compare looks both drugs up by exact name and compares their classification,
// indications and mechanism of action.
func (s *Service) Compare(_ context.Context, first, second string) (Comparison, error) {
	a, err := s.find(first)
	if err != nil {
		return Comparison{}, err
	}
	b, err := s.find(second)
	if err != nil {
		return Comparison{}, err
	}

	out := Comparison{First: a.Name, Second: b.Name}
	for _, f := range compared {
		va := strings.TrimSpace(a.Value(f))
		vb := strings.TrimSpace(b.Value(f))
		if f != drug.FieldClassification && va == "" && vb == "" {
			continue
		}
		asp := Aspect{Field: f, Verdict: Different, First: va, Second: vb}
		if va == vb {
			asp.Verdict = Same
		}
		out.Aspects = append(out.Aspects, asp)
	}

	s.logger.Debug("drugs compared",
		zap.String("first", a.Name), zap.String("second", b.Name), zap.Int("aspects", len(out.Aspects)))
	return out, nil
}

func (s *Service) find(name string) (drug.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return drug.Record{}, fmt.Errorf("drug name: %w", domain.ErrEmptyQuery)
	}
	rec, ok := s.catalog.FindByExactName(name)
	if !ok {
		return drug.Record{}, fmt.Errorf("drug %q: %w", name, domain.ErrDrugNotFound)
	}
	return rec, nil
}
