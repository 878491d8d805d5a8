// Package facet selects the record fields a query asked for and applies the
// contraindication gate.
package facet

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	dfacet "github.com/kailas-cloud/vetdex/internal/domain/facet"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/domain/query/keywords"
)

// baseline fields are always returned for a narrowed query.
var baseline = []drug.Field{drug.FieldTradeNames, drug.FieldClassification}

// Service selects facets from drug records.
type Service struct {
	markers []string
	logger  *zap.Logger
}

// New creates a selector. Empty markers fall back to the defaults.
func New(markers []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	tables := keywords.Default().Merge(keywords.Tables{ContraindicationMarkers: markers})
	return &Service{markers: tables.ContraindicationMarkers, logger: logger}
}

// Select returns the facets of rec requested by categories for the given animal.
// If the animal's dosage is contraindicated, only the warning is returned.
func (s *Service) Select(rec *drug.Record, categories category.Set, a animal.Animal) dfacet.Set {
	if w, ok := s.Gate(rec, a); ok {
		s.logger.Debug("contraindication gate fired",
			zap.String("name", rec.Name), zap.String("animal", string(a)))
		return dfacet.NewWarning(w)
	}

	out := dfacet.New(rec.Name)
	if categories.IsFull() {
		for _, f := range drug.Fields {
			if f == drug.FieldName {
				continue
			}
			s.put(&out, rec, f, a)
		}
		return out
	}

	for _, f := range baseline {
		s.put(&out, rec, f, a)
	}
	for _, c := range categories.Sorted() {
		for _, f := range c.Fields() {
			s.put(&out, rec, f, a)
		}
	}
	return out
}

// Gate reports whether the dosage text for a carries a contraindication marker.
func (s *Service) Gate(rec *drug.Record, a animal.Animal) (dfacet.Warning, bool) {
	if !a.IsSet() {
		return dfacet.Warning{}, false
	}
	text := rec.Value(a.DosageField())
	if strings.TrimSpace(text) == "" {
		return dfacet.Warning{}, false
	}
	lower := strings.ToLower(text)
	for _, m := range s.markers {
		if m != "" && strings.Contains(lower, m) {
			return dfacet.Warning{RecordName: rec.Name, Animal: a, DosageText: text}, true
		}
	}
	return dfacet.Warning{}, false
}

// put copies a non-blank field, skipping the other animal's dosage.
func (s *Service) put(out *dfacet.Set, rec *drug.Record, f drug.Field, a animal.Animal) {
	if isDosage(f) && a.IsSet() && f != a.DosageField() {
		return
	}
	if !rec.Has(f) {
		return
	}
	out.Put(f, rec.Value(f))
}

func isDosage(f drug.Field) bool {
	return f == drug.FieldDogDosage || f == drug.FieldCatDosage
}
