// Package facet holds the selected slices of a drug record.
package facet

import (
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
)

// WarningKey is the reserved output key carrying a contraindication warning.
const WarningKey = "warning"

// Warning is raised when the requested animal's dosage is contraindicated.
type Warning struct {
	RecordName string
	Animal     animal.Animal
	DosageText string
}

// Set is the sparse result of field selection for one record.
type Set struct {
	name    string
	values  map[drug.Field]string
	warning *Warning
}

// New creates an empty facet set for a record name.
func New(name string) Set {
	return Set{name: name, values: make(map[drug.Field]string)}
}

// NewWarning creates a set that carries only a contraindication warning.
func NewWarning(w Warning) Set {
	return Set{name: w.RecordName, values: map[drug.Field]string{}, warning: &w}
}

// Name returns the record name.
func (s *Set) Name() string { return s.name }

// Put stores a facet value.
func (s *Set) Put(f drug.Field, v string) { s.values[f] = v }

// Get returns a facet value; absent facets are empty.
func (s *Set) Get(f drug.Field) string { return s.values[f] }

// Has reports whether a facet was selected.
func (s *Set) Has(f drug.Field) bool {
	_, ok := s.values[f]
	return ok
}

// Len returns the number of selected facets.
func (s *Set) Len() int { return len(s.values) }

// Warning returns the contraindication warning, nil if the gate did not fire.
func (s *Set) Warning() *Warning { return s.warning }

// Map flattens the set into string values keyed by facet name.
// Every known field is present; omitted facets map to "".
func (s *Set) Map() map[string]string {
	out := make(map[string]string, len(drug.Fields)+1)
	for _, f := range drug.Fields {
		out[string(f)] = s.values[f]
	}
	out[string(drug.FieldName)] = s.name
	out[WarningKey] = ""
	if s.warning != nil {
		out[WarningKey] = s.warning.DosageText
	}
	return out
}
