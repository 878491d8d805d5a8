// Package category defines the information categories a query can request.
package category

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// Category is a requested slice of drug information.
type Category string

// Category constants. Full means "no narrowing".
const (
	Full              Category = "full"
	Dosage            Category = "dosage"
	Indications       Category = "indications"
	Usage             Category = "usage"
	Storage           Category = "storage"
	Contraindications Category = "contraindications"
	SideEffects       Category = "side_effects"
	Mechanism         Category = "mechanism"
	Interactions      Category = "interactions"
	Form              Category = "form"
	Monitoring        Category = "monitoring"
)

// All lists every category in detection order.
var All = []Category{
	Full,
	Dosage,
	Indications,
	Usage,
	Storage,
	Contraindications,
	SideEffects,
	Mechanism,
	Interactions,
	Form,
	Monitoring,
}

// fields maps a category to the record fields it exposes.
// Dosage is resolved per animal by the selector.
var fields = map[Category][]drug.Field{
	Dosage:            {drug.FieldDogDosage, drug.FieldCatDosage},
	Indications:       {drug.FieldIndications},
	Usage:             {drug.FieldUsage},
	Storage:           {drug.FieldStorage},
	Contraindications: {drug.FieldContraindications},
	SideEffects:       {drug.FieldSideEffects},
	Mechanism:         {drug.FieldMechanism},
	Interactions:      {drug.FieldInteractions},
	Form:              {drug.FieldFormulations},
	Monitoring:        {drug.FieldMonitoring},
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}
	return false
}

// Fields returns the record fields exposed by the category (nil for Full).
func (c Category) Fields() []drug.Field {
	return fields[c]
}

// Parse validates a category name (case-insensitive).
func Parse(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCategory, s)
	}
	return c, nil
}

// Set is an unordered collection of categories.
type Set map[Category]struct{}

// NewSet builds a set from the given categories.
func NewSet(cs ...Category) Set {
	s := make(Set, len(cs))
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// ParseSet validates a list of category names. Blank entries are skipped.
func ParseSet(names []string) (Set, error) {
	s := make(Set, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c, err := Parse(n)
		if err != nil {
			return nil, err
		}
		s.Add(c)
	}
	return s, nil
}

// Add inserts a category.
func (s Set) Add(c Category) { s[c] = struct{}{} }

// Has reports membership.
func (s Set) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// IsFull reports whether the set requests the whole record (Full or empty).
func (s Set) IsFull() bool {
	return len(s) == 0 || s.Has(Full)
}

// Sorted returns the categories in All order.
func (s Set) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return index(out[i]) < index(out[j]) })
	return out
}

// Strings returns the sorted category names.
func (s Set) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = string(c)
	}
	return out
}

func index(c Category) int {
	for i, known := range All {
		if c == known {
			return i
		}
	}
	return len(All)
}
