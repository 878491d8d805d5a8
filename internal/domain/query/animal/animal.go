// Package animal defines the species a query can target.
package animal

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// Animal is a target species. The zero value means species-agnostic.
type Animal string

// Animal constants.
const (
	None Animal = ""
	Dog  Animal = "dog"
	Cat  Animal = "cat"
)

// DetectionOrder is the fixed order keyword tables are checked in.
var DetectionOrder = []Animal{Dog, Cat}

// IsValid reports whether a is Dog or Cat.
func (a Animal) IsValid() bool {
	return a == Dog || a == Cat
}

// IsSet reports whether a species was chosen.
func (a Animal) IsSet() bool { return a != None }

// DosageField returns the record field holding this animal's dosage.
func (a Animal) DosageField() drug.Field {
	switch a {
	case Dog:
		return drug.FieldDogDosage
	case Cat:
		return drug.FieldCatDosage
	default:
		return ""
	}
}

// Parse validates an animal name. Blank input yields None.
func Parse(s string) (Animal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	a := Animal(s)
	if !a.IsValid() {
		return None, fmt.Errorf("%w: %q", domain.ErrInvalidAnimal, s)
	}
	return a, nil
}
