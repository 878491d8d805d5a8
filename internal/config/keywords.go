package config

import (
	"fmt"

	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
	"github.com/kailas-cloud/vetdex/internal/domain/query/keywords"
)

// Tables converts the keyword overrides into typed tables.
func (k KeywordsConfig) Tables() (keywords.Tables, error) {
	out := keywords.Tables{
		Animals:                 make(map[animal.Animal][]string, len(k.Animals)),
		Categories:              make(map[category.Category][]string, len(k.Categories)),
		ContraindicationMarkers: k.ContraindicationMarkers,
	}
	for name, words := range k.Animals {
		a, err := animal.Parse(name)
		if err != nil || !a.IsSet() {
			return keywords.Tables{}, fmt.Errorf("keywords.animals.%s: unknown animal", name)
		}
		out.Animals[a] = words
	}
	for name, words := range k.Categories {
		c, err := category.Parse(name)
		if err != nil {
			return keywords.Tables{}, fmt.Errorf("keywords.categories.%s: %w", name, err)
		}
		if c == category.Full {
			return keywords.Tables{}, fmt.Errorf("keywords.categories.full: full has no keywords")
		}
		out.Categories[c] = words
	}
	return out, nil
}
