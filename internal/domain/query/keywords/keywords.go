// Package keywords holds the keyword tables used to interpret queries.
package keywords

import (
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
)

// Tables groups all keyword vocabularies.
type Tables struct {
	// Animals holds surface-form fragments searched as substrings of the raw query.
	Animals map[animal.Animal][]string
	// Categories holds exact surface forms and lemmas per category.
	Categories map[category.Category][]string
	// ContraindicationMarkers are substrings that flag a dosage as forbidden.
	ContraindicationMarkers []string
}

// Default returns the built-in Russian vocabulary.
func Default() Tables {
	return Tables{
		Animals: map[animal.Animal][]string{
			animal.Dog: {"собак", "собач", "пёс", "псов", "щенок", "щенк", "щенят", "кобел"},
			animal.Cat: {"кошк", "кошек", "кошач", "котов", "кота", "коту", "котам", "котик", "котён", "котен", "котят"},
		},
		Categories: map[category.Category][]string{
			category.Dosage: {
				"доза", "дозы", "дозу", "дозой", "дозировка", "дозировки", "дозировку",
				"дозирование", "сколько", "давать", "дать", "мг/кг", "dose", "dosage",
			},
			category.Indications: {
				"показание", "показания", "показаний", "показан", "назначение",
				"назначают", "назначать", "лечить", "лечит", "лечение", "помогает",
			},
			category.Usage: {
				"инструкция", "инструкции", "инструкцию", "применение", "применения",
				"применять", "применяют", "использовать", "использование", "вводить",
				"принимать", "способ",
			},
			category.Storage: {
				"хранение", "хранения", "хранить", "храниться", "хранят",
				"стабильность", "годность", "годности",
			},
			category.Contraindications: {
				"противопоказание", "противопоказания", "противопоказаний",
				"противопоказан", "предосторожность", "предосторожности", "ограничение",
			},
			category.SideEffects: {
				"побочный", "побочные", "побочных", "побочка", "побочки",
				"реакция", "реакции", "осложнение", "осложнения",
			},
			category.Mechanism: {
				"механизм", "механизма", "действие", "действия", "действует",
				"действовать", "фармакология", "фармакологический", "работает",
			},
			category.Interactions: {
				"взаимодействие", "взаимодействия", "взаимодействует", "совместимость",
				"совместимы", "сочетать", "совмещать", "совместно",
			},
			category.Form: {
				"форма", "формы", "форму", "таблетка", "таблетки", "раствор",
				"инъекция", "инъекции", "капсула", "капсулы", "суспензия", "выпуск",
			},
			category.Monitoring: {
				"мониторинг", "мониторинга", "анализ", "анализы", "контроль",
				"наблюдение", "обследование",
			},
		},
		ContraindicationMarkers: []string{"противопоказан", "нельзя", "запрещен"},
	}
}

// Merge returns t with every non-empty table of override replacing the default.
func (t Tables) Merge(override Tables) Tables {
	out := Tables{
		Animals:                 make(map[animal.Animal][]string, len(t.Animals)),
		Categories:              make(map[category.Category][]string, len(t.Categories)),
		ContraindicationMarkers: t.ContraindicationMarkers,
	}
	for a, words := range t.Animals {
		out.Animals[a] = words
	}
	for c, words := range t.Categories {
		out.Categories[c] = words
	}
	for a, words := range override.Animals {
		if len(words) > 0 {
			out.Animals[a] = words
		}
	}
	for c, words := range override.Categories {
		if len(words) > 0 {
			out.Categories[c] = words
		}
	}
	if len(override.ContraindicationMarkers) > 0 {
		out.ContraindicationMarkers = override.ContraindicationMarkers
	}
	return out.lowered()
}

// lowered lower-cases every keyword so lookups can compare folded text.
func (t Tables) lowered() Tables {
	for a, words := range t.Animals {
		t.Animals[a] = lowerAll(words)
	}
	for c, words := range t.Categories {
		t.Categories[c] = lowerAll(words)
	}
	t.ContraindicationMarkers = lowerAll(t.ContraindicationMarkers)
	return t
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
