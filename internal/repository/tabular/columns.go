package tabular

import (
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// columnAliases maps the knowledge base column headers to record fields.
// Snake-case field names are accepted as well.
var columnAliases = map[string]drug.Field{
	"name":                                    drug.FieldName,
	"trade_and_other_names":                   drug.FieldTradeNames,
	"functional_classification":               drug.FieldClassification,
	"pharmacology_and_mechanism_of_action":    drug.FieldMechanism,
	"indications_and_clinical_uses":           drug.FieldIndications,
	"adverse_reactions_and_side_effects":      drug.FieldSideEffects,
	"contraindications_and_precautions":       drug.FieldContraindications,
	"drug_interactions":                       drug.FieldInteractions,
	"instructions_for_use":                    drug.FieldUsage,
	"patient_monitoring_and_laboratory_tests": drug.FieldMonitoring,
	"formulations":                            drug.FieldFormulations,
	"stability_and_storage":                   drug.FieldStorage,
	"dogs_dosage":                             drug.FieldDogDosage,
	"cats_dosage":                             drug.FieldCatDosage,
}

// resolveColumn maps a header cell to a field. Headers are trimmed and
// compared case-insensitively.
func resolveColumn(header string) (drug.Field, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	if key == "" || strings.HasPrefix(key, "unnamed") {
		return "", false
	}
	if f, ok := columnAliases[key]; ok {
		return f, true
	}
	if f := drug.Field(key); f.IsValid() {
		return f, true
	}
	return "", false
}
