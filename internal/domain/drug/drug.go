// Package drug holds the knowledge base record.
package drug

import "strings"

// Field identifies one column of a drug record.
type Field string

// Record fields. Values double as tabular column and facet keys.
const (
	FieldName              Field = "name"
	FieldTradeNames        Field = "trade_names"
	FieldClassification    Field = "classification"
	FieldMechanism         Field = "mechanism"
	FieldIndications       Field = "indications"
	FieldSideEffects       Field = "side_effects"
	FieldContraindications Field = "contraindications"
	FieldInteractions      Field = "interactions"
	FieldUsage             Field = "usage"
	FieldStorage           Field = "storage"
	FieldMonitoring        Field = "monitoring"
	FieldFormulations      Field = "form"
	FieldDogDosage         Field = "dog_dosage"
	FieldCatDosage         Field = "cat_dosage"
)

// Fields lists every record field in display order.
var Fields = []Field{
	FieldName,
	FieldTradeNames,
	FieldClassification,
	FieldMechanism,
	FieldIndications,
	FieldSideEffects,
	FieldContraindications,
	FieldInteractions,
	FieldUsage,
	FieldMonitoring,
	FieldFormulations,
	FieldStorage,
	FieldDogDosage,
	FieldCatDosage,
}

// IsValid reports whether f is a known field.
func (f Field) IsValid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Record is one drug entry. Empty strings mean "absent".
type Record struct {
	Name              string
	TradeNames        string
	Classification    string
	Mechanism         string
	Indications       string
	SideEffects       string
	Contraindications string
	Interactions      string
	Usage             string
	Storage           string
	Monitoring        string
	Formulations      string
	DogDosage         string
	CatDosage         string
}

// Value returns the raw text of a field.
func (r *Record) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldTradeNames:
		return r.TradeNames
	case FieldClassification:
		return r.Classification
	case FieldMechanism:
		return r.Mechanism
	case FieldIndications:
		return r.Indications
	case FieldSideEffects:
		return r.SideEffects
	case FieldContraindications:
		return r.Contraindications
	case FieldInteractions:
		return r.Interactions
	case FieldUsage:
		return r.Usage
	case FieldStorage:
		return r.Storage
	case FieldMonitoring:
		return r.Monitoring
	case FieldFormulations:
		return r.Formulations
	case FieldDogDosage:
		return r.DogDosage
	case FieldCatDosage:
		return r.CatDosage
	default:
		return ""
	}
}

// Set assigns a field value. Unknown fields are ignored.
func (r *Record) Set(f Field, v string) {
	switch f {
	case FieldName:
		r.Name = v
	case FieldTradeNames:
		r.TradeNames = v
	case FieldClassification:
		r.Classification = v
	case FieldMechanism:
		r.Mechanism = v
	case FieldIndications:
		r.Indications = v
	case FieldSideEffects:
		r.SideEffects = v
	case FieldContraindications:
		r.Contraindications = v
	case FieldInteractions:
		r.Interactions = v
	case FieldUsage:
		r.Usage = v
	case FieldStorage:
		r.Storage = v
	case FieldMonitoring:
		r.Monitoring = v
	case FieldFormulations:
		r.Formulations = v
	case FieldDogDosage:
		r.DogDosage = v
	case FieldCatDosage:
		r.CatDosage = v
	}
}

// Has reports whether a field carries non-blank text.
func (r *Record) Has(f Field) bool {
	return strings.TrimSpace(r.Value(f)) != ""
}

// Segments splits a comma-separated field into trimmed, non-empty parts.
func (r *Record) Segments(f Field) []string {
	raw := r.Value(f)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
