package drug

import (
	"reflect"
	"testing"
)

func TestField_IsValid(t *testing.T) {
	for _, f := range Fields {
		if !f.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", f)
		}
	}
	for _, f := range []Field{"", "Name", "dosage", "warning"} {
		if f.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", f)
		}
	}
}

func TestRecord_SetValueRoundTrip(t *testing.T) {
	var r Record
	for i, f := range Fields {
		r.Set(f, string(rune('a'+i)))
	}
	for i, f := range Fields {
		if got := r.Value(f); got != string(rune('a'+i)) {
			t.Errorf("Value(%q) = %q", f, got)
		}
	}
	r.Set("unknown", "x")
	if r.Value("unknown") != "" {
		t.Error("unknown field must read as empty")
	}
}

func TestRecord_Has(t *testing.T) {
	r := Record{Name: "Мелоксикам", Storage: "  \t", DogDosage: "0,1 мг/кг"}
	if !r.Has(FieldName) || !r.Has(FieldDogDosage) {
		t.Error("non-blank fields must be present")
	}
	if r.Has(FieldStorage) {
		t.Error("whitespace-only field must be absent")
	}
	if r.Has(FieldCatDosage) {
		t.Error("empty field must be absent")
	}
}

func TestRecord_Segments(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Метакам, Локсиком", []string{"Метакам", "Локсиком"}},
		{"Метакам", []string{"Метакам"}},
		{" Метакам ,, Локсиком ,", []string{"Метакам", "Локсиком"}},
		{"", nil},
		{"  ", nil},
		{",", []string{}},
	}
	for _, tt := range tests {
		r := Record{TradeNames: tt.raw}
		got := r.Segments(FieldTradeNames)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
