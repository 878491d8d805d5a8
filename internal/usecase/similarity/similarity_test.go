package similarity

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "Амоксициллин", "амоксициллин", 1.0},
		{"exact after trim", "  Амоксициллин ", "АМОКСИЦИЛЛИН", 1.0},
		{"prefix", "амокси", "амоксициллин", 0.95},
		{"prefix reversed", "амоксициллин", "амокси", 0.95},
		{"substring", "ксицил", "амоксициллин", 0.85},
		{"word overlap", "антибиотик широкого спектра", "антибиотик пенициллинового ряда", 0.7 / 3},
		{"substring beats word overlap", "нестероидный противовоспалительный", "противовоспалительный", 0.85},
		{"nothing in common", "abc", "xyz", 0},
		{"both empty", "", "", 1.0},
		{"empty is a prefix", "", "мелоксикам", 0.95},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.a, tc.b)
			if math.Abs(got-tc.want) > eps {
				t.Errorf("Score(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestScore_FuzzyFallback(t *testing.T) {
	// 11 matching runes out of 11+12.
	want := 0.6 * 22.0 / 23.0
	got := Score("амоксицилин", "амоксициллин")
	if math.Abs(got-want) > eps {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got >= ContainsScore {
		t.Errorf("fuzzy score %v must stay below the substring tier", got)
	}
}

func TestScore_WordOverlapPartial(t *testing.T) {
	got := Score("средство против блох", "средство от клещей и блох")
	want := 0.7 * 2.0 / 5.0
	if math.Abs(got-want) > eps {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScore_SelfIsOne(t *testing.T) {
	for _, s := range []string{"a", "Мелоксикам", "ivermectin", "Преднизолон 5 мг", "ёж"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1", s, s, got)
		}
		if got := Score(s, "  "+s+"\t"); got != 1.0 {
			t.Errorf("Score with padding for %q = %v, want 1", s, got)
		}
	}
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"амокси", "амоксициллин"},
		{"ксицил", "амоксициллин"},
		{"антибиотик широкого спектра", "антибиотик пенициллинового ряда"},
		{"амоксицилин", "амоксициллин"},
		{"мелоксикам", "мелоксидил"},
		{"метронидазол", "маропитант"},
		{"abcd", "bcda"},
		{"preddnisolone", "prednisolon"},
	}
	for _, p := range pairs {
		ab, ba := Score(p[0], p[1]), Score(p[1], p[0])
		if math.Abs(ab-ba) > eps {
			t.Errorf("asymmetric: Score(%q,%q)=%v, Score(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScore_Range(t *testing.T) {
	inputs := []string{"", "a", "ab", "ба", "кошка", "кот", "dog cat", "cat dog fish", "???"}
	for _, a := range inputs {
		for _, b := range inputs {
			got := Score(a, b)
			if got < 0 || got > 1 {
				t.Errorf("Score(%q, %q) = %v out of range", a, b, got)
			}
		}
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  ПРЕДНИЗОЛОН "); got != "преднизолон" {
		t.Errorf("unexpected fold: %q", got)
	}
}
