package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/kailas-cloud/vetdex/internal/domain/query"
)

func analyze(t *testing.T, text string) []query.Token {
	t.Helper()
	toks, err := New().Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return toks
}

func TestAnalyze_TagsFunctionWords(t *testing.T) {
	toks := analyze(t, "дозировка мелоксикама для собак и кошек?")

	want := []struct{ text, pos string }{
		{"дозировка", POSOther},
		{"мелоксикама", POSOther},
		{"для", POSAdposition},
		{"собак", POSOther},
		{"и", POSCoordConj},
		{"кошек", POSOther},
		{"?", POSPunctuation},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Text != w.text || toks[i].POS != w.pos {
			t.Errorf("token %d = %+v, want %s/%s", i, toks[i], w.text, w.pos)
		}
	}
}

func TestAnalyze_Joiners(t *testing.T) {
	toks := analyze(t, "0,1 мг/кг из-за ЦОГ-2, раз.")

	var texts []string
	for _, tok := range toks {
		texts = append(texts, tok.Text)
	}
	got := strings.Join(texts, "|")
	if got != "0,1|мг/кг|из-за|ЦОГ-2|,|раз|." {
		t.Errorf("unexpected tokens %q", got)
	}
	if toks[0].POS != POSNumber {
		t.Errorf("0,1 must be a number, got %q", toks[0].POS)
	}
	if toks[2].POS != POSAdposition {
		t.Errorf("из-за must be an adposition, got %q", toks[2].POS)
	}
}

func TestAnalyze_Lemmas(t *testing.T) {
	toks := analyze(t, "Как ХРАНЯТСЯ побочки")
	if toks[0].POS != POSSubordConj {
		t.Errorf("как must be SCONJ, got %q", toks[0].POS)
	}
	if toks[1].Text != "ХРАНЯТСЯ" || toks[1].Lemma != "храниться" {
		t.Errorf("unexpected token %+v", toks[1])
	}
	if toks[2].Lemma != "побочка" {
		t.Errorf("unexpected lemma %q", toks[2].Lemma)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	if toks := analyze(t, "  \t "); len(toks) != 0 {
		t.Errorf("expected no tokens, got %+v", toks)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Analyze(ctx, "мелоксикам"); err == nil {
		t.Error("expected context error")
	}
}
