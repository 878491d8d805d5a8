// Package rules is a dictionary-based tokenizer for Russian queries.
// It needs no external service and is used as the default normalizer.
package rules

import (
	"context"
	"strings"
	"unicode"

	"github.com/kailas-cloud/vetdex/internal/domain/query"
)

// Tokenizer splits text into word, number and punctuation tokens.
type Tokenizer struct{}

// New creates a rule tokenizer.
func New() *Tokenizer { return &Tokenizer{} }

// Analyze tokenizes text. It never fails; the error is part of the normalizer contract.
func (t *Tokenizer) Analyze(ctx context.Context, text string) ([]query.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runes := []rune(text)
	var out []query.Token

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i + 1
			for j < len(runes) {
				if isWordRune(runes[j]) {
					j++
					continue
				}
				// joiners only count between word runes: "из-за", "мг/кг", "0.5"
				if isJoiner(runes[j]) && j+1 < len(runes) && isWordRune(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			out = append(out, word(string(runes[i:j])))
			i = j
		default:
			out = append(out, query.Token{Text: string(r), Lemma: string(r), POS: POSPunctuation})
			i++
		}
	}
	return out, nil
}

// Ping always succeeds.
func (t *Tokenizer) Ping(context.Context) error { return nil }

func word(text string) query.Token {
	lower := strings.ToLower(text)
	lemma := lower
	if l, ok := lemmas[lower]; ok {
		lemma = l
	}
	pos := POSOther
	if p, ok := closedClass[lower]; ok {
		pos = p
	} else if isNumber(lower) {
		pos = POSNumber
	}
	return query.Token{Text: text, Lemma: lemma, POS: pos}
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isJoiner(r rune) bool { return r == '-' || r == '/' || r == '.' || r == ',' }

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
