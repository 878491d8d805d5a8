// Package similarity scores how closely two short strings match.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Tier scores. Containment tiers always outrank word overlap and the fuzzy fallback.
const (
	Exact         = 1.0
	PrefixScore   = 0.95
	ContainsScore = 0.85
	wordWeight    = 0.7
	fuzzyWeight   = 0.6
)

// Score compares a and b and returns a value in [0, 1].
// Rules are evaluated in order; the first one that fires wins.
func Score(a, b string) float64 {
	a, b = Fold(a), Fold(b)

	if a == b {
		return Exact
	}
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		return PrefixScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ContainsScore
	}
	if overlap := wordOverlap(a, b); overlap > 0 {
		return wordWeight * overlap
	}
	return fuzzyWeight * ratio(a, b)
}

// Fold case-folds, NFC-normalizes and trims s.
func Fold(s string) string {
	// cases.Caser is stateful, so a fresh one per call.
	return strings.TrimSpace(cases.Fold().String(norm.NFC.String(s)))
}

// wordOverlap returns |A∩B| / max(|A|, |B|) over whitespace-separated word sets.
func wordOverlap(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	common := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			common++
		}
	}
	return float64(common) / float64(max(len(wa), len(wb)))
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// ratio is the Ratcliff/Obershelp similarity over runes, taken in both
// directions so the result does not depend on argument order.
func ratio(a, b string) float64 {
	ra, rb := runes(a), runes(b)
	forward := difflib.NewMatcher(ra, rb).Ratio()
	backward := difflib.NewMatcher(rb, ra).Ratio()
	return max(forward, backward)
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
