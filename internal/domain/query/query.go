// Package query holds the interpreted form of a user question.
package query

import (
	"github.com/kailas-cloud/vetdex/internal/domain/query/animal"
	"github.com/kailas-cloud/vetdex/internal/domain/query/category"
)

// Token is one unit produced by the linguistic normalizer.
type Token struct {
	Text  string
	Lemma string
	POS   string
}

// Normalized is a query after interpretation.
type Normalized struct {
	Raw        string
	Cleaned    string
	Categories category.Set
	Animal     animal.Animal
}
