// Package outcome describes the result of a catalog search.
package outcome

import "github.com/kailas-cloud/vetdex/internal/domain/drug"

// Kind classifies a search result.
type Kind string

// Kind constants.
const (
	NotFound Kind = "not_found"
	Single   Kind = "single"
	Multiple Kind = "multiple"
	Error    Kind = "error"
)

// Evidence records where a record's best score came from.
type Evidence struct {
	Word    string
	Field   drug.Field
	Segment string
}

// Candidate is a record that passed the similarity threshold.
type Candidate struct {
	Record   drug.Record
	Score    float64
	Index    int
	Evidence Evidence
}

// Outcome is the classified search result.
type Outcome struct {
	Kind    Kind
	Records []drug.Record
	// Top holds the best ranked candidates for diagnostics.
	Top    []Candidate
	Reason string
}

// NewNotFound builds a not_found outcome.
func NewNotFound() Outcome { return Outcome{Kind: NotFound} }

// NewError builds an error outcome with a reason.
func NewError(reason string) Outcome { return Outcome{Kind: Error, Reason: reason} }

// FromRecords classifies a non-empty, deduplicated record list.
func FromRecords(records []drug.Record, top []Candidate) Outcome {
	switch len(records) {
	case 0:
		return Outcome{Kind: NotFound, Top: top}
	case 1:
		return Outcome{Kind: Single, Records: records, Top: top}
	default:
		return Outcome{Kind: Multiple, Records: records, Top: top}
	}
}

// Found reports whether at least one record matched.
func (o *Outcome) Found() bool {
	return o.Kind == Single || o.Kind == Multiple
}
