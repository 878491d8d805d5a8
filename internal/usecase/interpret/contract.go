package interpret

import (
	"context"

	"github.com/kailas-cloud/vetdex/internal/domain/query"
)

// Normalizer tokenizes text and tags every token with a lemma and part of speech.
type Normalizer interface {
	Analyze(ctx context.Context, text string) ([]query.Token, error)
}
