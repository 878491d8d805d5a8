// Package search matches a cleaned query against every drug record.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/domain/drug"
	"github.com/kailas-cloud/vetdex/internal/domain/search/outcome"
	"github.com/kailas-cloud/vetdex/internal/usecase/similarity"
)

// Search defaults.
const (
	DefaultThreshold   = 0.75
	DefaultExactCutoff = 0.99
	DefaultTopN        = 5
)

// scannedFields are compared against every query word, in this order.
var scannedFields = []drug.Field{drug.FieldName, drug.FieldTradeNames, drug.FieldClassification}

// Config holds the ranking parameters.
type Config struct {
	Threshold   float64
	ExactCutoff float64
	TopN        int
}

// DefaultConfig returns the default ranking parameters.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, ExactCutoff: DefaultExactCutoff, TopN: DefaultTopN}
}

// Service scores, ranks and deduplicates drug records.
type Service struct {
	cfg    Config
	score  Scorer
	logger *zap.Logger
}

// New creates a search service. Zero config values take the defaults.
func New(cfg Config, logger *zap.Logger) *Service {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.ExactCutoff <= 0 {
		cfg.ExactCutoff = DefaultExactCutoff
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, score: similarity.Score, logger: logger}
}

// WithScorer replaces the similarity function.
func (s *Service) WithScorer(fn Scorer) *Service {
	s.score = fn
	return s
}

// Config returns the effective ranking parameters.
func (s *Service) Config() Config { return s.cfg }

// Search scans records for the cleaned query and classifies the result.
// A fault that stops the scan yields an error outcome, never partial results.
func (s *Service) Search(ctx context.Context, cleaned string, records []drug.Record) (out outcome.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search scan aborted", zap.Any("panic", r), zap.String("query", cleaned))
			out = outcome.NewError(fmt.Sprintf("scan aborted: %v", r))
		}
	}()

	s.logger.Debug("search started", zap.String("query", cleaned), zap.Int("records", len(records)))

	candidates, err := s.Candidates(ctx, cleaned, records)
	if err != nil {
		s.logger.Warn("search failed", zap.Error(err), zap.String("query", cleaned))
		return outcome.NewError(err.Error())
	}
	if len(candidates) == 0 {
		s.logger.Debug("no candidates above threshold",
			zap.String("query", cleaned), zap.Float64("threshold", s.cfg.Threshold))
		return outcome.NewNotFound()
	}

	if candidates[0].Score >= s.cfg.ExactCutoff {
		exact := candidates[:0:0]
		for _, c := range candidates {
			if c.Score >= s.cfg.ExactCutoff {
				exact = append(exact, c)
			}
		}
		s.logger.Debug("exact matches found, dropping weaker candidates",
			zap.Int("kept", len(exact)), zap.Int("dropped", len(candidates)-len(exact)))
		candidates = exact
	}

	top := candidates[:min(len(candidates), s.cfg.TopN)]
	for _, c := range top {
		s.logger.Debug("candidate",
			zap.String("name", c.Record.Name),
			zap.Float64("score", c.Score),
			zap.String("word", c.Evidence.Word),
			zap.String("field", string(c.Evidence.Field)),
			zap.String("segment", c.Evidence.Segment),
		)
	}

	res := outcome.FromRecords(dedupByName(candidates), top)
	s.logger.Debug("search finished", zap.String("kind", string(res.Kind)), zap.Int("records", len(res.Records)))
	return res
}

// Candidates returns records whose best score reaches the threshold,
// sorted by score descending and then by scan position.
func (s *Service) Candidates(ctx context.Context, cleaned string, records []drug.Record) ([]outcome.Candidate, error) {
	words := strings.Fields(strings.ToLower(cleaned))
	if len(words) == 0 {
		return nil, nil
	}

	var candidates []outcome.Candidate
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan interrupted at record %d: %w", i, err)
		}
		best, ev, ok := s.scoreRecord(&records[i], words)
		if !ok {
			continue
		}
		if best >= s.cfg.Threshold {
			candidates = append(candidates, outcome.Candidate{
				Record: records[i], Score: best, Index: i, Evidence: ev,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Index < candidates[j].Index
	})
	return candidates, nil
}

// scoreRecord returns the best score over every (word, segment) pair.
// A fault inside one record is logged and that record yields no evidence.
func (s *Service) scoreRecord(rec *drug.Record, words []string) (best float64, ev outcome.Evidence, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("record skipped",
				zap.String("name", rec.Name), zap.Any("panic", r))
			best, ev, ok = 0, outcome.Evidence{}, false
		}
	}()

	for _, w := range words {
		for _, f := range scannedFields {
			for _, seg := range rec.Segments(f) {
				if sc := s.score(w, strings.ToLower(seg)); sc > best {
					best = sc
					ev = outcome.Evidence{Word: w, Field: f, Segment: seg}
				}
			}
		}
	}
	return best, ev, true
}

// dedupByName keeps the first candidate for every record name.
func dedupByName(candidates []outcome.Candidate) []drug.Record {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]drug.Record, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Record.Name]; dup {
			continue
		}
		seen[c.Record.Name] = struct{}{}
		out = append(out, c.Record)
	}
	return out
}
