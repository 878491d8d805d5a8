// Package normcache caches normalizer output in a key-value store.
package normcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vetdex/internal/db"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
)

const keySpace = "norm_cache:"

// Normalizer is the decorated analyzer.
type Normalizer interface {
	Analyze(ctx context.Context, text string) ([]query.Token, error)
}

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// cachedToken is the stored form of a token.
type cachedToken struct {
	Text  string `json:"t"`
	Lemma string `json:"l"`
	POS   string `json:"p"`
}

// CachedNormalizer serves repeated questions from the store.
// Cache failures are logged and never fail the request.
type CachedNormalizer struct {
	inner      Normalizer
	store      store
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Normalizer,
	s store,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedNormalizer{
		inner:      inner,
		store:      s,
		prefix:     prefix + keySpace,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns cached tokens or calls the inner normalizer.
func (c *CachedNormalizer) Analyze(ctx context.Context, text string) ([]query.Token, error) {
	key := c.cacheKey(text)

	if tokens, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return tokens, nil
	}

	c.incCache("miss")

	tokens, err := c.inner.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}

	c.putToCache(ctx, key, tokens)
	return tokens, nil
}

// Ping checks the inner normalizer when it supports health checks.
func (c *CachedNormalizer) Ping(ctx context.Context) error {
	if p, ok := c.inner.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *CachedNormalizer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedNormalizer) cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedNormalizer) getFromCache(ctx context.Context, key string) ([]query.Token, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	tokens, err := decodeTokens(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached analysis", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return tokens, true
}

func (c *CachedNormalizer) putToCache(ctx context.Context, key string, tokens []query.Token) {
	data, err := encodeTokens(tokens)
	if err != nil {
		c.logger.Warn("Failed to encode analysis", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("key", key), zap.Error(err))
	}
}

func encodeTokens(tokens []query.Token) ([]byte, error) {
	out := make([]cachedToken, len(tokens))
	for i, t := range tokens {
		out[i] = cachedToken{Text: t.Text, Lemma: t.Lemma, POS: t.POS}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal tokens: %w", err)
	}
	return data, nil
}

func decodeTokens(data []byte) ([]query.Token, error) {
	var in []cachedToken
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal tokens: %w", err)
	}
	out := make([]query.Token, len(in))
	for i, t := range in {
		out[i] = query.Token{Text: t.Text, Lemma: t.Lemma, POS: t.POS}
	}
	return out, nil
}
