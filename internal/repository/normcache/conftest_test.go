package normcache

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/vetdex/internal/db"
	"github.com/kailas-cloud/vetdex/internal/domain/query"
)

type mockNormalizer struct {
	tokens []query.Token
	err    error
	calls  int
	pinged bool
}

func (m *mockNormalizer) Analyze(_ context.Context, _ string) ([]query.Token, error) {
	m.calls++
	return m.tokens, m.err
}

func (m *mockNormalizer) Ping(context.Context) error {
	m.pinged = true
	return m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func newTestCache(t *testing.T, inner Normalizer) (*CachedNormalizer, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	ms := &mockKVStore{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	return New(inner, ms, "vetdex:", counter, nil), ms, counter
}
