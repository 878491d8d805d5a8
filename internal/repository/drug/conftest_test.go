package drug

import (
	"context"
	"path"
	"sort"

	"github.com/kailas-cloud/vetdex/internal/db"
)

// memStore is an in-memory implementation of the consumer interface.
type memStore struct {
	hashes map[string]map[string]string
	kv     map[string][]byte

	hsetMultiErr error
	scanErr      error
	getErr       error
	hsetCalls    int
	delCalls     int
}

func newMemStore() *memStore {
	return &memStore{hashes: map[string]map[string]string{}, kv: map[string][]byte{}}
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	m.hsetCalls++
	if m.hsetMultiErr != nil {
		return m.hsetMultiErr
	}
	for _, it := range items {
		h := make(map[string]string, len(it.Fields))
		for k, v := range it.Fields {
			h[k] = v
		}
		m.hashes[it.Key] = h
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.delCalls++
	for _, k := range keys {
		delete(m.hashes, k)
		delete(m.kv, k)
	}
	return nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var keys []string
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	// SCAN order is arbitrary; reverse-sort to make sure Load reorders.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.kv[key] = value
	return nil
}
