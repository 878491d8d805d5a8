// Package drug stores the drug catalog snapshot in Redis/Valkey hashes.
package drug

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/vetdex/internal/db"
	"github.com/kailas-cloud/vetdex/internal/domain"
	domdrug "github.com/kailas-cloud/vetdex/internal/domain/drug"
)

const batchSize = 100

// ErrSnapshotIncomplete signals that fewer hashes were found than the snapshot recorded.
var ErrSnapshotIncomplete = errors.New("catalog snapshot incomplete")

// store is the consumer interface for the snapshot (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo keeps one hash per record under <prefix>drug:<seq>.
type Repo struct {
	store  store
	prefix string
}

// New creates a snapshot repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Save replaces the stored snapshot with records, keeping their order.
func (r *Repo) Save(ctx context.Context, records []domdrug.Record) error {
	old, err := r.store.Scan(ctx, r.keyPattern())
	if err != nil {
		return fmt.Errorf("scan snapshot: %w", err)
	}
	for start := 0; start < len(old); start += batchSize {
		end := min(start+batchSize, len(old))
		if err := r.store.Del(ctx, old[start:end]...); err != nil {
			return fmt.Errorf("delete old snapshot: %w", err)
		}
	}

	items := make([]db.HashSetItem, 0, batchSize)
	for i := range records {
		items = append(items, db.HashSetItem{Key: r.recordKey(i), Fields: buildHashFields(i, &records[i])})
		if len(items) == batchSize || i == len(records)-1 {
			if err := r.store.HSetMulti(ctx, items); err != nil {
				return fmt.Errorf("store records: %w", err)
			}
			items = items[:0]
		}
	}

	if err := r.store.Set(ctx, r.countKey(), []byte(strconv.Itoa(len(records)))); err != nil {
		return fmt.Errorf("store snapshot size: %w", err)
	}
	return nil
}

// Load reads the snapshot back in scan order.
// Returns ErrCatalogEmpty when no snapshot exists.
func (r *Repo) Load(ctx context.Context) ([]domdrug.Record, error) {
	keys, err := r.store.Scan(ctx, r.keyPattern())
	if err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if len(keys) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	if raw, err := r.store.Get(ctx, r.countKey()); err == nil {
		if want, convErr := strconv.Atoi(string(raw)); convErr == nil && want > len(keys) {
			return nil, fmt.Errorf("found %d of %d records: %w", len(keys), want, ErrSnapshotIncomplete)
		}
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("read snapshot size: %w", err)
	}

	type entry struct {
		rec domdrug.Record
		seq int
	}
	entries := make([]entry, 0, len(keys))
	for start := 0; start < len(keys); start += batchSize {
		end := min(start+batchSize, len(keys))
		hashes, err := r.store.HGetAllMulti(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		for _, h := range hashes {
			rec, seq, ok := parseHashFields(h)
			if !ok {
				continue
			}
			entries = append(entries, entry{rec: rec, seq: seq})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]domdrug.Record, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out, nil
}

func (r *Repo) recordKey(seq int) string { return r.prefix + "drug:" + strconv.Itoa(seq) }
func (r *Repo) keyPattern() string       { return r.prefix + "drug:*" }
func (r *Repo) countKey() string         { return r.prefix + "catalog:count" }
