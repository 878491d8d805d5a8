// Package catalog keeps the loaded drug records in memory.
package catalog

import (
	"strings"

	"github.com/kailas-cloud/vetdex/internal/domain"
	"github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// Catalog is an immutable, ordered set of drug records. Safe for concurrent reads.
type Catalog struct {
	records []drug.Record
	byName  map[string]int
}

// New builds a catalog from records in scan order. Records with a blank name
// are dropped. Returns ErrCatalogEmpty when nothing is left.
func New(records []drug.Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]drug.Record, 0, len(records)),
		byName:  make(map[string]int, len(records)),
	}
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		key := nameKey(r.Name)
		if _, dup := c.byName[key]; !dup {
			c.byName[key] = len(c.records)
		}
		c.records = append(c.records, r)
	}
	if len(c.records) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	return c, nil
}

// All returns every record in scan order. Callers must not modify the slice.
func (c *Catalog) All() []drug.Record { return c.records }

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// UniqueNames returns the number of distinct names.
func (c *Catalog) UniqueNames() int { return len(c.byName) }

// FindByExactName returns the first record whose name equals name,
// ignoring case and surrounding whitespace.
func (c *Catalog) FindByExactName(name string) (drug.Record, bool) {
	i, ok := c.byName[nameKey(name)]
	if !ok {
		return drug.Record{}, false
	}
	return c.records[i], true
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
