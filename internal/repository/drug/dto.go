package drug

import (
	"strconv"

	domdrug "github.com/kailas-cloud/vetdex/internal/domain/drug"
)

// seqField keeps the scan order of a record inside its hash.
const seqField = "__seq"

// buildHashFields converts a record into a flat map for HSET. Blank fields are omitted.
func buildHashFields(seq int, rec *domdrug.Record) map[string]string {
	m := make(map[string]string, len(domdrug.Fields)+1)
	m[seqField] = strconv.Itoa(seq)
	for _, f := range domdrug.Fields {
		if rec.Has(f) {
			m[string(f)] = rec.Value(f)
		}
	}
	return m
}

// parseHashFields converts a hash back into a record and its scan position.
func parseHashFields(m map[string]string) (domdrug.Record, int, bool) {
	seq, err := strconv.Atoi(m[seqField])
	if err != nil {
		return domdrug.Record{}, 0, false
	}
	var rec domdrug.Record
	for k, v := range m {
		if f := domdrug.Field(k); f.IsValid() {
			rec.Set(f, v)
		}
	}
	return rec, seq, true
}
