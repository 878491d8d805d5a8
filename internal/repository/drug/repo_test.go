package drug

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/vetdex/internal/domain"
	domdrug "github.com/kailas-cloud/vetdex/internal/domain/drug"
)

func sampleRecords(n int) []domdrug.Record {
	out := make([]domdrug.Record, n)
	for i := range out {
		out[i] = domdrug.Record{Name: fmt.Sprintf("Препарат %d", i), DogDosage: fmt.Sprintf("%d мг/кг", i)}
	}
	return out
}

func TestSaveLoad_PreservesOrder(t *testing.T) {
	s := newMemStore()
	repo := New(s, "vetdex:")
	records := sampleRecords(12)
	records[3].Storage = "Холодильник"

	if err := repo.Save(context.Background(), records); err != nil {
		t.Fatalf("save: %v", err)
	}
	if string(s.kv["vetdex:catalog:count"]) != "12" {
		t.Errorf("unexpected count %q", s.kv["vetdex:catalog:count"])
	}
	if _, ok := s.hashes["vetdex:drug:3"]; !ok {
		t.Fatal("expected key vetdex:drug:3")
	}
	if _, ok := s.hashes["vetdex:drug:3"]["cat_dosage"]; ok {
		t.Error("blank fields must not be stored")
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	s := newMemStore()
	repo := New(s, "vetdex:")

	if err := repo.Save(context.Background(), sampleRecords(5)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(context.Background(), sampleRecords(2)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected old snapshot to be removed, got %d records", len(got))
	}
}

func TestSave_Batches(t *testing.T) {
	s := newMemStore()
	repo := New(s, "")

	if err := repo.Save(context.Background(), sampleRecords(250)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.hsetCalls != 3 {
		t.Errorf("expected 3 HSET batches, got %d", s.hsetCalls)
	}
}

func TestSave_StoreError(t *testing.T) {
	s := newMemStore()
	s.hsetMultiErr = errors.New("conn reset")
	repo := New(s, "")

	if err := repo.Save(context.Background(), sampleRecords(1)); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := s.kv["catalog:count"]; ok {
		t.Error("count must not be written after a failed save")
	}
}

func TestLoad_Empty(t *testing.T) {
	repo := New(newMemStore(), "vetdex:")
	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrCatalogEmpty) {
		t.Errorf("expected ErrCatalogEmpty, got %v", err)
	}
}

func TestLoad_Incomplete(t *testing.T) {
	s := newMemStore()
	repo := New(s, "vetdex:")
	if err := repo.Save(context.Background(), sampleRecords(3)); err != nil {
		t.Fatalf("save: %v", err)
	}
	delete(s.hashes, "vetdex:drug:1")

	if _, err := repo.Load(context.Background()); !errors.Is(err, ErrSnapshotIncomplete) {
		t.Errorf("expected ErrSnapshotIncomplete, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	s := newMemStore()
	s.scanErr = errors.New("timeout")
	if _, err := New(s, "").Load(context.Background()); err == nil {
		t.Error("expected scan error")
	}

	s = newMemStore()
	repo := New(s, "")
	if err := repo.Save(context.Background(), sampleRecords(1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.getErr = errors.New("timeout")
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected get error")
	}
}

func TestParseHashFields_SkipsBadSeq(t *testing.T) {
	if _, _, ok := parseHashFields(map[string]string{"name": "x"}); ok {
		t.Error("hash without __seq must be rejected")
	}
	rec, seq, ok := parseHashFields(map[string]string{"__seq": "7", "name": "x", "junk": "y"})
	if !ok || seq != 7 || rec.Name != "x" {
		t.Errorf("unexpected parse %+v %d %v", rec, seq, ok)
	}
}
