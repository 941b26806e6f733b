package storage

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

const testFile = "test.pddatafile"

// encodeLegacyRecord writes a value the way older stores did
func encodeLegacyRecord(t *testing.T, rec Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		t.Fatalf("Failed to gob-encode record: %v", err)
	}
	return []byte(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func openTest(t *testing.T, dir string, mode Mode) *Storage {
	t.Helper()
	db, err := Open(dir, testFile, mode)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func TestOpenAndInitialize(t *testing.T) {
	dir := t.TempDir()

	db := openTest(t, dir, CreateIfMissing)
	defer db.Close()

	info, err := db.Info()
	if err != nil {
		t.Fatalf("Failed to read info: %v", err)
	}
	if info.Version != "1" {
		t.Errorf("Version mismatch: got %q, want 1", info.Version)
	}
	if info.Created.IsZero() || info.Modified.IsZero() {
		t.Error("Timestamps should be set on a new database")
	}
	if info.Path != filepath.Join(dir, testFile) {
		t.Errorf("Path mismatch: got %s", info.Path)
	}
	if info.Records != 0 {
		t.Errorf("Expected 0 records, got %d", info.Records)
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open(filepath.Join(dir, "missing"), testFile, CreateIfMissing); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Expected ErrDirectoryNotFound, got %v", err)
	}

	for _, mode := range []Mode{ReadOnly, ReadWrite} {
		if _, err := Open(dir, testFile, mode); !errors.Is(err, ErrFileNotFound) {
			t.Errorf("%s: expected ErrFileNotFound, got %v", mode, err)
		}
	}

	if _, err := Open("", testFile, CreateIfMissing); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Expected ErrDirectoryNotFound for empty dir, got %v", err)
	}

	if _, err := Open(dir, "../escape", CreateIfMissing); !errors.Is(err, ErrStoreOpenFailure) {
		t.Errorf("Expected ErrStoreOpenFailure for escaping name, got %v", err)
	}

	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte("not a bolt file"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := Open(dir, "garbage", ReadWrite); !errors.Is(err, ErrStoreOpenFailure) {
		t.Errorf("Expected ErrStoreOpenFailure, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"r", ReadOnly, false},
		{"rw", ReadWrite, false},
		{"c", CreateIfMissing, false},
		{"w", CreateIfMissing, false},
		{"createIfMissing", CreateIfMissing, false},
		{"x", ReadOnly, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecordOperations(t *testing.T) {
	db := openTest(t, t.TempDir(), CreateIfMissing)
	defer db.Close()

	rec := Record{Host: "db1", Username: "alice", Blob: "blob=="}
	if err := db.Put("k1", rec); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	got, err := db.Get("k1")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if got != rec {
		t.Errorf("Record mismatch: got %+v, want %+v", got, rec)
	}

	// Overwrite
	rec.Blob = "other=="
	if err := db.Put("k1", rec); err != nil {
		t.Fatalf("Failed to overwrite record: %v", err)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("Expected 1 record after overwrite, got %d", n)
	}

	if _, err := db.Get("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}

	if err := db.Delete("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}

	if err := db.Delete("k1"); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if ok, err := db.Has("k1"); err != nil || ok {
		t.Errorf("Record should be gone: ok=%v err=%v", ok, err)
	}
}

func TestList(t *testing.T) {
	db := openTest(t, t.TempDir(), CreateIfMissing)
	defer db.Close()

	records, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", records)
	}

	if err := db.Put("b", Record{Username: "bob"}); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	if err := db.Put("a", Record{Username: "alice", Host: "db1"}); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	records, err = db.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Username != "alice" || records[1].Username != "bob" {
		t.Errorf("Records should be in key order: %+v", records)
	}
}

func TestLegacyRecordFormat(t *testing.T) {
	db := openTest(t, t.TempDir(), CreateIfMissing)
	defer db.Close()

	legacy := Record{Host: "db1", Username: "alice", Blob: "legacy+/blob=="}
	value := encodeLegacyRecord(t, legacy)
	err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(RecordsBucket).Put([]byte("legacy"), value)
	})
	if err != nil {
		t.Fatalf("Failed to write legacy value: %v", err)
	}
	if err := db.Put("native", Record{Username: "bob"}); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	got, err := db.Get("legacy")
	if err != nil {
		t.Fatalf("Failed to read legacy record: %v", err)
	}
	if got != legacy {
		t.Errorf("Legacy record mismatch: got %+v, want %+v", got, legacy)
	}

	records, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list mixed records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestDecodeRecordInvalid(t *testing.T) {
	for _, value := range []string{"{not json", "!!!not base64", base64.StdEncoding.EncodeToString([]byte("not gob"))} {
		if _, err := decodeRecord([]byte(value)); err == nil {
			t.Errorf("decodeRecord(%q) should fail", value)
		}
	}
}

func TestReadOnly(t *testing.T) {
	dir := t.TempDir()

	db := openTest(t, dir, CreateIfMissing)
	if err := db.Put("k1", Record{Username: "alice"}); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	ro := openTest(t, dir, ReadOnly)
	defer ro.Close()

	if _, err := ro.Get("k1"); err != nil {
		t.Errorf("Read-only get failed: %v", err)
	}
	if err := ro.Put("k2", Record{Username: "bob"}); !errors.Is(err, ErrStoreWriteFailure) {
		t.Errorf("Expected ErrStoreWriteFailure, got %v", err)
	}
	if err := ro.Delete("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
	if err := ro.Delete("k1"); !errors.Is(err, ErrStoreWriteFailure) {
		t.Errorf("Expected ErrStoreWriteFailure, got %v", err)
	}
	if err := ro.Compact(); !errors.Is(err, ErrStoreWriteFailure) {
		t.Errorf("Expected ErrStoreWriteFailure, got %v", err)
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	db := openTest(t, dir, CreateIfMissing)
	if err := db.Put("k1", Record{Username: "alice", Blob: "data"}); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	db.Close()

	// Reopen and verify
	db2 := openTest(t, dir, ReadWrite)
	defer db2.Close()

	rec, err := db2.Get("k1")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if rec.Blob != "data" {
		t.Error("Record not persisted correctly")
	}
}

func TestCompact(t *testing.T) {
	dir := t.TempDir()
	db := openTest(t, dir, CreateIfMissing)
	defer db.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := db.Put(k, Record{Username: k}); err != nil {
			t.Fatalf("Failed to put record: %v", err)
		}
	}
	if err := db.Delete("b"); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Failed to compact: %v", err)
	}

	records, err := db.List()
	if err != nil {
		t.Fatalf("Failed to list after compact: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records after compact, got %d", len(records))
	}
	if _, err := os.Stat(filepath.Join(dir, testFile+".compact")); !os.IsNotExist(err) {
		t.Error("Temporary compact file should be removed")
	}
}
