package core

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestRecordKey(t *testing.T) {
	a := Identity{Username: "a", Host: "h"}

	if a.RecordKey() != a.RecordKey() {
		t.Error("RecordKey should be deterministic")
	}
	if a.RecordKey() == (Identity{Username: "a", Host: "h2"}).RecordKey() {
		t.Error("RecordKey should differ by host")
	}
	if a.RecordKey() == (Identity{Username: "b", Host: "h"}).RecordKey() {
		t.Error("RecordKey should differ by username")
	}

	tests := []struct {
		id     Identity
		hashed string
	}{
		{Identity{Username: "alice", Host: "db1"}, "alice@db1"},
		{Identity{Username: "alice"}, "alice"},
	}
	for _, tt := range tests {
		sum := sha256.Sum256([]byte(tt.hashed))
		want := hex.EncodeToString(sum[:])
		if got := tt.id.RecordKey(); got != want {
			t.Errorf("RecordKey(%+v) = %s, want %s", tt.id, got, want)
		}
		if len(tt.id.RecordKey()) != 64 {
			t.Errorf("RecordKey should be 64 hex characters")
		}
	}
}

func TestKind(t *testing.T) {
	if Kind(nil) != "" {
		t.Error("Kind(nil) should be empty")
	}
	for _, k := range kinds {
		if got := Kind(k.err); got != k.name {
			t.Errorf("Kind(%v) = %q, want %q", k.err, got, k.name)
		}
	}
}
