package keyring

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyLifecycle(t *testing.T) {
	keyring.MockInit()

	if HasKey("prod") {
		t.Fatal("HasKey() should be false before saving")
	}

	if err := SaveKey("prod", "a2V5LWJ5dGVz"); err != nil {
		t.Fatalf("SaveKey() error = %v", err)
	}
	if !HasKey("prod") {
		t.Error("HasKey() should be true after saving")
	}

	got, err := GetKey("prod")
	if err != nil {
		t.Fatalf("GetKey() error = %v", err)
	}
	if got != "a2V5LWJ5dGVz" {
		t.Errorf("GetKey() = %q, want a2V5LWJ5dGVz", got)
	}

	if err := DeleteKey("prod"); err != nil {
		t.Fatalf("DeleteKey() error = %v", err)
	}
	if _, err := GetKey("prod"); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("GetKey() after delete error = %v, want keyring.ErrNotFound", err)
	}
}
