package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Identity selects the key derivation and the stored record.
// Empty fields count as absent.
type Identity struct {
	Username string
	Host     string
}

// RecordKey returns the hex SHA-256 of "username" or "username@host".
// It is stable across runs and never salted.
func (id Identity) RecordKey() string {
	sum := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(sum[:])
}

func (id Identity) String() string {
	if id.Host != "" && id.Username != "" {
		return id.Username + "@" + id.Host
	}
	return id.Username
}
