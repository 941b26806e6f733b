package storage

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"encoding/json"
	"fmt"
)

// Record is the persisted form of one encrypted password
type Record struct {
	Host     string `json:"host"`
	Username string `json:"username"`
	Blob     string `json:"blob"`
}

// encodeRecord produces the canonical value format
func encodeRecord(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

// decodeRecord reads either the canonical JSON value or the legacy
// base64(gob) value.
func decodeRecord(value []byte) (Record, error) {
	var rec Record

	trimmed := bytes.TrimSpace(value)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return Record{}, fmt.Errorf("failed to decode record: %w", err)
		}
		return rec, nil
	}

	raw, err := base64.StdEncoding.DecodeString(string(trimmed))
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode legacy record: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode legacy record: %w", err)
	}
	return rec, nil
}
