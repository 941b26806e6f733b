// Package storage provides the BBolt record store for pswdfile.
//
// Database structure uses two buckets:
//   - records: one value per identity, keyed by the hex record key
//   - meta: format version and timestamps
//
// Values are written as JSON objects {host, username, blob}. Older stores
// may hold base64-encoded gob values instead; readers detect and decode
// both transparently.
//
// A Storage is meant to be opened and closed inside a single operation.
// BBolt's file lock serialises opens across processes, but nothing
// coordinates read-modify-write cycles: the last writer wins.
package storage
