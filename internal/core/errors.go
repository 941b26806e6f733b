package core

import (
	"errors"

	"github.com/illarion/pswdfile/internal/storage"
)

var (
	ErrMissingPassword       = errors.New("missing password to encrypt")
	ErrMissingUsername       = errors.New("missing username")
	ErrMissingRequiredField  = errors.New("missing required username")
	ErrMissingEncryptedInput = errors.New("missing encrypted password")
	ErrKeyNotSupported       = errors.New("supplied keys require the revised variant")
	ErrInvalidKey            = errors.New("invalid supplied key")
)

// Store failures are raised by the storage package and passed through.
var (
	ErrRecordNotFound    = storage.ErrRecordNotFound
	ErrDirectoryNotFound = storage.ErrDirectoryNotFound
	ErrFileNotFound      = storage.ErrFileNotFound
	ErrStoreOpenFailure  = storage.ErrStoreOpenFailure
	ErrStoreWriteFailure = storage.ErrStoreWriteFailure
	ErrStoreCloseFailure = storage.ErrStoreCloseFailure
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrMissingPassword, "MissingPassword"},
	{ErrMissingUsername, "MissingUsername"},
	{ErrMissingRequiredField, "MissingRequiredField"},
	{ErrMissingEncryptedInput, "MissingEncryptedInput"},
	{ErrRecordNotFound, "RecordNotFound"},
	{ErrDirectoryNotFound, "DirectoryNotFound"},
	{ErrFileNotFound, "FileNotFound"},
	{ErrStoreOpenFailure, "StoreOpenFailure"},
	{ErrStoreWriteFailure, "StoreWriteFailure"},
	{ErrStoreCloseFailure, "StoreCloseFailure"},
}

// Kind names the error kind carried by err. Malformed-blob failures from
// decoding or decryption have no kind and return "".
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
