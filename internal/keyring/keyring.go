// Package keyring keeps revised-format encryption keys in the OS keyring.
package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "pswdfile"

// SaveKey stores an encoded key in the OS keyring
func SaveKey(name string, encodedKey string) error {
	return keyring.Set(serviceName, name, encodedKey)
}

// GetKey retrieves an encoded key from the OS keyring
func GetKey(name string) (string, error) {
	return keyring.Get(serviceName, name)
}

// DeleteKey removes a key from the OS keyring
func DeleteKey(name string) error {
	return keyring.Delete(serviceName, name)
}

// HasKey checks if a key is stored in the keyring
func HasKey(name string) bool {
	_, err := keyring.Get(serviceName, name)
	return err == nil
}
