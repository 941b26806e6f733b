package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/keyring"
)

// GenKey prints a new revised-format key, optionally saving it to the
// OS keyring under name
func GenKey(name string) {
	key, err := core.GenerateKey()
	if err != nil {
		HandleError(err)
	}

	if name == "" {
		fmt.Println(key)
		return
	}

	if err := keyring.SaveKey(name, key); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Key saved to keyring as %q\n", name)
}

// KeyringDelete removes a key from the OS keyring
func KeyringDelete(name string) {
	if err := keyring.DeleteKey(name); err != nil {
		fmt.Printf("No key %q stored in keyring\n", name)
		return
	}
	fmt.Printf("Key %q removed from keyring\n", name)
}

// KeyringStatus checks if a key is stored in the keyring
func KeyringStatus(name string) {
	if keyring.HasKey(name) {
		fmt.Printf("Key %q: stored in keyring\n", name)
	} else {
		fmt.Printf("Key %q: not stored\n", name)
	}
}
