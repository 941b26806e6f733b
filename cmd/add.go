package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/crypto"
	"github.com/illarion/pswdfile/internal/storage"
)

// Upsert encrypts password for username and host and stores the record,
// replacing any existing one.
func Upsert(cfg Config, username, host string, password []byte, update bool) {
	defer crypto.ClearBytes(password)

	m := cfg.NewManager(core.Identity{Username: username, Host: host}, storage.CreateIfMissing)
	m.Password = password

	_, err := m.Encrypt()
	if err == nil && m.Variant().Name == core.Revised.Name {
		err = m.SaveToFile()
	}
	if err != nil {
		verb := "add"
		if update {
			verb = "add/update"
		}
		fmt.Fprintf(os.Stderr, "Failed to %s entry [%s/%s]\n", verb, host, username)
		HandleError(err)
	}

	if update {
		fmt.Println("Entry updated")
	} else {
		fmt.Println("Entry added")
	}
}
