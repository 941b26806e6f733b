package cmd

import (
	"fmt"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/crypto"
	"github.com/illarion/pswdfile/internal/storage"
)

// Get prints the password stored for username and host
func Get(cfg Config, username, host string) {
	m := cfg.NewManager(core.Identity{Username: username, Host: host}, storage.ReadOnly)

	var (
		password []byte
		err      error
	)
	if m.Variant().Name == core.Revised.Name {
		var rec storage.Record
		if rec, err = m.GetRecord(); err == nil {
			password, err = m.DecryptBlob(rec.Blob)
		}
	} else {
		password, err = m.Decrypt()
	}
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	fmt.Println(string(password))
}
