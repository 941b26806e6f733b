package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/storage"
)

// Remove deletes the record for username and host
func Remove(cfg Config, username, host string) {
	m := cfg.NewManager(core.Identity{Username: username, Host: host}, storage.ReadWrite)

	if err := m.RemoveRecord(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to remove entry [%s/%s]\n", host, username)
		HandleError(err)
	}

	// Compact database to reclaim space
	if err := m.Compact(); err != nil {
		cfg.Logger().Warnf("compaction failed: %s", err)
	}

	fmt.Println("Entry deleted")
}
