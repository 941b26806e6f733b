package cmd

import (
	"fmt"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/storage"
)

// List shows the identities stored in the data file
func List(cfg Config) {
	m := cfg.NewManager(core.Identity{}, storage.ReadOnly)

	records, err := m.GetAll()
	if err != nil {
		fmt.Println("Failed to get all entries from the file")
		HandleError(err)
	}

	if len(records) == 0 {
		cfg.Logger().Infof("no entries in %s", cfg.File)
		return
	}
	for _, rec := range records {
		fmt.Printf("%s@%s\n", rec.Username, rec.Host)
	}
}
