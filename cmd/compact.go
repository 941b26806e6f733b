package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/storage"
)

// Compact compacts the data file to reclaim unused space
func Compact(cfg Config) {
	m := cfg.NewManager(core.Identity{}, storage.ReadWrite)

	// Get file size before
	info, err := os.Stat(cfg.File)
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := m.Compact(); err != nil {
		HandleError(err)
	}

	// Get file size after
	info, err = os.Stat(cfg.File)
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
