package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/git"
	"github.com/illarion/pswdfile/internal/storage"
)

// Status shows details about the data file
func Status(cfg Config) {
	m := cfg.NewManager(core.Identity{}, storage.ReadOnly)

	info, err := m.Info()
	if err != nil {
		HandleError(err)
	}

	var size int64
	if st, err := os.Stat(info.Path); err == nil {
		size = st.Size()
	}

	fmt.Printf("File:     %s (%s)\n", info.Path, formatSize(size))
	fmt.Printf("Version:  %s\n", info.Version)
	fmt.Printf("Entries:  %d\n", info.Records)
	if !info.Created.IsZero() {
		fmt.Printf("Created:  %s (%s)\n", info.Created.Format(time.RFC3339), humanize.Time(info.Created))
	}
	if !info.Modified.IsZero() {
		fmt.Printf("Modified: %s (%s)\n", info.Modified.Format(time.RFC3339), humanize.Time(info.Modified))
	}

	fmt.Print(git.FormatDataFileStatus(git.CheckDataFile(filepath.Dir(info.Path), filepath.Base(info.Path))))
}
