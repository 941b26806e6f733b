package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/illarion/pswdfile/internal/core"
	"github.com/illarion/pswdfile/internal/keyring"
	"github.com/illarion/pswdfile/internal/logging"
	"github.com/illarion/pswdfile/internal/storage"
)

// KeyEnv names the environment variable holding a revised-format key
const KeyEnv = "PSWDFILE_KEY"

// Config carries the per-command options shared by all subcommands
type Config struct {
	File        string // Data file path
	Revised     bool   // Use the revised blob format
	Key         string // Revised key, URL-safe base64
	KeyringName string // Load the revised key from the OS keyring
	Verbose     bool
	Debug       bool
}

// Logger builds the console logger for the configured verbosity
func (c Config) Logger() logging.Logger {
	return logging.Logger{Verbose: c.Verbose, Debug: c.Debug}
}

// options resolves the manager options for mode
func (c Config) options(mode storage.Mode) (core.Options, error) {
	opts := core.Options{
		Variant: core.Legacy,
		Mode:    mode,
		Logger:  c.Logger(),
	}

	if c.File != "" {
		path, err := filepath.Abs(c.File)
		if err != nil {
			return opts, fmt.Errorf("failed to resolve %s: %w", c.File, err)
		}
		opts.Dir = filepath.Dir(path)
		opts.FileName = filepath.Base(path)
	}

	if !c.Revised {
		if c.Key != "" || c.KeyringName != "" {
			return opts, core.ErrKeyNotSupported
		}
		return opts, nil
	}

	opts.Variant = core.Revised
	switch {
	case c.Key != "":
		opts.Key = c.Key
	case c.KeyringName != "":
		key, err := keyring.GetKey(c.KeyringName)
		if err != nil {
			return opts, fmt.Errorf("failed to load key %q from keyring: %w", c.KeyringName, err)
		}
		opts.Key = key
	default:
		opts.Key = os.Getenv(KeyEnv)
	}
	return opts, nil
}

// NewManager creates a manager for id or exits
func (c Config) NewManager(id core.Identity, mode storage.Mode) *core.Manager {
	opts, err := c.options(mode)
	if err != nil {
		HandleError(err)
	}

	m, err := core.New(opts)
	if err != nil {
		HandleError(err)
	}
	m.Identity = id

	c.Logger().Debugf("data file %s/%s (%s, %s)", opts.Dir, opts.FileName, opts.Variant.Name, mode)
	return m
}

// GetPassword retrieves the password to encrypt from the argument,
// the environment, or an interactive prompt.
// The caller is responsible for calling crypto.ClearBytes on the returned password
func GetPassword(arg []string) ([]byte, error) {
	if len(arg) > 0 {
		return []byte(arg[0]), nil
	}

	// Try environment variable first
	if password := core.GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	return core.ReadPasswordConfirm()
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrDirectoryNotFound), errors.Is(err, core.ErrFileNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'pswdfile add' to create the data file\n")
	case errors.Is(err, core.ErrRecordNotFound):
		fmt.Fprintf(os.Stderr, "Error: record not found\n")
	case errors.Is(err, core.ErrKeyNotSupported):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Add -revised to use a supplied key\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}
