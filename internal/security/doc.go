// Package security confines data file access to the directory it was
// configured with.
//
// File names are checked with filepath.IsLocal and lookups go through
// os.Root, so a name like "../other" or a symlink pointing outside the
// directory cannot be used to reach another file.
package security
