// Package git checks whether a password data file is exposed to git.
//
// A data file holds passwords that anyone with the file can decrypt when
// keys are derived from identities, so it should never be committed:
//   - Tracked by git: reported as an error
//   - Not in .gitignore: reported as a warning
package git
