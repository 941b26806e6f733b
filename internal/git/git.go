package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// DataFileStatus describes how git sees a password data file
type DataFileStatus struct {
	IsRepo  bool
	Name    string
	Tracked bool // The file is committed or staged
	Ignored bool // The file matches a .gitignore rule
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	err := cmd.Run()

	// git check-ignore returns exit code 0 if file is ignored
	return err == nil
}

// CheckDataFile reports whether the data file name inside dir is tracked
// or ignored by git. Outside a repository only IsRepo is set.
func CheckDataFile(dir, name string) DataFileStatus {
	status := DataFileStatus{Name: name}
	if !IsGitRepo(dir) {
		return status
	}

	status.IsRepo = true
	status.Tracked = IsTracked(dir, name)
	status.Ignored = IsIgnored(dir, name)
	return status
}

// FormatDataFileStatus formats git status for display
func FormatDataFileStatus(status DataFileStatus) string {
	if !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit Integration:\n")

	switch {
	case status.Tracked:
		result.WriteString(fmt.Sprintf("   error: %s is tracked by git (run: git rm --cached %s)\n", status.Name, status.Name))
	case status.Ignored:
		result.WriteString(fmt.Sprintf("   ok: %s is in .gitignore\n", status.Name))
	default:
		result.WriteString(fmt.Sprintf("   warning: %s not in .gitignore (add to .gitignore)\n", status.Name))
	}

	return result.String()
}
