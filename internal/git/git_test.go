package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v: %s", err, out)
	}
	return dir
}

func TestCheckDataFileOutsideRepo(t *testing.T) {
	dir := t.TempDir()

	status := CheckDataFile(dir, ".pddatafile")
	if status.IsRepo {
		t.Skip("temp dir is inside a git repository")
	}
	if status.Tracked || status.Ignored {
		t.Errorf("Unexpected status outside repo: %+v", status)
	}
	if got := FormatDataFileStatus(status); got != "" {
		t.Errorf("Expected empty output outside repo, got %q", got)
	}
}

func TestCheckDataFile(t *testing.T) {
	dir := initRepo(t)
	name := ".pddatafile"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	status := CheckDataFile(dir, name)
	if !status.IsRepo || status.Tracked || status.Ignored {
		t.Errorf("Unexpected status for new file: %+v", status)
	}
	if got := FormatDataFileStatus(status); !strings.Contains(got, "warning") {
		t.Errorf("Expected warning, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(name+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}
	status = CheckDataFile(dir, name)
	if !status.Ignored {
		t.Errorf("File should be ignored: %+v", status)
	}
	if got := FormatDataFileStatus(status); !strings.Contains(got, "ok") {
		t.Errorf("Expected ok, got %q", got)
	}

	cmd := exec.Command("git", "add", "-f", name)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add failed: %v: %s", err, out)
	}
	status = CheckDataFile(dir, name)
	if !status.Tracked {
		t.Errorf("File should be tracked: %+v", status)
	}
	if got := FormatDataFileStatus(status); !strings.Contains(got, "git rm --cached") {
		t.Errorf("Expected error with fix hint, got %q", got)
	}
}
