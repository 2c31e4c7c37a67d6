package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeka/zip"
)

func TestArchiveCommand_Dummy(t *testing.T) {
	base := writeTree(t, 12)

	output, err := runRoot(t, "archive", "--base-path", base, "--year", "2023", "--dummy")

	if err != nil {
		t.Fatalf("archive --dummy returned error: %v", err)
	}
	if !strings.Contains(output, "12 files would be archived") {
		t.Errorf("expected dummy summary, got: %s", output)
	}
}

func TestArchiveCommand_WithPassword(t *testing.T) {
	base := writeTree(t, 12)
	outputPath := filepath.Join(t.TempDir(), "docs.zip")

	output, err := runRoot(t, "archive",
		"--base-path", base, "--year", "2023",
		"--output", outputPath, "--password", "secret")

	if err != nil {
		t.Fatalf("archive returned error: %v", err)
	}
	if !strings.Contains(output, "Created "+outputPath) {
		t.Errorf("expected creation summary, got: %s", output)
	}

	r, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("created archive is not readable: %v", err)
	}
	defer r.Close()
	// manifest plus twelve documents
	if len(r.File) != 13 {
		t.Errorf("archive has %d members, want 13", len(r.File))
	}
}

// TestArchiveCommand_MissingCancelled verifies the run is cancelled when
// documents are missing and the confirmation answer is not y
func TestArchiveCommand_MissingCancelled(t *testing.T) {
	base := writeTree(t, 5)
	outputPath := filepath.Join(t.TempDir(), "docs.zip")

	root := NewRootCommand()
	var stdout strings.Builder
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetIn(strings.NewReader("n\n"))
	root.SetArgs([]string{"archive",
		"--base-path", base, "--year", "2023",
		"--output", outputPath, "--password", "secret"})

	if err := root.Execute(); err != nil {
		t.Fatalf("archive returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Archive creation cancelled.") {
		t.Errorf("expected cancellation message, got: %s", stdout.String())
	}
	if _, err := os.Stat(outputPath); !os.IsNotExist(err) {
		t.Error("cancelled run must not create the zip file")
	}
}

// TestArchiveCommand_MissingConfirmed verifies a y answer proceeds despite
// missing documents
func TestArchiveCommand_MissingConfirmed(t *testing.T) {
	base := writeTree(t, 5)
	outputPath := filepath.Join(t.TempDir(), "docs.zip")

	root := NewRootCommand()
	var stdout strings.Builder
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetIn(strings.NewReader("y\n"))
	root.SetArgs([]string{"archive",
		"--base-path", base, "--year", "2023",
		"--output", outputPath, "--password", "secret"})

	if err := root.Execute(); err != nil {
		t.Fatalf("archive returned error: %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("confirmed run must create the zip file: %v", err)
	}
}
