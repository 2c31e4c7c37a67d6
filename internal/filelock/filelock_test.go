package filelock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "finx_private.yml")

	if err := AtomicWrite(target, []byte("employment: []\n")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "employment: []\n" {
		t.Errorf("content = %q, want %q", string(data), "employment: []\n")
	}

	// No temp files should remain
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only target file in dir, found %d entries", len(entries))
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "config.yml")

	if err := AtomicWrite(target, []byte("old")); err != nil {
		t.Fatalf("first write error = %v", err)
	}
	if err := AtomicWrite(target, []byte("new")); err != nil {
		t.Fatalf("second write error = %v", err)
	}

	data, _ := os.ReadFile(target)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", string(data), "new")
	}
}

func TestAtomicWriteCreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "nested", "dir", "config.yml")

	if err := AtomicWrite(target, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target not created: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "config.yml.lock")

	fl := NewFileLock(lockPath)
	acquired, err := fl.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire uncontended lock")
	}

	// Second lock handle on the same path should not acquire
	fl2 := NewFileLock(lockPath)
	acquired2, err := fl2.TryLock()
	if err != nil {
		t.Fatalf("second TryLock() error = %v", err)
	}
	if acquired2 {
		t.Error("expected second TryLock to fail while lock held")
	}

	if err := fl.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
}

func TestLockAndWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "finx_private.yml")

	if err := LockAndWrite(target, []byte("bank: {}\n")); err != nil {
		t.Fatalf("LockAndWrite() error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(data) != "bank: {}\n" {
		t.Errorf("content = %q", string(data))
	}
}
