package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := WorkDir()
	if err != nil {
		t.Fatalf("WorkDir: %v", err)
	}
	if dir == "" {
		t.Fatal("WorkDir returned empty path")
	}
	if filepath.Base(dir) != ".daffodil-build" {
		t.Errorf("WorkDir = %q, want a .daffodil-build dir", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("WorkDir created a file instead of a directory")
	}

	// Idempotent.
	again, err := WorkDir()
	if err != nil {
		t.Fatalf("second WorkDir call: %v", err)
	}
	if again != dir {
		t.Errorf("WorkDir not idempotent: %q vs %q", dir, again)
	}
}
