package build

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHashWatchedSetStable(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.xsd":       "<a/>",
		"sub/b.xsd":   "<b/>",
		"sub/c/d.txt": "d",
	})

	h1, err := hashWatchedSet([]string{dir})
	if err != nil {
		t.Fatalf("hashWatchedSet: %v", err)
	}
	h2, err := hashWatchedSet([]string{dir})
	if err != nil {
		t.Fatalf("hashWatchedSet: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hash not stable: %s vs %s", h1, h2)
	}
}

func TestHashWatchedSetChangesOnContent(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.xsd": "<a/>"})

	h1, err := hashWatchedSet([]string{dir})
	if err != nil {
		t.Fatalf("hashWatchedSet: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.xsd"), []byte("<changed/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h2, err := hashWatchedSet([]string{dir})
	if err != nil {
		t.Fatalf("hashWatchedSet: %v", err)
	}
	if h1 == h2 {
		t.Error("hash unchanged after content change")
	}
}

func TestHashWatchedSetChangesOnNewFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.xsd": "<a/>"})

	h1, _ := hashWatchedSet([]string{dir})
	writeTree(t, dir, map[string]string{"b.xsd": "<b/>"})
	h2, _ := hashWatchedSet([]string{dir})
	if h1 == h2 {
		t.Error("hash unchanged after adding a file")
	}
}

func TestHashWatchedSetMissingRoot(t *testing.T) {
	dir := t.TempDir()
	h, err := hashWatchedSet([]string{filepath.Join(dir, "nope")})
	if err != nil {
		t.Fatalf("hashWatchedSet: %v", err)
	}
	if h == "" {
		t.Error("hashWatchedSet returned empty hash")
	}
}

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &cacheState{
		WatchHash: "abc",
		Artifacts: []string{"/out/a.bin", "/out/b.bin"},
		BuildTime: time.Now().UTC(),
	}
	if err := saveState(dir, want); err != nil {
		t.Fatalf("saveState: %v", err)
	}
	got, err := loadState(dir)
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	if got.WatchHash != want.WatchHash {
		t.Errorf("WatchHash = %q, want %q", got.WatchHash, want.WatchHash)
	}
	if len(got.Artifacts) != 2 || got.Artifacts[0] != "/out/a.bin" {
		t.Errorf("Artifacts = %v", got.Artifacts)
	}
}

func TestLoadStateMissing(t *testing.T) {
	if _, err := loadState(t.TempDir()); err == nil {
		t.Error("loadState on empty dir returned nil error")
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}
