package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolverFirstRootWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "a", "b.xsd"), "first")
	writeFile(t, filepath.Join(second, "a", "b.xsd"), "second")

	r := NewResolver([]string{first, second})
	got, err := r.Resolve("/a/b.xsd")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(first, "a", "b.xsd") {
		t.Errorf("Resolve = %q, want file under first root", got)
	}
}

func TestResolverFallsThrough(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "only.xsd"), "x")

	r := NewResolver([]string{first, second})
	got, err := r.Resolve("/only.xsd")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(second, "only.xsd") {
		t.Errorf("Resolve = %q", got)
	}
}

func TestResolverMissing(t *testing.T) {
	r := NewResolver([]string{t.TempDir()})
	_, err := r.Resolve("/missing/schema.xsd")
	if err == nil {
		t.Fatal("Resolve on missing resource returned nil error")
	}
	if !strings.Contains(err.Error(), "/missing/schema.xsd") {
		t.Errorf("error %q does not reference the missing path", err)
	}
}

func TestResolverFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "s.xsd"), "x")
	t.Setenv(ClasspathEnv, dir)

	r := ResolverFromEnv()
	if _, err := r.Resolve("/s.xsd"); err != nil {
		t.Errorf("Resolve: %v", err)
	}
}
