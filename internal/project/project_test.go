package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validData() []byte {
	return []byte(`{
		"name": "my-schemas",
		"version": "1.2.0",
		"targetVersions": ["3.6.0", "3.5.0"],
		"artifacts": [
			{"schema": "/a/b.xsd"}
		]
	}`)
}

func TestParseValid(t *testing.T) {
	p, err := Parse("", validData())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "my-schemas" || p.Version != "1.2.0" {
		t.Errorf("parsed project = %+v", p)
	}
	if len(p.TargetVersions) != 2 || len(p.Artifacts) != 1 {
		t.Errorf("parsed project = %+v", p)
	}
}

func TestParseFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, validData(), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}
	if _, err := Parse(path, nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestValidateDuplicateLabels(t *testing.T) {
	data := []byte(`{
		"name": "p", "version": "1.0.0",
		"targetVersions": ["3.6.0"],
		"artifacts": [
			{"schema": "/a.xsd", "label": "file"},
			{"schema": "/b.xsd", "label": "file"}
		]
	}`)
	_, err := Parse("", data)
	if err == nil {
		t.Fatal("Parse accepted duplicate labels")
	}
	if !strings.Contains(err.Error(), `"file"`) {
		t.Errorf("error %q does not name the duplicate label", err)
	}
}

func TestValidateDuplicateEmptyLabels(t *testing.T) {
	data := []byte(`{
		"name": "p", "version": "1.0.0",
		"targetVersions": ["3.6.0"],
		"artifacts": [
			{"schema": "/a.xsd"},
			{"schema": "/b.xsd"}
		]
	}`)
	if _, err := Parse("", data); err == nil {
		t.Fatal("Parse accepted two unlabeled artifacts")
	}
}

func TestValidateRelativeSchemaPath(t *testing.T) {
	data := []byte(`{
		"name": "p", "version": "1.0.0",
		"targetVersions": ["3.6.0"],
		"artifacts": [{"schema": "a.xsd"}]
	}`)
	_, err := Parse("", data)
	if err == nil {
		t.Fatal("Parse accepted a relative schema path")
	}
	if !strings.Contains(err.Error(), "absolute") {
		t.Errorf("error = %q, want mention of absolute path", err)
	}
}

func TestValidateBadTargetVersion(t *testing.T) {
	data := []byte(`{
		"name": "p", "version": "1.0.0",
		"targetVersions": ["not-a-version"],
		"artifacts": [{"schema": "/a.xsd"}]
	}`)
	if _, err := Parse("", data); err == nil {
		t.Fatal("Parse accepted a malformed target version")
	}
}

func TestResolvedClasspathDeclared(t *testing.T) {
	p := &Project{Classpath: []string{"res", "/abs/lib"}}
	got := p.ResolvedClasspath("/proj")
	if len(got) != 2 {
		t.Fatalf("ResolvedClasspath = %v", got)
	}
	if got[0] != filepath.Join("/proj", "res") || got[1] != "/abs/lib" {
		t.Errorf("ResolvedClasspath = %v", got)
	}
}

func TestResolvedClasspathDefault(t *testing.T) {
	dir := t.TempDir()
	p := &Project{}

	// No src/main/resources: fall back to the project directory.
	got := p.ResolvedClasspath(dir)
	if len(got) != 1 || got[0] != dir {
		t.Errorf("ResolvedClasspath = %v, want [%s]", got, dir)
	}

	res := filepath.Join(dir, "src", "main", "resources")
	if err := os.MkdirAll(res, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got = p.ResolvedClasspath(dir)
	if len(got) != 1 || got[0] != res {
		t.Errorf("ResolvedClasspath = %v, want [%s]", got, res)
	}
}
