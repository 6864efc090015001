// Package project parses and validates the declarative build
// description consumed by the orchestrator.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/scala-steward/daffodil-build/internal/version"
)

// DefaultFile is the project file name looked up in the working
// directory when none is given.
const DefaultFile = "daffodil.json"

// defaultResourceDir is the classpath root assumed when the project
// declares none.
const defaultResourceDir = "src/main/resources"

// An ArtifactSpec is a declared request to produce one compiled
// artifact. Declared once in the project file, consumed once per
// (artifact x target version) pair, never mutated afterwards.
type ArtifactSpec struct {
	// Schema is the absolute resource path of the schema to compile,
	// resolved against the classpath at compile time.
	Schema string `json:"schema"`
	// Root optionally names the root element; empty means the schema's
	// first element declaration.
	Root string `json:"root,omitempty"`
	// Label disambiguates multiple artifacts sharing a target version.
	Label string `json:"label,omitempty"`
	// Config optionally points at a compiler configuration file.
	Config string `json:"config,omitempty"`
}

// A Project is the immutable build description: assembled once from
// the project file, validated before any compilation runs.
type Project struct {
	Name           string         `json:"name"`
	Version        string         `json:"version"`
	Classpath      []string       `json:"classpath,omitempty"`
	TargetVersions []string       `json:"targetVersions"`
	Artifacts      []ArtifactSpec `json:"artifacts"`
}

// Parse reads and parses a project file from either provided data or a
// file path. If data is non-nil, it is used directly and the file
// parameter is ignored. The parsed project is validated before it is
// returned.
func Parse(file string, data []byte) (*Project, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
	}

	var p Project

	if err := json.NewDecoder(reader).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the structural preconditions that must hold before
// any compilation runs: every target version well formed, every schema
// path absolute, and no two artifacts sharing a label. Violations are
// configuration errors that abort the whole build.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project has no name")
	}
	if p.Version == "" {
		return fmt.Errorf("project has no version")
	}
	if len(p.TargetVersions) == 0 {
		return fmt.Errorf("project declares no target daffodil versions")
	}
	for _, v := range p.TargetVersions {
		if !semver.IsValid("v" + version.Strip(v)) {
			return fmt.Errorf("invalid target version %q", v)
		}
	}
	if len(p.Artifacts) == 0 {
		return fmt.Errorf("project declares no artifacts")
	}

	seen := make(map[string]bool)
	for _, a := range p.Artifacts {
		if !strings.HasPrefix(a.Schema, "/") {
			return fmt.Errorf("schema path %q is not an absolute resource path", a.Schema)
		}
		if seen[a.Label] {
			if a.Label == "" {
				return fmt.Errorf("multiple artifacts without a label; set a label to disambiguate")
			}
			return fmt.Errorf("duplicate artifact label %q", a.Label)
		}
		seen[a.Label] = true
	}
	return nil
}

// ResolvedClasspath returns the declared classpath entries resolved
// against baseDir, or the default resource layout when none are
// declared: src/main/resources if it exists, the project directory
// otherwise.
func (p *Project) ResolvedClasspath(baseDir string) []string {
	if len(p.Classpath) > 0 {
		out := make([]string, len(p.Classpath))
		for i, entry := range p.Classpath {
			if filepath.IsAbs(entry) {
				out[i] = entry
			} else {
				out[i] = filepath.Join(baseDir, entry)
			}
		}
		return out
	}
	def := filepath.Join(baseDir, filepath.FromSlash(defaultResourceDir))
	if info, err := os.Stat(def); err == nil && info.IsDir() {
		return []string{def}
	}
	return []string{baseDir}
}
