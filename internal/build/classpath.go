package build

import (
	"path/filepath"
	"strings"

	"github.com/scala-steward/daffodil-build/internal/daffodil"
)

// A target is one resolved (daffodil version -> toolchain) pairing
// consumed by the orchestrator loop.
type target struct {
	Version    string
	Toolchain  string
	Generation int
	Deps       []daffodil.Dep
}

// classpath constructs the ordered subprocess classpath for a target.
// Order is significant: the dispatcher's own support directory comes
// first, the target-version library directories next, and the general
// project classpath last — the project classpath may carry a different
// daffodil version as an ordinary dependency, and that must not shadow
// the deliberately chosen one.
func classpath(supportDir, libRoot string, t target, projectClasspath []string) []string {
	out := []string{supportDir}
	out = append(out, versionLibDirs(libRoot, t)...)
	out = append(out, projectClasspath...)
	return out
}

// versionLibDirs returns the library directories holding the target
// version's runtime: the daffodil/toolchain pairing plus every
// auxiliary runtime dependency.
func versionLibDirs(libRoot string, t target) []string {
	dirs := []string{
		filepath.Join(libRoot, daffodil.IvyConfigName(t.Version), "scala-"+t.Toolchain),
	}
	for _, dep := range t.Deps {
		dirs = append(dirs, filepath.Join(libRoot, daffodil.IvyConfigName(t.Version), escapeDep(dep)))
	}
	return dirs
}

// escapeDep maps a dependency coordinate to a directory name.
func escapeDep(dep daffodil.Dep) string {
	return strings.NewReplacer(":", "-", "/", "-").Replace(string(dep))
}

// joinClasspath joins entries with the platform list separator for the
// subprocess environment.
func joinClasspath(entries []string) string {
	return strings.Join(entries, string(filepath.ListSeparator))
}
