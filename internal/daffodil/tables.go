package daffodil

import (
	"fmt"

	"github.com/scala-steward/daffodil-build/internal/version"
)

// Dep is an auxiliary runtime dependency coordinate appended to the
// target-version region of the subprocess classpath.
type Dep string

// Tables carries every range-keyed compatibility table the build
// consults for a target Daffodil version. Ranges within one table are
// expected to be mutually exclusive where a single value is resolved;
// the tables do not enforce it.
type Tables struct {
	// Toolchain maps a target version to its default paired Scala
	// toolchain version.
	Toolchain version.Table[string]

	// ToolchainFloor maps the platform (JVM) version to the minimum
	// toolchain version permitted per toolchain major line.
	ToolchainFloor version.Table[map[string]string]

	// Generation maps a target version to the internal API generation
	// driving the compile dispatch. The generation is not the library
	// version; several releases share one generation.
	Generation version.Table[int]

	// RuntimeDeps maps a target version to extra runtime dependencies.
	// List-valued: every matching entry contributes.
	RuntimeDeps version.Table[[]Dep]
}

// Default returns the built-in compatibility tables.
func Default() Tables {
	return Tables{
		Toolchain: version.NewTable(
			version.On(">=3.2.0 <3.5.0", "2.12.15"),
			version.On(">=3.5.0", "2.12.18"),
		),
		ToolchainFloor: version.NewTable(
			version.On(">=21", map[string]string{
				"2.12": "2.12.18",
				"2.13": "2.13.11",
			}),
			version.On(">=17 <21", map[string]string{
				"2.12": "2.12.15",
				"2.13": "2.13.8",
			}),
		),
		Generation: version.NewTable(
			version.On(">=3.2.0 <3.11.0", 1),
			version.On(">=3.11.0", 2),
		),
		RuntimeDeps: version.NewTable(
			version.On(">=3.5.0", []Dep{"org.apache.logging.log4j:log4j-core:2.20.0"}),
		),
	}
}

// ToolchainFor resolves the toolchain version used to build against
// targetVersion on the given platform version. The target's default
// toolchain is floored by the platform-mandated minimum for its major
// line: the minimum wins only when it exceeds the default. The policy
// is upgrade-only and never downgrades a default.
func (t Tables) ToolchainFor(targetVersion, platformVersion string) (string, error) {
	def, err := t.Toolchain.ResolveOne(targetVersion)
	if err != nil {
		return "", fmt.Errorf("failed to resolve toolchain for daffodil %s: %w", targetVersion, err)
	}
	floors, err := t.ToolchainFloor.ResolveOne(platformVersion)
	if err != nil {
		// No floor declared for this platform: keep the default.
		return def, nil
	}
	min, ok := floors[version.Line(def)]
	if !ok {
		return def, nil
	}
	if version.Compare(def, min) < 0 {
		return min, nil
	}
	return def, nil
}

// GenerationFor resolves the internal API generation for a target
// version. An unmatched version is a configuration error.
func (t Tables) GenerationFor(targetVersion string) (int, error) {
	gen, err := t.Generation.ResolveOne(targetVersion)
	if err != nil {
		return 0, fmt.Errorf("unsupported daffodil version %s: %w", targetVersion, err)
	}
	return gen, nil
}

// RuntimeDepsFor returns the union of auxiliary runtime dependencies
// declared for a target version, in declaration order.
func (t Tables) RuntimeDepsFor(targetVersion string) []Dep {
	return version.ResolveAll(t.RuntimeDeps, targetVersion)
}
