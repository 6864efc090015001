// Package build orchestrates compilation of every declared artifact
// against every declared target daffodil version. Each compilation
// runs in an isolated subprocess with an independently constructed
// classpath, so the chosen daffodil version never collides with
// whatever the project classpath carries.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/qiniu/x/log"

	"github.com/scala-steward/daffodil-build/internal/daffodil"
	"github.com/scala-steward/daffodil-build/internal/dispatch"
	"github.com/scala-steward/daffodil-build/internal/env"
	"github.com/scala-steward/daffodil-build/internal/project"
)

// Options configures an Orchestrator.
type Options struct {
	// Project is the validated build description.
	Project *project.Project
	// Dir is the project base directory; defaults to the working
	// directory.
	Dir string
	// OutputDir receives compiled artifacts; defaults to Dir/target.
	OutputDir string
	// StateDir holds the incremental-cache state; defaults to a
	// per-project directory under the tool's work dir. It must not be
	// shared by concurrent orchestration runs.
	StateDir string
	// LibRoot is the per-version library store; defaults to lib/ under
	// the tool's work dir.
	LibRoot string
	// PlatformVersion feeds the toolchain-floor table; defaults to the
	// running platform's reported version.
	PlatformVersion string
	// Tables overrides the built-in compatibility tables.
	Tables *daffodil.Tables
	// Exec is the dispatcher executable; defaults to the running
	// binary.
	Exec string
	// Stdout and Stderr receive subprocess output; default to the
	// orchestrator's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// An Orchestrator drives the (artifact x target version) build matrix.
type Orchestrator struct {
	project    *project.Project
	dir        string
	outputDir  string
	stateDir   string
	libRoot    string
	supportDir string
	exec       string
	stdout     io.Writer
	stderr     io.Writer

	targets []target
}

// NewOrchestrator resolves every per-target-version table lookup up
// front, so configuration errors (duplicate labels, unsupported
// versions) surface before any subprocess is launched.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Project == nil {
		return nil, fmt.Errorf("no project given")
	}
	if err := opts.Project.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		project:   opts.Project,
		dir:       opts.Dir,
		outputDir: opts.OutputDir,
		stateDir:  opts.StateDir,
		libRoot:   opts.LibRoot,
		exec:      opts.Exec,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
	}
	if o.dir == "" {
		o.dir = "."
	}
	if o.outputDir == "" {
		o.outputDir = filepath.Join(o.dir, "target")
	}
	if o.stateDir == "" || o.libRoot == "" {
		workDir, err := env.WorkDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate work dir: %w", err)
		}
		if o.stateDir == "" {
			o.stateDir = filepath.Join(workDir, "state", opts.Project.Name)
		}
		if o.libRoot == "" {
			o.libRoot = filepath.Join(workDir, "lib")
		}
	}
	if o.exec == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		o.exec = exe
	}
	o.supportDir = filepath.Dir(o.exec)
	if o.stdout == nil {
		o.stdout = os.Stdout
	}
	if o.stderr == nil {
		o.stderr = os.Stderr
	}

	tables := daffodil.Default()
	if opts.Tables != nil {
		tables = *opts.Tables
	}
	platform := opts.PlatformVersion
	if platform == "" {
		platform = platformVersion()
	}

	for _, v := range opts.Project.TargetVersions {
		gen, err := tables.GenerationFor(v)
		if err != nil {
			return nil, err
		}
		toolchain, err := tables.ToolchainFor(v, platform)
		if err != nil {
			return nil, err
		}
		o.targets = append(o.targets, target{
			Version:    v,
			Toolchain:  toolchain,
			Generation: gen,
			Deps:       tables.RuntimeDepsFor(v),
		})
	}
	return o, nil
}

// Build produces one artifact per (artifact x target version) pair and
// returns the produced file paths. When the watched classpath file set
// is unchanged since the last successful run, the previous artifact
// set is returned without invoking any subprocess.
//
// A failing pair does not abort the remaining pairs; all failures are
// reported together and the cache state is not updated.
func (o *Orchestrator) Build(ctx context.Context) ([]string, error) {
	projectClasspath := o.project.ResolvedClasspath(o.dir)

	watchHash, err := hashWatchedSet(projectClasspath)
	if err != nil {
		return nil, fmt.Errorf("failed to hash classpath: %w", err)
	}
	if state, err := loadState(o.stateDir); err == nil && state.WatchHash == watchHash {
		log.Infof("classpath unchanged, keeping %d compiled artifact(s)", len(state.Artifacts))
		return state.Artifacts, nil
	}

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var artifacts []string
	var failures []string

	for _, t := range o.targets {
		cp := classpath(o.supportDir, o.libRoot, t, projectClasspath)
		log.Debugf("daffodil %s: toolchain %s, api generation %d", t.Version, t.Toolchain, t.Generation)

		for _, spec := range o.project.Artifacts {
			outFile := filepath.Join(o.outputDir,
				daffodil.ArtifactFileName(o.project.Name, o.project.Version, spec.Label, t.Version))

			log.Infof("compiling %s for daffodil %s", spec.Schema, t.Version)
			if err := o.runDispatcher(ctx, t, spec, outFile, cp); err != nil {
				failures = append(failures,
					fmt.Sprintf("%s (daffodil %s): %v", daffodil.Classifier(spec.Label, t.Version), t.Version, err))
				continue
			}
			artifacts = append(artifacts, outFile)
		}
	}

	if len(failures) > 0 {
		return nil, fmt.Errorf("failed to compile %d artifact(s):\n  %s",
			len(failures), strings.Join(failures, "\n  "))
	}

	if err := saveState(o.stateDir, &cacheState{
		WatchHash: watchHash,
		Artifacts: artifacts,
		BuildTime: time.Now(),
	}); err != nil {
		log.Warnf("failed to save cache state: %v", err)
	}
	return artifacts, nil
}

// runDispatcher forks the isolated compile process for one pair and
// blocks until it exits. Any non-zero exit is a hard failure for the
// pair; the partially written output file, if any, is never reported
// as an artifact.
func (o *Orchestrator) runDispatcher(ctx context.Context, t target, spec project.ArtifactSpec, outFile string, cp []string) error {
	args := []string{
		"compile-exec",
		strconv.Itoa(t.Generation),
		spec.Schema,
		outFile,
		spec.Root,
		o.configFileFor(spec, t.Version),
	}

	cmd := exec.CommandContext(ctx, o.exec, args...)
	cmd.Stdout = o.stdout
	cmd.Stderr = o.stderr
	cmd.Env = append(os.Environ(), dispatch.ClasspathEnv+"="+joinClasspath(cp))
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("compile process failed: %w", err)
	}
	return nil
}

// configFileFor returns the configuration file for a pair. A sibling
// of the base config carrying the target's ivy config name as a
// secondary extension (cfg.daffodil390.xml next to cfg.xml) overrides
// the base for that target version only. Empty when the artifact
// declares no config.
func (o *Orchestrator) configFileFor(spec project.ArtifactSpec, targetVersion string) string {
	if spec.Config == "" {
		return ""
	}
	base := spec.Config
	if !filepath.IsAbs(base) {
		base = filepath.Join(o.dir, base)
	}
	ext := filepath.Ext(base)
	sibling := strings.TrimSuffix(base, ext) + "." + daffodil.IvyConfigName(targetVersion) + ext
	if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
		return sibling
	}
	return base
}
