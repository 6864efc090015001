package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/scala-steward/daffodil-build/internal/build"
	"github.com/scala-steward/daffodil-build/internal/project"
)

var (
	buildProjectFile     string
	buildOutput          string
	buildPlatformVersion string
	buildVerbose         bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile every declared artifact for every target version",
	Long: `Build reads the project file and compiles each declared artifact once
per target Daffodil version, skipping the work entirely when the
project classpath is unchanged since the last successful run.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildProjectFile, "project", "p", project.DefaultFile, "Project file")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (default <project dir>/target)")
	buildCmd.Flags().StringVar(&buildPlatformVersion, "platform-version", "", "Platform version for toolchain-floor resolution")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildVerbose {
		log.SetOutputLevel(log.Ldebug)
	}

	if _, err := os.Stat(buildProjectFile); os.IsNotExist(err) {
		return fmt.Errorf("%s not found, declare the project first", buildProjectFile)
	}
	p, err := project.Parse(buildProjectFile, nil)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(filepath.Dir(buildProjectFile))
	if err != nil {
		return fmt.Errorf("failed to resolve project dir: %w", err)
	}

	orchestrator, err := build.NewOrchestrator(build.Options{
		Project:         p,
		Dir:             dir,
		OutputDir:       buildOutput,
		PlatformVersion: buildPlatformVersion,
	})
	if err != nil {
		return err
	}

	artifacts, err := orchestrator.Build(context.Background())
	if err != nil {
		return fmt.Errorf("failed to build: %w", err)
	}
	for _, a := range artifacts {
		fmt.Println(a)
	}
	return nil
}
