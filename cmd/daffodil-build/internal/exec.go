package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scala-steward/daffodil-build/internal/dispatch"
)

// execCmd is the isolated compile process entry point. The
// orchestrator forks the running binary with this subcommand and an
// engineered classpath environment; it is not part of the user-facing
// surface.
var execCmd = &cobra.Command{
	Use:    "compile-exec <apiGeneration> <schemaResourcePath> <outputFile> <rootName> <configFile>",
	Hidden: true,
	Args:   cobra.ExactArgs(dispatch.NumArgs),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(dispatch.Run(args, os.Stderr))
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
