package internal

import (
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daffodil-build",
	Short: "daffodil-build compiles DFDL schemas into saved processor artifacts",
	Long: `daffodil-build compiles the schemas declared in a project file into
saved processor artifacts, once per declared target Daffodil version.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
