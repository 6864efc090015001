package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// toolVersion is stamped by the release process.
var toolVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the daffodil-build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("daffodil-build", toolVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
