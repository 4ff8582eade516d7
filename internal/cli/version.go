package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set by the linker
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mread version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
