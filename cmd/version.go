package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-scorer/internal/rules"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (built-in rules: %s)\n", app, version, rules.DefaultVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
