package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active scoring rules as yaml",
	Long: "Print the active scoring rules as yaml. The output is a valid rules file: " +
		"edit it and pass it back with --rules-file or RESUME_SCORER_RULES_FILE.",
	Run: func(cmd *cobra.Command, _ []string) {
		_, ruleSet, err := newEngine(viper.GetString("rules-file"))
		if err != nil {
			log.Fatalf("loading scoring rules: %s", err)
		}

		out, err := ruleSet.YAML()
		if err != nil {
			log.Fatalf("encoding scoring rules: %s", err)
		}

		cmd.OutOrStdout().Write(out)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
