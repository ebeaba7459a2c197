package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reviewd",
	Short: "Automated pull-request reviews for GitHub and Bitbucket.",
	Long: `Receive pull-request webhooks, run static analyzers and a generative-model
review on every changed file, post the aggregated report as a PR comment and
auto-approve clean PRs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
