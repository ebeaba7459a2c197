package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mcp-bot/reviewd/internal/common"
	"github.com/mcp-bot/reviewd/internal/config"
	"github.com/mcp-bot/reviewd/internal/renders"
	"github.com/mcp-bot/reviewd/internal/review"
)

func newReviewCmd(conf config.Config) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:     "review --platform <github|bitbucket> --payload <file.json>",
		Short:   "Run one PR review from a saved webhook payload.",
		Example: "reviewd review --platform github --payload pr_event.json --dry-run",
		Run: func(cmd *cobra.Command, args []string) {
			platformTag := GetArgByKey("platform", cmd.Flags(), true)
			payloadPath := GetArgByKey("payload", cmd.Flags(), true)
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			copyBody, _ := cmd.Flags().GetBool("copy")

			event, err := os.ReadFile(payloadPath)
			if err != nil {
				common.LogError(fmt.Sprintf("[x] failed to read payload: %v", err), true, false, nil)
			}

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Reviewing pull request..."
			sp.Start()

			orch := review.NewDefaultOrchestrator(conf.Viper)
			connector, outcome, err := orch.Prepare(context.Background(), platformTag, event)
			sp.Stop()
			if err != nil {
				common.LogError(fmt.Sprintf("[x] review failed: %v", err), true, false, nil)
			}

			if renders.IsTTY() {
				fmt.Fprint(conf.OutWriter, renders.RenderMarkdown(outcome.Body))
			} else {
				fmt.Fprintln(conf.OutWriter, outcome.Body)
			}

			if copyBody {
				if err := common.SetClipboardValue(outcome.Body); err != nil {
					common.LogError(fmt.Sprintf("[x] failed to copy to clipboard: %v", err), false, false, nil)
				}
			}

			if dryRun {
				common.LogInfo(fmt.Sprintf("Dry run: issues=%t, nothing posted.", outcome.HasIssues), nil)
				return
			}

			if err := connector.PostComment(context.Background(), event, outcome.Body); err != nil {
				common.LogError(fmt.Sprintf("[x] failed to post comment: %v", err), true, false, nil)
			}
			if !outcome.HasIssues {
				if err := connector.Approve(context.Background(), event); err != nil {
					common.LogError(fmt.Sprintf("[x] failed to approve PR: %v", err), true, false, nil)
				}
			}
		},
	}

	reviewCmd.Flags().String("platform", "", "Platform the payload came from: github or bitbucket")
	reviewCmd.Flags().String("payload", "", "Path to a saved webhook payload (JSON)")
	reviewCmd.Flags().Bool("dry-run", false, "Print the report without posting or approving")
	reviewCmd.Flags().Bool("copy", false, "Copy the raw comment body to the clipboard")

	return reviewCmd
}

func init() {
	rootCmd.AddCommand(newReviewCmd(config.NewDefaultConfig()))
}
