package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcp-bot/reviewd/internal/common"
	"github.com/mcp-bot/reviewd/internal/config"
	"github.com/mcp-bot/reviewd/internal/review"
	"github.com/mcp-bot/reviewd/internal/server"
)

func newServeCmd(conf config.Config) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:     "serve [--port]",
		Short:   "Run the webhook server that reviews incoming pull requests.",
		Example: "reviewd serve --port 3333",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			if port == 0 {
				port = conf.Viper.GetInt("port")
			}

			orch := review.NewDefaultOrchestrator(conf.Viper)
			srv := server.New(port, orch)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := srv.ListenAndServe(ctx)
			if err != nil && err != http.ErrServerClosed {
				common.LogError(fmt.Sprintf("[x] server stopped: %v", err), true, false, nil)
			}
		},
	}

	serveCmd.Flags().Int("port", 0, "Port to listen on (default from config)")

	return serveCmd
}

func init() {
	rootCmd.AddCommand(newServeCmd(config.NewDefaultConfig()))
}
