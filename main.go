package main

import (
	"github.com/mcp-bot/reviewd/cmd"

	// Register analyzer adapters and platform connectors.
	_ "github.com/mcp-bot/reviewd/internal/analyzer/init"
	_ "github.com/mcp-bot/reviewd/internal/platform/init"
)

func main() {
	cmd.Execute()
}
