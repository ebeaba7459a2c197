// Package init triggers analyzer adapter registration via import
// side-effects.
//
//	import _ "github.com/mcp-bot/reviewd/internal/analyzer/init"
//
// The checkstyle adapter is intentionally left out: .java files fall through
// to the unsupported-extension fallback until a build imports it directly.
package init

import (
	_ "github.com/mcp-bot/reviewd/internal/analyzer/frontend"
	_ "github.com/mcp-bot/reviewd/internal/analyzer/golangci"
	_ "github.com/mcp-bot/reviewd/internal/analyzer/pylint"
)
