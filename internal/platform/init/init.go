// Package init triggers platform connector registration via import
// side-effects.
//
//	import _ "github.com/mcp-bot/reviewd/internal/platform/init"
package init

import (
	_ "github.com/mcp-bot/reviewd/internal/platform/bitbucket"
	_ "github.com/mcp-bot/reviewd/internal/platform/github"
)
