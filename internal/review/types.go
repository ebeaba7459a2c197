package review

import "github.com/mcp-bot/reviewd/internal/diag"

// FileReviewResult combines both analysis passes for one changed file. It
// lives only for the duration of a single PR-review invocation.
type FileReviewResult struct {
	Filename   string
	Issues     []diag.Diagnostic
	AIFeedback string

	// AIFailed marks feedback that is a substituted failure notice rather
	// than model output, so the approval heuristic ignores it.
	AIFailed bool
}
