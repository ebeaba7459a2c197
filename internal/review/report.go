package review

import (
	"strings"

	"github.com/mcp-bot/reviewd/internal/diag"
)

const noIssuesMarker = "✅ Static Analysis: No issues\n"

// BuildReport renders the final PR comment body. One section per file, in
// input order: a header, then a fenced block holding the static-analysis
// lines (or the no-issues marker) followed by the AI feedback verbatim.
func BuildReport(results []FileReviewResult) string {
	sections := make([]string, 0, len(results))
	for _, res := range results {
		var sb strings.Builder
		sb.WriteString("### " + res.Filename + "\n\n")
		sb.WriteString("```txt\n")

		if len(res.Issues) > 0 {
			lines := make([]string, 0, len(res.Issues))
			for _, d := range res.Issues {
				lines = append(lines, diag.FormatLine(d))
			}
			sb.WriteString("Static Analysis:\n" + strings.Join(lines, "\n") + "\n")
		} else {
			sb.WriteString(noIssuesMarker)
		}

		sb.WriteString("\nAI Review:\n" + res.AIFeedback + "\n")
		sb.WriteString("```")
		sections = append(sections, sb.String())
	}
	return strings.Join(sections, "\n")
}

// HasIssues is the approval gate: true when any file carries a static
// diagnostic, or when any AI feedback mentions "issue" (case-insensitive).
// The substring check is a deliberately conservative textual proxy; a benign
// mention of the word blocks auto-approval. Substituted failure notices are
// excluded so an unreachable model never trips the gate by itself.
func HasIssues(results []FileReviewResult) bool {
	for _, res := range results {
		if len(res.Issues) > 0 {
			return true
		}
		if !res.AIFailed && strings.Contains(strings.ToLower(res.AIFeedback), "issue") {
			return true
		}
	}
	return false
}
