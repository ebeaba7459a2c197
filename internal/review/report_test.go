package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcp-bot/reviewd/internal/diag"
)

func TestBuildReport_CleanFile(t *testing.T) {
	results := []FileReviewResult{{
		Filename:   "index.js",
		AIFeedback: "Looks good, no problems.",
	}}

	want := "### index.js\n\n" +
		"```txt\n" +
		"✅ Static Analysis: No issues\n" +
		"\nAI Review:\nLooks good, no problems.\n" +
		"```"
	assert.Equal(t, want, BuildReport(results))
}

func TestBuildReport_WithDiagnostics(t *testing.T) {
	results := []FileReviewResult{{
		Filename: "app.py",
		Issues: []diag.Diagnostic{
			{File: "app.py", Line: 10, Col: 4, Severity: diag.SeverityError, Message: "unused-variable: x is unused", Rule: "unused-variable"},
			{File: "app.py", Line: 12, Col: 1, Severity: diag.SeverityWarning, Message: "missing-docstring: no docstring"},
		},
		AIFeedback: "Consider renaming x.",
	}}

	want := "### app.py\n\n" +
		"```txt\n" +
		"Static Analysis:\n" +
		"app.py:10:4 ERROR unused-variable: x is unused (unused-variable)\n" +
		"app.py:12:1 WARNING missing-docstring: no docstring (unknown)\n" +
		"\nAI Review:\nConsider renaming x.\n" +
		"```"
	assert.Equal(t, want, BuildReport(results))
}

func TestBuildReport_SectionsJoinedInOrder(t *testing.T) {
	results := []FileReviewResult{
		{Filename: "a.js", AIFeedback: "fine"},
		{Filename: "b.py", AIFeedback: "fine"},
	}

	body := BuildReport(results)
	assert.Less(t, strings.Index(body, "### a.js"), strings.Index(body, "### b.py"))
	// Adjacent sections are separated by exactly one newline.
	assert.Contains(t, body, "```\n### b.py")
}

func TestHasIssues(t *testing.T) {
	tests := []struct {
		name    string
		results []FileReviewResult
		want    bool
	}{
		{
			name:    "no diagnostics, clean feedback",
			results: []FileReviewResult{{Filename: "a.js", AIFeedback: "Looks good, no problems."}},
			want:    false,
		},
		{
			name: "any diagnostic trips the gate",
			results: []FileReviewResult{{
				Filename: "a.py",
				Issues:   []diag.Diagnostic{{Severity: diag.SeverityWarning, Message: "m"}},
			}},
			want: true,
		},
		{
			name:    "feedback mentioning issue trips the gate",
			results: []FileReviewResult{{Filename: "a.rb", AIFeedback: "There is one Issue with naming."}},
			want:    true,
		},
		{
			name:    "case-insensitive substring match",
			results: []FileReviewResult{{Filename: "a.js", AIFeedback: "ISSUES everywhere"}},
			want:    true,
		},
		{
			name: "substituted failure notice is excluded",
			results: []FileReviewResult{{
				Filename:   "a.js",
				AIFeedback: "⚠️ AI review unavailable for this file. (connectivity issue)",
				AIFailed:   true,
			}},
			want: false,
		},
		{
			name: "one bad file among clean ones",
			results: []FileReviewResult{
				{Filename: "a.js", AIFeedback: "fine"},
				{Filename: "b.js", AIFeedback: "small issue here"},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasIssues(tt.results))
		})
	}
}
