// Package golangci adapts golangci-lint's JSON output to diagnostics.
// Requires golangci-lint on PATH.
package golangci

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcp-bot/reviewd/internal/analyzer"
	"github.com/mcp-bot/reviewd/internal/diag"
)

func init() {
	analyzer.Register("go", New())
}

// Adapter runs golangci-lint against a temp copy of the file under review.
type Adapter struct{}

// New creates the golangci-lint adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "golangci-lint" }

type report struct {
	Issues []issue `json:"Issues"`
}

type issue struct {
	FromLinter string `json:"FromLinter"`
	Text       string `json:"Text"`
	Pos        struct {
		Line   int `json:"Line"`
		Column int `json:"Column"`
	} `json:"Pos"`
}

func (a *Adapter) Run(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	tmp, err := analyzer.WriteTemp(filePath, content)
	if err != nil {
		return nil, err
	}
	defer analyzer.RemoveTemp(tmp)

	out, errOut, err := analyzer.RunTool(ctx, "golangci-lint", "run", "--out-format", "json", tmp)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return Parse(filePath, out, errOut)
}

// Parse maps the report's Issues array onto diagnostics. Every finding is
// reported as a warning: golangci-lint's own severity levels are not
// surfaced, a deliberate lossy mapping.
func Parse(filePath, out, errOut string) ([]diag.Diagnostic, error) {
	var rep report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		return nil, analyzer.ToolError("golangci-lint", errOut, err)
	}

	var diags []diag.Diagnostic
	for _, iss := range rep.Issues {
		diags = append(diags, diag.Diagnostic{
			File:     filePath,
			Line:     iss.Pos.Line,
			Col:      iss.Pos.Column,
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("%s: %s", iss.FromLinter, iss.Text),
			Rule:     iss.FromLinter,
		})
	}
	return diags, nil
}
