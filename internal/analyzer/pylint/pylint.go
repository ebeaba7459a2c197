// Package pylint adapts pylint's JSON output to diagnostics.
// Requires pylint on PATH (pip install pylint).
package pylint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcp-bot/reviewd/internal/analyzer"
	"github.com/mcp-bot/reviewd/internal/diag"
)

func init() {
	analyzer.Register("py", New())
}

// Adapter runs pylint against a temp copy of the file under review.
type Adapter struct{}

// New creates the pylint adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "pylint" }

type message struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Type      string `json:"type"`
	Symbol    string `json:"symbol"`
	MessageID string `json:"message-id"`
	Message   string `json:"message"`
}

func (a *Adapter) Run(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	tmp, err := analyzer.WriteTemp(filePath, content)
	if err != nil {
		return nil, err
	}
	defer analyzer.RemoveTemp(tmp)

	out, errOut, err := analyzer.RunTool(ctx, "pylint", "--output-format=json", tmp)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return Parse(filePath, out, errOut)
}

// Parse maps pylint's JSON array onto diagnostics. Findings of type "error"
// keep that severity; everything else is a warning. The rule is the
// message-id when present, symbol otherwise.
func Parse(filePath, out, errOut string) ([]diag.Diagnostic, error) {
	var msgs []message
	if err := json.Unmarshal([]byte(out), &msgs); err != nil {
		return nil, analyzer.ToolError("pylint", errOut, err)
	}

	diags := make([]diag.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		severity := diag.SeverityWarning
		if m.Type == "error" {
			severity = diag.SeverityError
		}
		rule := m.MessageID
		if rule == "" {
			rule = m.Symbol
		}
		diags = append(diags, diag.Diagnostic{
			File:     filePath,
			Line:     m.Line,
			Col:      m.Column,
			Severity: severity,
			Message:  fmt.Sprintf("%s: %s", m.Symbol, m.Message),
			Rule:     rule,
		})
	}
	return diags, nil
}
