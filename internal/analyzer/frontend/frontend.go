// Package frontend lints the JS/TS ecosystem family (js, ts, jsx, tsx, vue,
// svelte, mjs, cjs) with an in-process engine: no subprocess and no temp
// file, just a fixed minimal rule set applied to the supplied content.
//
// The rule set mirrors a shared flat config: statements must end with a
// semicolon ("semi") and string literals must be single-quoted ("quotes").
package frontend

import (
	"context"
	"strings"

	"github.com/mcp-bot/reviewd/internal/analyzer"
	"github.com/mcp-bot/reviewd/internal/diag"
)

// Extensions lists every extension the adapter claims.
var Extensions = []string{"js", "ts", "jsx", "tsx", "vue", "svelte", "mjs", "cjs"}

func init() {
	a := New()
	for _, ext := range Extensions {
		analyzer.Register(ext, a)
	}
}

// Adapter is the in-process frontend linter.
type Adapter struct{}

// New creates the frontend adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "frontend-lint" }

// ruleLevel is the level both rules are configured at. The engine's numeric
// levels translate to severities with level 1 meaning "error" and everything
// else "warning"; the inversion is the engine's literal numbering and is
// preserved exactly.
const ruleLevel = 2

// message is one raw engine finding before normalization.
type message struct {
	RuleID  string
	Level   int
	Message string
	Line    int
	Column  int
}

func (a *Adapter) Run(_ context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	return toDiagnostics(filePath, lint(content)), nil
}

// toDiagnostics normalizes raw engine findings to the shared shape.
func toDiagnostics(filePath string, msgs []message) []diag.Diagnostic {
	diags := make([]diag.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		severity := diag.SeverityWarning
		if m.Level == 1 {
			severity = diag.SeverityError
		}
		rule := m.RuleID
		if rule == "" {
			rule = "unknown"
		}
		diags = append(diags, diag.Diagnostic{
			File:     filePath,
			Line:     m.Line,
			Col:      m.Column,
			Severity: severity,
			Message:  m.Message,
			Rule:     rule,
		})
	}
	return diags
}

// lint applies the fixed rule set line by line.
func lint(content string) []message {
	var msgs []message
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		lineNo := i + 1

		if m, ok := checkSemi(line, lineNo); ok {
			msgs = append(msgs, m)
		}
		msgs = append(msgs, checkQuotes(line, lineNo)...)
	}
	return msgs
}

// blockOpeners are statement prefixes that legitimately end without a
// semicolon because they introduce or continue a block.
var blockOpeners = []string{
	"if", "else", "for", "while", "switch", "do", "try", "catch", "finally",
	"function", "class", "interface", "type", "export", "import",
}

func checkSemi(line string, lineNo int) (message, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return message{}, false
	}
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
		return message{}, false
	}
	last := trimmed[len(trimmed)-1]
	switch last {
	case ';', '{', '}', ':', ',', '(', '>':
		return message{}, false
	}
	word := trimmed
	if idx := strings.IndexAny(trimmed, " \t("); idx > 0 {
		word = trimmed[:idx]
	}
	for _, kw := range blockOpeners {
		if word == kw {
			return message{}, false
		}
	}
	return message{
		RuleID:  "semi",
		Level:   ruleLevel,
		Message: "Missing semicolon.",
		Line:    lineNo,
		Column:  len(line) + 1,
	}, true
}

func checkQuotes(line string, lineNo int) []message {
	var msgs []message
	for col := 0; col < len(line); col++ {
		switch line[col] {
		case '\'', '`':
			// Skip to the closing quote so doubles inside singles or
			// template literals are not flagged.
			quote := line[col]
			for col++; col < len(line) && line[col] != quote; col++ {
				if line[col] == '\\' {
					col++
				}
			}
		case '"':
			start := col
			for col++; col < len(line) && line[col] != '"'; col++ {
				if line[col] == '\\' {
					col++
				}
			}
			if col < len(line) {
				msgs = append(msgs, message{
					RuleID:  "quotes",
					Level:   ruleLevel,
					Message: "Strings must use singlequote.",
					Line:    lineNo,
					Column:  start + 1,
				})
			}
		}
	}
	return msgs
}
