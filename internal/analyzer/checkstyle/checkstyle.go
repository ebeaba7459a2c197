// Package checkstyle adapts checkstyle's XML output to diagnostics.
//
// The adapter is an extension point that ships disconnected from dispatch:
// internal/analyzer/init does not import it, so .java files fall through to
// the empty-result fallback until a deployment opts in with
//
//	import _ "github.com/mcp-bot/reviewd/internal/analyzer/checkstyle"
//
// Requires the checkstyle binary on PATH and a rule config XML on disk.
package checkstyle

import (
	"context"
	"regexp"
	"strconv"

	"github.com/mcp-bot/reviewd/internal/analyzer"
	"github.com/mcp-bot/reviewd/internal/diag"
)

func init() {
	analyzer.Register("java", New("checkstyle.xml"))
}

// Adapter runs checkstyle against a temp copy of the file under review.
type Adapter struct {
	configPath string
}

// New creates a checkstyle adapter using the given rule config file.
func New(configPath string) *Adapter {
	return &Adapter{configPath: configPath}
}

func (a *Adapter) Name() string { return "checkstyle" }

// errorLine matches checkstyle's fixed-structure <error .../> elements.
// Lines that do not match produce no diagnostic; they are not an error.
var errorLine = regexp.MustCompile(
	`<error line="(\d+)" column="(\d+)" severity="(\w+)" message="([^"]+)" source="([^"]+)"/>`)

func (a *Adapter) Run(ctx context.Context, filePath, content string) ([]diag.Diagnostic, error) {
	tmp, err := analyzer.WriteTemp(filePath, content)
	if err != nil {
		return nil, err
	}
	defer analyzer.RemoveTemp(tmp)

	out, _, err := analyzer.RunTool(ctx, "checkstyle", "-c", a.configPath, "-f", "xml", tmp)
	if err != nil {
		return nil, err
	}
	return Parse(filePath, out), nil
}

// Parse extracts diagnostics from checkstyle's XML report text.
func Parse(filePath, out string) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, m := range errorLine.FindAllStringSubmatch(out, -1) {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		diags = append(diags, diag.Diagnostic{
			File:     filePath,
			Line:     line,
			Col:      col,
			Severity: diag.Severity(m[3]),
			Message:  m[4],
			Rule:     m[5],
		})
	}
	return diags
}
