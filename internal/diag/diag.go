// Package diag defines the normalized static-analysis finding shared by every
// analyzer adapter and consumed by the review pipeline.
package diag

import (
	"fmt"
	"strings"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one normalized finding produced by a single adapter run.
// It is immutable once returned: aggregated into the report and discarded.
type Diagnostic struct {
	File     string
	Line     int
	Col      int
	Severity Severity
	Message  string
	Rule     string
}

// FormatLine renders a diagnostic as a single report line:
//
//	path/to/file.py:10:4 ERROR unused-variable: x is unused (unused-variable)
//
// A missing rule renders as "unknown".
func FormatLine(d Diagnostic) string {
	rule := d.Rule
	if rule == "" {
		rule = "unknown"
	}
	return fmt.Sprintf("%s:%d:%d %s %s (%s)",
		d.File, d.Line, d.Col, strings.ToUpper(string(d.Severity)), d.Message, rule)
}
