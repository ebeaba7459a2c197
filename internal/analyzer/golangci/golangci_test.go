package golangci

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-bot/reviewd/internal/diag"
)

func TestParse(t *testing.T) {
	out := `{"Issues":[{"FromLinter":"govet","Text":"unreachable code","Pos":{"Line":42,"Column":2}}]}`

	diags, err := Parse("main.go", out, "")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "main.go", d.File)
	assert.Equal(t, 42, d.Line)
	assert.Equal(t, 2, d.Col)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
	assert.Equal(t, "govet: unreachable code", d.Message)
	assert.Equal(t, "govet", d.Rule)
}

func TestParse_NoIssuesKey(t *testing.T) {
	diags, err := Parse("main.go", `{"Report":{}}`, "")
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestParse_MalformedOutputCarriesStderr(t *testing.T) {
	_, err := Parse("main.go", "level=error msg=boom", "config file not found")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestRun_EmptyStdoutResolvesEmpty(t *testing.T) {
	// Stub golangci-lint with a silent no-op so Run sees empty stdout:
	// that is the "nothing found" success path, not a parse failure.
	dir := t.TempDir()
	stub := filepath.Join(dir, "golangci-lint")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	diags, err := New().Run(context.Background(), "main.go", "package main\n")
	require.NoError(t, err)
	assert.Empty(t, diags)
}
