package pylint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-bot/reviewd/internal/diag"
)

func TestParse(t *testing.T) {
	out := `[{"line":10,"column":4,"type":"error","symbol":"unused-variable","message":"x is unused"}]`

	diags, err := Parse("app.py", out, "")
	require.NoError(t, err)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "app.py", d.File)
	assert.Equal(t, 10, d.Line)
	assert.Equal(t, 4, d.Col)
	assert.Equal(t, diag.SeverityError, d.Severity)
	assert.Equal(t, "unused-variable: x is unused", d.Message)
	assert.Equal(t, "unused-variable", d.Rule)
}

func TestParse_NonErrorTypesAreWarnings(t *testing.T) {
	out := `[
		{"line":1,"column":0,"type":"convention","symbol":"missing-docstring","message-id":"C0114","message":"Missing module docstring"},
		{"line":2,"column":0,"type":"refactor","symbol":"too-many-args","message":"Too many arguments"}
	]`

	diags, err := Parse("app.py", out, "")
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "C0114", diags[0].Rule)
	assert.Equal(t, diag.SeverityWarning, diags[1].Severity)
	assert.Equal(t, "too-many-args", diags[1].Rule)
}

func TestParse_MalformedOutputCarriesStderr(t *testing.T) {
	_, err := Parse("app.py", "pylint exploded", "Traceback (most recent call last)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Traceback")
}

func TestParse_EmptyArray(t *testing.T) {
	diags, err := Parse("app.py", "[]", "")
	require.NoError(t, err)
	assert.Empty(t, diags)
}
