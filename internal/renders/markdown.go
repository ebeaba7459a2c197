// Package renders turns generated comment bodies into terminal-friendly
// output for the one-shot CLI path.
package renders

import (
	"os"

	markdown "github.com/MichaelMure/go-term-markdown"
	"golang.org/x/term"
)

const defaultWidth = 100

// RenderMarkdown renders a markdown string for terminal display, sized to
// the current terminal when stdout is a TTY.
func RenderMarkdown(source string) string {
	width := defaultWidth
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return string(markdown.Render(source, width, 0))
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
