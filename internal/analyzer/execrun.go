package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// WriteTemp writes content to a uniquely named file in the system temp
// directory, derived from the original basename plus a timestamp and a random
// token so concurrent reviews of same-named files never collide.
// The caller owns the file and must remove it.
func WriteTemp(filePath, content string) (string, error) {
	name := fmt.Sprintf("mcp-%d-%s-%s",
		time.Now().UnixNano(), uuid.NewString(), filepath.Base(filePath))
	tmp := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("analyzer: failed to write temp file: %w", err)
	}
	return tmp, nil
}

// RemoveTemp deletes a temp file, swallowing any error. Cleanup is best
// effort on every exit path.
func RemoveTemp(tmp string) {
	_ = os.Remove(tmp)
}

// RunTool spawns an external checker and captures stdout and stderr
// separately. A non-zero exit status is not an error: linters exit non-zero
// whenever they report findings, so callers decide based on stdout content.
// A missing binary or a cancelled context is an error.
func RunTool(ctx context.Context, bin string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return "", "", fmt.Errorf("analyzer: failed to run %s: %w", bin, err)
		}
		if ctx.Err() != nil {
			return "", "", fmt.Errorf("analyzer: %s: %w", bin, ctx.Err())
		}
	}
	return out.String(), errBuf.String(), nil
}

// ToolError wraps a parse failure together with whatever the tool printed on
// stderr, which is usually the more useful half.
func ToolError(tool, stderr string, cause error) error {
	if stderr != "" {
		return fmt.Errorf("%s: %s", tool, stderr)
	}
	return fmt.Errorf("%s: %w", tool, cause)
}
