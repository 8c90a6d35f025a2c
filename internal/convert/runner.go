package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mdsidecar/internal/domain"
)

// runCommand executes one external conversion process under ctx. Stdout is
// the Markdown result; on non-zero exit the stderr stream is reduced to a
// single extracted message. A deadline expiry kills the process and maps to
// the timeout outcome; timeouts are never retried.
func runCommand(ctx context.Context, toolName, command string, args, extraEnv []string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &domain.ConversionTimeoutError{Tool: toolName}
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := ExtractErrorMessage(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", &domain.ConversionFailedError{Tool: toolName, Message: msg}
	}

	return stdout.String(), nil
}

// ulimitCommand wraps a command in a shell that caps its virtual address
// space, for tools that expose no memory-ceiling flag of their own.
func ulimitCommand(command string, args []string, memoryMB int) (string, []string) {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellQuote(command))
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	script := fmt.Sprintf("ulimit -v %d 2>/dev/null; exec %s", memoryMB*1024, strings.Join(parts, " "))
	return "/bin/sh", []string{"-c", script}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
