package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"mdsidecar/internal/domain"
	"mdsidecar/internal/tools"
	"mdsidecar/internal/worker"
)

// Converter is one converter strategy: a bounded invocation of an external
// process with a hard wall-clock timeout carried by ctx.
type Converter interface {
	Name() string
	Convert(ctx context.Context, path string) (string, error)
}

// toolConverter runs a command from the tool registry (pandoc, markitdown,
// antiword).
type toolConverter struct {
	tool     tools.Tool
	memoryMB int
}

func newToolConverter(reg *tools.Registry, name string, memoryMB int) (*toolConverter, error) {
	t, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("tool %q missing from registry", name)
	}
	return &toolConverter{tool: t, memoryMB: memoryMB}, nil
}

func (c *toolConverter) Name() string { return c.tool.Name }

func (c *toolConverter) Convert(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(c.tool.Command); err != nil {
		return "", &domain.ConversionFailedError{
			Tool:    c.tool.Name,
			Message: fmt.Sprintf("%s is not installed on this host", c.tool.Command),
		}
	}

	command := c.tool.Command
	args := c.tool.BuildArgs(path, c.memoryMB)
	if c.tool.UlimitMemory && c.memoryMB > 0 {
		command, args = ulimitCommand(command, args, c.memoryMB)
	}

	return runCommand(ctx, c.tool.Name, command, args, nil)
}

// workerConverter re-invokes this binary's convert-worker subcommand so the
// spreadsheet libraries run in a fresh OS process: the OS reclaims all
// memory when the child exits, and GOMEMLIMIT caps it while it runs.
type workerConverter struct {
	format   string
	memoryMB int
}

func newWorkerConverter(format string, memoryMB int) *workerConverter {
	return &workerConverter{format: format, memoryMB: memoryMB}
}

func (c *workerConverter) Name() string { return "worker-" + c.format }

func (c *workerConverter) Convert(ctx context.Context, path string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", &domain.ConversionFailedError{Tool: c.Name(), Message: "cannot locate worker binary"}
	}

	args := []string{worker.Command, "--format", c.format, path}
	env := []string{fmt.Sprintf("GOMEMLIMIT=%dMiB", c.memoryMB)}
	return runCommand(ctx, c.Name(), exe, args, env)
}
