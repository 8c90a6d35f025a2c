// Package tools describes the external conversion commands the sidecar may
// invoke. The set is fixed and shipped with the binary as embedded YAML;
// availability on the host is probed at call time, not configured.
package tools

import (
	"embed"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/tools.yaml
var configFiles embed.FS

// Tool describes one external conversion command.
type Tool struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	// UlimitMemory marks tools without a native memory flag; the runner caps
	// their address space with ulimit -v instead.
	UlimitMemory bool `yaml:"ulimitMemory"`
}

type registryFile struct {
	Tools []Tool `yaml:"tools"`
}

// Registry holds the embedded tool definitions.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry loads the embedded tool definitions.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/tools.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read tools.yaml: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tools.yaml: %w", err)
	}

	r := &Registry{tools: make(map[string]Tool, len(file.Tools))}
	for _, t := range file.Tools {
		if t.Name == "" || t.Command == "" {
			return nil, fmt.Errorf("tools.yaml: tool with missing name or command")
		}
		r.tools[t.Name] = t
	}
	return r, nil
}

// Lookup returns the definition for a tool name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Available reports whether the tool's command resolves on the host PATH.
// Probed fresh on every call so /health reflects the live state.
func (r *Registry) Available(name string) bool {
	t, ok := r.tools[name]
	if !ok {
		return false
	}
	_, err := exec.LookPath(t.Command)
	return err == nil
}

// BuildArgs expands the tool's arg templates for one invocation.
func (t Tool) BuildArgs(inputPath string, memoryMB int) []string {
	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		a = strings.ReplaceAll(a, "{input}", inputPath)
		a = strings.ReplaceAll(a, "{memoryMB}", strconv.Itoa(memoryMB))
		args = append(args, a)
	}
	return args
}
