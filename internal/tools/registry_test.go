package tools

import (
	"strings"
	"testing"
)

func TestNewRegistryLoadsEmbeddedTools(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, name := range []string{"pandoc", "markitdown", "antiword"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("tool %q missing from registry", name)
		}
	}

	if _, ok := r.Lookup("libreoffice"); ok {
		t.Error("unexpected tool in registry")
	}
	if r.Available("libreoffice") {
		t.Error("unknown tool reported available")
	}
}

func TestPandocArgsCarryMemoryCeiling(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	pandoc, _ := r.Lookup("pandoc")

	args := pandoc.BuildArgs("/tmp/stage/report.docx", 64)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-M64m") {
		t.Errorf("args %v missing RTS memory ceiling", args)
	}
	if !strings.Contains(joined, "/tmp/stage/report.docx") {
		t.Errorf("args %v missing input path", args)
	}
	if !strings.Contains(joined, "-t markdown") {
		t.Errorf("args %v missing output format", args)
	}
	if pandoc.UlimitMemory {
		t.Error("pandoc should use its native RTS flag, not ulimit")
	}
}

func TestUlimitToolsAreMarked(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"markitdown", "antiword"} {
		tool, _ := r.Lookup(name)
		if !tool.UlimitMemory {
			t.Errorf("%s should be marked for ulimit memory capping", name)
		}
		args := tool.BuildArgs("/tmp/x.pdf", 512)
		if len(args) == 0 || args[len(args)-1] != "/tmp/x.pdf" {
			t.Errorf("%s args = %v, want input path substituted", name, args)
		}
	}
}
