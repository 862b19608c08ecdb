package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSpecHelpFlag(t *testing.T) {
	root := NewRootCommand(zap.NewNop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--spec-help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "# Filesystem Markup Language (FML)") {
		t.Error("spec heading missing from --spec-help output")
	}
	if !strings.Contains(out.String(), "<|||file_start=${filepath}|||>") {
		t.Error("tag grammar missing from --spec-help output")
	}
}

func TestVersionCommandShort(t *testing.T) {
	root := NewRootCommand(zap.NewNop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"version", "--short"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("version output is empty")
	}
}
