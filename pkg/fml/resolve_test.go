package fml

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// testTree builds the directory layout shared by resolver tests.
func testTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writeTestFile(t, filepath.Join(base, "file_root.txt"), "root content\n")
	writeTestFile(t, filepath.Join(base, "dir1", "file1a.txt"), "content1a\n")
	writeTestFile(t, filepath.Join(base, "dir1", "file1b.txt"), "content1b\n")
	writeTestFile(t, filepath.Join(base, "dir2", "sub_dir", "file_sub.txt"), "sub content\n")
	if err := os.MkdirAll(filepath.Join(base, "empty_dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	return base
}

func resolvedPaths(inputs []ResolvedInput) map[string]bool {
	paths := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		paths[input.Path] = true
	}
	return paths
}

func TestExpandInputsFile(t *testing.T) {
	base := testTree(t)
	resolved := ExpandInputs([]string{"file_root.txt"}, base, zap.NewNop())

	paths := resolvedPaths(resolved)
	if !paths[filepath.Join(base, "file_root.txt")] {
		t.Error("expected file_root.txt to be resolved")
	}
	if len(resolved) != 1 {
		t.Errorf("resolved %d entries, want 1", len(resolved))
	}
	if !resolved[0].Explicit {
		t.Error("a directly named file must be explicit")
	}
}

func TestExpandInputsDirectoryRecurses(t *testing.T) {
	base := testTree(t)
	resolved := ExpandInputs([]string{"dir1"}, base, zap.NewNop())

	paths := resolvedPaths(resolved)
	for _, want := range []string{
		filepath.Join(base, "dir1"),
		filepath.Join(base, "dir1", "file1a.txt"),
		filepath.Join(base, "dir1", "file1b.txt"),
	} {
		if !paths[want] {
			t.Errorf("missing resolved path %s", want)
		}
	}
}

func TestExpandInputsGlob(t *testing.T) {
	base := testTree(t)
	resolved := ExpandInputs([]string{filepath.Join("dir1", "*.txt")}, base, zap.NewNop())

	paths := resolvedPaths(resolved)
	if len(paths) != 2 {
		t.Fatalf("resolved %d entries, want 2", len(paths))
	}
	if !paths[filepath.Join(base, "dir1", "file1a.txt")] || !paths[filepath.Join(base, "dir1", "file1b.txt")] {
		t.Error("glob expansion missed dir1 text files")
	}
}

func TestExpandInputsDot(t *testing.T) {
	base := testTree(t)
	resolved := ExpandInputs([]string{"."}, base, zap.NewNop())

	paths := resolvedPaths(resolved)
	for _, want := range []string{
		filepath.Join(base, "file_root.txt"),
		filepath.Join(base, "dir1", "file1a.txt"),
		filepath.Join(base, "empty_dir"),
	} {
		if !paths[want] {
			t.Errorf("missing resolved path %s", want)
		}
	}
	if paths[base] {
		t.Error("'.' must expand to top-level entries, not the base directory itself")
	}
}

func TestExpandInputsMissingKeepsLiteral(t *testing.T) {
	base := testTree(t)
	resolved := ExpandInputs([]string{"non_existent_file.txt"}, base, zap.NewNop())

	if len(resolved) != 1 {
		t.Fatalf("resolved %d entries, want 1", len(resolved))
	}
	if resolved[0].Path != filepath.Join(base, "non_existent_file.txt") {
		t.Errorf("literal path = %s", resolved[0].Path)
	}
	if !resolved[0].Explicit {
		t.Error("a missing input must stay explicit so it can be reported")
	}
}

func TestCommonBaseDir(t *testing.T) {
	base := t.TempDir()
	f1 := filepath.Join(base, "d1", "f1.txt")
	f2 := filepath.Join(base, "d1", "d2", "f2.txt")
	f3 := filepath.Join(base, "d3", "f3.txt")
	for _, f := range []string{f1, f2, f3} {
		writeTestFile(t, f, "x")
	}

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{"single file", []string{f1}, filepath.Join(base, "d1")},
		{"directory itself", []string{filepath.Join(base, "d1")}, filepath.Join(base, "d1")},
		{"two files same dir tree", []string{f1, f2}, filepath.Join(base, "d1")},
		{"spread across dirs", []string{f1, f2, f3}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CommonBaseDir(tt.paths)
			if err != nil {
				t.Fatalf("CommonBaseDir: %v", err)
			}
			if got != tt.want {
				t.Errorf("CommonBaseDir = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCommonBaseDirEmptyDefaultsToCwd(t *testing.T) {
	got, err := CommonBaseDir(nil)
	if err != nil {
		t.Fatalf("CommonBaseDir: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got != cwd {
		t.Errorf("CommonBaseDir(nil) = %s, want cwd %s", got, cwd)
	}
}

func TestCommonBaseDirNonExistentPaths(t *testing.T) {
	base := t.TempDir()
	f1 := filepath.Join(base, "ne_d1", "ne_f1.txt")
	f2 := filepath.Join(base, "ne_d1", "ne_d2", "ne_f2.txt")

	got, err := CommonBaseDir([]string{f1, f2})
	if err != nil {
		t.Fatalf("CommonBaseDir: %v", err)
	}
	if want := filepath.Join(base, "ne_d1"); got != want {
		t.Errorf("CommonBaseDir = %s, want %s", got, want)
	}
}
