package fml

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, content []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"plain text", []byte("hello\n"), false},
		{"empty file", nil, false},
		{"null byte", []byte("hello\x00world"), true},
		{"invalid utf8", []byte{0x80, 'a', 'b', 'c'}, true},
		{"unicode text", []byte("Привет, мир!\n"), false},
		{"null byte beyond sniff window", append(bytes.Repeat([]byte("a"), sniffLen), 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write("f.bin", tt.content)
			got, err := isBinaryFile(path)
			if err != nil {
				t.Fatalf("isBinaryFile: %v", err)
			}
			if got != tt.want {
				t.Errorf("isBinaryFile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBinaryFileRuneCutAtSniffBoundary(t *testing.T) {
	// A multi-byte rune straddling the 1024-byte window must not be
	// mistaken for binary content.
	content := append(bytes.Repeat([]byte("a"), sniffLen-1), []byte("я")...)
	path := filepath.Join(t.TempDir(), "boundary.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := isBinaryFile(path)
	if err != nil {
		t.Fatalf("isBinaryFile: %v", err)
	}
	if got {
		t.Error("rune split at the sniff boundary classified as binary")
	}
}
