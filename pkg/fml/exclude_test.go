package fml

import "testing"

func TestIsExcluded(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"path/to/file.txt", []string{"*.txt"}, true},
		{"path/to/file.txt", []string{"file.txt"}, true},
		{"path/to/file.txt", []string{"path/to/*"}, true},
		{"path/to/file.txt", []string{"path*"}, true},
		{"path/to/file.doc", []string{"*.txt"}, false},
		{"config.pyc", []string{"*.pyc"}, true},
		{"somedir/other.pyc", []string{"*.pyc"}, true},
		{".git/config", []string{".git"}, true},
		{"build/lib/file.so", []string{"build"}, true},
		{"a/b/c.log", []string{"*c.log"}, true},
		{"a/b/c.doc", []string{"c.log", "*.txt"}, false},
		{"anything", nil, false},
	}
	for _, tt := range tests {
		if got := isExcluded(tt.path, tt.patterns); got != tt.want {
			t.Errorf("isExcluded(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}
