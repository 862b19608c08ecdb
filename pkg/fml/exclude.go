package fml

import (
	"path"
	"strings"
)

// isExcluded reports whether relPath matches any --exclude glob. Patterns
// are tested against the whole relative path and against each path segment,
// so a bare name like "dir2" excludes that directory and everything under
// it, and "*.log" excludes matching files at any depth.
func isExcluded(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel := strings.TrimSuffix(relPath, "/")
	segments := strings.Split(rel, "/")
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(pattern, "/")
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		for _, segment := range segments {
			if ok, _ := path.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
