package fml

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ResolvedInput is one absolute filesystem path selected for archiving.
// Explicit marks paths the user named directly (or matched with a glob), as
// opposed to paths found by expanding a directory; only explicit paths get an
// existence warning when missing.
type ResolvedInput struct {
	Path     string
	Explicit bool
}

// ExpandInputs resolves user-specified inputs against baseDir. Each input is
// treated as a glob pattern; a pattern matching nothing keeps its literal
// path so the generator can report it as missing without aborting the run.
// The special input "." expands to every top-level entry of baseDir and all
// of their descendants; an explicit directory contributes itself and all of
// its descendants. Traversal is in sorted name order.
func ExpandInputs(inputs []string, baseDir string, logger *zap.Logger) []ResolvedInput {
	var resolved []ResolvedInput

	for _, input := range inputs {
		if input == "." {
			entries, err := os.ReadDir(baseDir)
			if err != nil {
				logger.Warn("Failed to read base directory",
					zap.String("dir", baseDir), zap.Error(err))
				continue
			}
			for _, entry := range entries {
				resolved = append(resolved,
					collectTree(filepath.Join(baseDir, entry.Name()), false, logger)...)
			}
			continue
		}

		pattern := input
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(baseDir, pattern)
		}

		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			// Keep the literal path; the generator warns if it does
			// not exist.
			resolved = append(resolved, ResolvedInput{Path: pattern, Explicit: true})
			continue
		}

		for _, match := range matches {
			resolved = append(resolved, collectTree(match, true, logger)...)
		}
	}

	return resolved
}

// collectTree returns path itself plus, when it is a directory, every entry
// beneath it in walk order. Only the root carries the explicit flag.
func collectTree(path string, explicit bool, logger *zap.Logger) []ResolvedInput {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return []ResolvedInput{{Path: path, Explicit: explicit}}
	}

	var collected []ResolvedInput
	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during expansion",
				zap.String("path", p), zap.Error(err))
			return nil
		}
		collected = append(collected, ResolvedInput{Path: p, Explicit: explicit && p == path})
		return nil
	})
	if walkErr != nil {
		logger.Warn("Failed to traverse directory",
			zap.String("dir", path), zap.Error(walkErr))
	}
	return collected
}

// CommonBaseDir computes the directory all archive paths are made relative
// to: for files (and paths that do not exist) the containing directory, for
// directories the directory itself, reduced to the longest shared path
// prefix. An empty input set defaults to the working directory.
func CommonBaseDir(paths []string) (string, error) {
	if len(paths) == 0 {
		return os.Getwd()
	}

	separator := string(filepath.Separator)
	var common []string
	for i, p := range paths {
		candidate := filepath.Clean(p)
		if info, err := os.Stat(candidate); err != nil || !info.IsDir() {
			candidate = filepath.Dir(candidate)
		}
		parts := strings.Split(candidate, separator)
		if i == 0 {
			common = parts
			continue
		}
		limit := len(common)
		if len(parts) < limit {
			limit = len(parts)
		}
		shared := 0
		for shared < limit && common[shared] == parts[shared] {
			shared++
		}
		common = common[:shared]
	}

	base := strings.Join(common, separator)
	if base == "" {
		base = separator
	}
	return base, nil
}
