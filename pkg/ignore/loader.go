// Package ignore decides which filesystem entries are excluded from an
// archive, using layered gitignore-style pattern files discovered throughout
// a directory tree.
package ignore

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	// IgnoreFileName is the tool-specific ignore file honored at every
	// directory level.
	IgnoreFileName = ".fmlpackignore"

	// GitignoreFileName is the secondary, well-known ignore file, honored
	// only when LoadOptions.Gitignore is set.
	GitignoreFileName = ".gitignore"
)

// LoadOptions configures ignore-file discovery.
type LoadOptions struct {
	Gitignore      bool        // also honor .gitignore files and exclude .git/
	GitDirOverride []string    // replaces the injected /.git/ pattern when non-empty
	Engine         EngineKind  // pattern engine to build; advanced by default
	Logger         *zap.Logger // optional; debug-level diagnostics only
}

// Matcher answers whether a path relative to the loaded root is excluded.
type Matcher struct {
	engine PatternEngine
}

// NewMatcher wraps a PatternEngine. Used directly by tests; production code
// obtains matchers through Load.
func NewMatcher(engine PatternEngine) *Matcher {
	return &Matcher{engine: engine}
}

// Matches reports whether relPath (forward slashes, relative to the root the
// matcher was loaded from) is excluded.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	return m.engine.Match(relPath, isDir)
}

// Load discovers ignore files under rootDir and compiles their patterns into
// a Matcher. Patterns containing a path separator are rewritten to be
// root-relative by prefixing the ignore file's directory, so that a pattern
// in sub/.fmlpackignore only applies beneath sub. Patterns without a
// separator stay global. Returns a nil Matcher when no patterns were found.
//
// Read errors on individual ignore files contribute no patterns and are
// reported at debug level only, matching the permissive behavior of
// ignore-file tooling.
func Load(rootDir string, opts LoadOptions) (*Matcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	var patterns []string
	if opts.Gitignore {
		if len(opts.GitDirOverride) > 0 {
			patterns = append(patterns, opts.GitDirOverride...)
		} else {
			patterns = append(patterns, "/.git/")
		}
	}

	names := []string{IgnoreFileName}
	if opts.Gitignore {
		names = append(names, GitignoreFileName)
	}

	files := discoverIgnoreFiles(root, names, logger)
	for _, file := range files {
		patterns = append(patterns, loadPatternFile(root, file, logger)...)
	}

	if len(patterns) == 0 {
		return nil, nil
	}

	logger.Debug("Compiled ignore patterns",
		zap.String("root", root),
		zap.Int("fileCount", len(files)),
		zap.Int("patternCount", len(patterns)))

	if opts.Engine == EngineBasic {
		return NewMatcher(NewBasicGlobEngine(patterns)), nil
	}
	return NewMatcher(NewAdvancedGlobEngine(patterns)), nil
}

// discoverIgnoreFiles walks root and returns every ignore file in sorted
// order, so pattern ordering is deterministic across runs.
func discoverIgnoreFiles(root string, names []string, logger *zap.Logger) []string {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("Error accessing path during ignore discovery",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, name := range names {
			if d.Name() == name {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		logger.Debug("Ignore discovery walk failed", zap.Error(err))
	}
	sort.Strings(files)
	return files
}

// loadPatternFile reads one ignore file and normalizes its patterns to be
// relative to root.
func loadPatternFile(root, file string, logger *zap.Logger) []string {
	content, err := os.ReadFile(file)
	if err != nil {
		logger.Debug("Skipping unreadable ignore file",
			zap.String("file", file), zap.Error(err))
		return nil
	}

	relDir, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		logger.Debug("Skipping ignore file outside root",
			zap.String("file", file), zap.Error(err))
		return nil
	}
	relDir = filepath.ToSlash(relDir)

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		pattern := strings.TrimSpace(line)
		if pattern == "" || strings.HasPrefix(pattern, "#") {
			continue
		}
		patterns = append(patterns, normalizePattern(pattern, relDir))
	}
	return patterns
}

// normalizePattern rewrites a directory-relative pattern to root-relative
// form. A pattern containing a slash is anchored to the directory of the
// ignore file that declared it; a bare pattern matches its segment at any
// depth and is left untouched.
func normalizePattern(pattern, relDir string) string {
	if !strings.Contains(pattern, "/") {
		return pattern
	}

	negated := strings.HasPrefix(pattern, "!")
	body := pattern
	if negated {
		body = pattern[1:]
	}
	body = strings.TrimPrefix(body, "/")

	if relDir == "." {
		body = "/" + body
	} else {
		body = "/" + relDir + "/" + body
	}
	if negated {
		return "!" + body
	}
	return body
}
