package ignore

import (
	"path"
	"strings"

	goignore "github.com/Sriram-PR/go-ignore"
)

// PatternEngine evaluates a candidate path against a compiled pattern set.
// Candidate paths are relative to the matcher root and use forward slashes;
// isDir reports whether the candidate is a directory so that directory-only
// patterns (trailing slash) can match correctly.
type PatternEngine interface {
	Match(relPath string, isDir bool) bool
}

// EngineKind selects the pattern engine built by the loader.
type EngineKind int

const (
	// EngineAdvanced is the full gitignore-semantics engine.
	EngineAdvanced EngineKind = iota
	// EngineBasic is the approximate wildcard fallback.
	EngineBasic
)

// AdvancedGlobEngine matches paths with full gitignore semantics: negation,
// double-star, anchoring, and directory-only patterns. An excluded directory
// is terminal: paths beneath it cannot be re-included by a later negation.
type AdvancedGlobEngine struct {
	matcher *goignore.Matcher
}

// NewAdvancedGlobEngine compiles root-relative gitignore pattern lines.
func NewAdvancedGlobEngine(patterns []string) *AdvancedGlobEngine {
	m := goignore.New()
	m.AddPatterns("", []byte(strings.Join(patterns, "\n")+"\n"))
	return &AdvancedGlobEngine{matcher: m}
}

// Match reports whether relPath is excluded by the pattern set.
func (e *AdvancedGlobEngine) Match(relPath string, isDir bool) bool {
	rel := strings.TrimSuffix(relPath, "/")
	if rel == "" || rel == "." {
		return false
	}

	// Check ancestors first. Git never descends into an ignored directory,
	// so a negation on a more specific path cannot resurrect its contents.
	segments := strings.Split(rel, "/")
	for i := 1; i < len(segments); i++ {
		if e.matcher.Match(strings.Join(segments[:i], "/"), true) {
			return true
		}
	}

	return e.matcher.Match(rel, isDir || strings.HasSuffix(relPath, "/"))
}

// BasicGlobEngine is the degraded fallback engine: literal and wildcard
// matching of the whole path and of each path segment. Negation, directory
// prefix semantics, and double-star recursion are intentionally unsupported;
// matching is approximate by design.
type BasicGlobEngine struct {
	patterns []string
}

// NewBasicGlobEngine compiles pattern lines, dropping negations.
func NewBasicGlobEngine(patterns []string) *BasicGlobEngine {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "!") {
			continue
		}
		p = strings.TrimSuffix(p, "/")
		p = strings.TrimPrefix(p, "/")
		if p != "" {
			compiled = append(compiled, p)
		}
	}
	return &BasicGlobEngine{patterns: compiled}
}

// Match reports whether relPath or any of its segments matches a pattern.
func (e *BasicGlobEngine) Match(relPath string, isDir bool) bool {
	rel := strings.TrimSuffix(relPath, "/")
	if rel == "" || rel == "." {
		return false
	}
	segments := strings.Split(rel, "/")
	for _, pattern := range e.patterns {
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
