package fml

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fmlpack/pkg/ignore"

	"go.uber.org/zap"
)

// GenerateOptions configures archive creation.
type GenerateOptions struct {
	Exclude     []string        // --exclude glob patterns
	Matcher     *ignore.Matcher // ignore-file matcher; nil excludes nothing
	IncludeSpec bool            // append the FML specification as an entry
	Stderr      io.Writer       // diagnostic channel
	Logger      *zap.Logger
}

// entryKind classifies a resolved path after filtering.
type entryKind int

const (
	entryDir entryKind = iota
	entryFile
)

type plannedEntry struct {
	kind    entryKind
	relPath string
	absPath string
}

// Generate walks the resolved inputs and writes the FML document to w.
// Exclusions and per-item failures produce single-line diagnostics on the
// stderr channel and never abort the run; only write errors on w are fatal.
func Generate(baseDir string, inputs []ResolvedInput, opts GenerateOptions, w io.Writer) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	plan, impliedDirs := planEntries(baseDir, inputs, opts, stderr, logger)

	writer := bufio.NewWriter(w)
	for _, entry := range plan {
		switch entry.kind {
		case entryDir:
			// Directories proven by an emitted file are implied and
			// never tagged.
			if impliedDirs[entry.relPath] {
				continue
			}
			if _, err := fmt.Fprintf(writer, "<|||dir=%s|||>\n", entry.relPath); err != nil {
				return fmt.Errorf("failed to write archive: %w", err)
			}
		case entryFile:
			if err := emitFile(writer, entry, stderr, logger); err != nil {
				return err
			}
		}
	}

	if opts.IncludeSpec {
		if err := writeFileEntry(writer, SpecFileName, []byte(Spec())); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// planEntries classifies every resolved input, emitting diagnostics for
// excluded, missing, binary, and unreadable entries. It returns the entries
// to emit, in traversal order, plus the set of directories already implied
// by a planned file.
func planEntries(baseDir string, inputs []ResolvedInput, opts GenerateOptions, stderr io.Writer, logger *zap.Logger) ([]plannedEntry, map[string]bool) {
	var plan []plannedEntry
	impliedDirs := make(map[string]bool)
	var excludedPrefixes []string

	for _, input := range inputs {
		info, err := os.Stat(input.Path)
		if err != nil {
			if input.Explicit {
				rel := relArchivePath(baseDir, input.Path)
				fmt.Fprintf(stderr, "input item not found: %s (resolved to %s)\n", rel, input.Path)
			}
			continue
		}

		rel := relArchivePath(baseDir, input.Path)
		if rel == "." || rel == "" {
			continue
		}

		// An excluded directory short-circuits its whole subtree with
		// a single diagnostic.
		if underPrefix(rel, excludedPrefixes) {
			continue
		}

		isDir := info.IsDir()
		excluded := false
		if opts.Matcher != nil && opts.Matcher.Matches(rel, isDir) {
			excluded = true
		} else if isExcluded(rel, opts.Exclude) {
			excluded = true
		}
		if excluded {
			fmt.Fprintf(stderr, "excluding: %s\n", rel)
			if isDir {
				excludedPrefixes = append(excludedPrefixes, rel+"/")
			}
			continue
		}

		if isDir {
			plan = append(plan, plannedEntry{kind: entryDir, relPath: rel})
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Debug("Skipping irregular file", zap.String("path", input.Path))
			continue
		}

		binary, err := isBinaryFile(input.Path)
		if err != nil {
			fmt.Fprintf(stderr, "skipping unreadable file: %s\n", rel)
			logger.Debug("Failed to sniff file", zap.String("path", input.Path), zap.Error(err))
			continue
		}
		if binary {
			fmt.Fprintf(stderr, "skipping binary file: %s\n", rel)
			continue
		}

		plan = append(plan, plannedEntry{kind: entryFile, relPath: rel, absPath: input.Path})
		for dir := parentDir(rel); dir != ""; dir = parentDir(dir) {
			impliedDirs[dir] = true
		}
	}

	return plan, impliedDirs
}

// emitFile reads one text file and writes its tagged entry. Read failures
// downgrade to a diagnostic, keeping the run alive.
func emitFile(writer *bufio.Writer, entry plannedEntry, stderr io.Writer, logger *zap.Logger) error {
	content, err := os.ReadFile(entry.absPath)
	if err != nil {
		fmt.Fprintf(stderr, "skipping unreadable file: %s\n", entry.relPath)
		logger.Debug("Failed to read file", zap.String("path", entry.absPath), zap.Error(err))
		return nil
	}
	if err := writeFileEntry(writer, entry.relPath, content); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// writeFileEntry writes a complete file entry, guaranteeing the content ends
// with exactly one trailing newline before the end tag.
func writeFileEntry(writer *bufio.Writer, relPath string, content []byte) error {
	if _, err := fmt.Fprintf(writer, "<|||file_start=%s|||>\n", relPath); err != nil {
		return err
	}
	if _, err := writer.Write(content); err != nil {
		return err
	}
	if len(content) == 0 || content[len(content)-1] != '\n' {
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	_, err := writer.WriteString("<|||file_end|||>\n")
	return err
}

// relArchivePath converts an absolute path to the forward-slash relative
// form used inside the archive.
func relArchivePath(baseDir, absPath string) string {
	rel, err := filepath.Rel(baseDir, absPath)
	if err != nil {
		rel = absPath
	}
	return filepath.ToSlash(rel)
}

func parentDir(relPath string) string {
	idx := strings.LastIndex(relPath, "/")
	if idx < 0 {
		return ""
	}
	return relPath[:idx]
}

func underPrefix(relPath string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(relPath, prefix) {
			return true
		}
	}
	return false
}
