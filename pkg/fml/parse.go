package fml

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FML tag grammar. A tag only counts when it occupies a full line: no
// leading whitespace, nothing after the closing delimiter besides the
// newline. Lines that merely contain a tag-like substring are ordinary
// content. This exact-line rule is the format's central compatibility
// guarantee.
const (
	dirTagPrefix   = "<|||dir="
	fileTagPrefix  = "<|||file_start="
	tagSuffix      = "|||>"
	fileEndTagLine = "<|||file_end|||>"
)

// EntrySink receives parsed archive entries in encounter order. File is
// handed the accumulated content when the end tag arrives, or at end of
// input for a truncated final entry (truncated == true).
type EntrySink interface {
	Dir(path string) error
	File(path string, content []byte, truncated bool) error
}

// ParseArchive runs the line-oriented state machine over r. The parser has
// two states: scanning for the next tag, and accumulating content lines
// inside a file entry. Unrecognized lines between entries are ignored, so
// stray blank lines or commentary do not break an archive.
func ParseArchive(r io.Reader, sink EntrySink) error {
	reader := bufio.NewReader(r)

	inFile := false
	var filePath string
	var buffer bytes.Buffer

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			stripped := strings.TrimSuffix(line, "\n")

			if inFile {
				if stripped == fileEndTagLine {
					if err := sink.File(filePath, buffer.Bytes(), false); err != nil {
						return err
					}
					inFile = false
					buffer.Reset()
				} else {
					// Content lines keep their newline verbatim.
					buffer.WriteString(line)
				}
			} else if path, ok := parseTag(stripped, dirTagPrefix); ok {
				if err := sink.Dir(path); err != nil {
					return err
				}
			} else if path, ok := parseTag(stripped, fileTagPrefix); ok {
				inFile = true
				filePath = path
				buffer.Reset()
			}
		}

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				return fmt.Errorf("failed to read archive: %w", readErr)
			}
			break
		}
	}

	// Graceful truncation: an unterminated last file is still flushed with
	// whatever content accumulated.
	if inFile {
		if err := sink.File(filePath, buffer.Bytes(), true); err != nil {
			return err
		}
	}
	return nil
}

// parseTag extracts the path from a full-line tag of the given prefix.
func parseTag(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, tagSuffix) {
		return "", false
	}
	path := line[len(prefix) : len(line)-len(tagSuffix)]
	if path == "" {
		return "", false
	}
	return path, true
}

// ExtractArchive parses r and materializes its entries under targetDir,
// overwriting existing files. Progress lines go to stdout, warnings to
// stderr. Archive paths that would escape targetDir are skipped.
func ExtractArchive(r io.Reader, targetDir string, stdout, stderr io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ParseArchive(r, &extractSink{
		root:   targetDir,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	})
}

type extractSink struct {
	root   string
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

func (s *extractSink) Dir(path string) error {
	target, ok := s.resolve(path)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	fmt.Fprintf(s.stdout, "Created directory: %s\n", path)
	return nil
}

func (s *extractSink) File(path string, content []byte, truncated bool) error {
	target, ok := s.resolve(path)
	if !ok {
		return nil
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if truncated {
		fmt.Fprintf(s.stdout, "Extracted (EOF): %s\n", path)
	} else {
		fmt.Fprintf(s.stdout, "Extracted: %s\n", path)
	}
	s.logger.Debug("Extracted entry", zap.String("path", path), zap.Bool("truncated", truncated))
	return nil
}

// resolve maps an archive path to a filesystem path under the extraction
// root, refusing paths that are absolute or climb out of it.
func (s *extractSink) resolve(path string) (string, bool) {
	native := filepath.FromSlash(path)
	if !filepath.IsLocal(native) {
		fmt.Fprintf(s.stderr, "skipping unsafe path: %s\n", path)
		return "", false
	}
	if s.root == "" {
		return native, true
	}
	return filepath.Join(s.root, native), true
}

// ListArchive parses r and prints entry paths in encounter order, one per
// line, with no other decoration.
func ListArchive(r io.Reader, stdout io.Writer) error {
	return ParseArchive(r, &listSink{stdout: stdout})
}

type listSink struct {
	stdout io.Writer
}

func (s *listSink) Dir(path string) error {
	_, err := fmt.Fprintln(s.stdout, path)
	return err
}

func (s *listSink) File(path string, _ []byte, _ bool) error {
	_, err := fmt.Fprintln(s.stdout, path)
	return err
}
