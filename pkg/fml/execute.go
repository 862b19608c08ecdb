// Package fml converts a file-system subtree into a single Filesystem
// Markup Language document and reconstructs a subtree from one. It is a
// plain-text analogue of tar, scoped to UTF-8 text content.
package fml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fmlpack/pkg/ignore"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Execute runs one archiving operation. Configuration errors are returned
// and fatal; per-item failures are diagnostics on the stderr channel and the
// run still succeeds.
func Execute(args Arguments, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if args.Stdout == nil {
		args.Stdout = os.Stdout
	}
	if args.Stderr == nil {
		args.Stderr = os.Stderr
	}

	mode, err := resolveMode(args)
	if err != nil {
		return err
	}

	switch mode {
	case ModeCreate:
		return runCreate(args, logger)
	case ModeExtract:
		return runExtract(args, logger)
	default:
		return runList(args, logger)
	}
}

// resolveMode picks the single operating mode from the mutually exclusive
// flags, defaulting to create when positional inputs are present.
func resolveMode(args Arguments) (Mode, error) {
	modes := 0
	for _, set := range []bool{args.Create, args.Extract, args.List} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return 0, errors.New("only one of --create, --extract, or --list can be specified")
	}

	switch {
	case args.Extract:
		return ModeExtract, nil
	case args.List:
		return ModeList, nil
	case args.Create:
		if len(args.Inputs) == 0 {
			return 0, errors.New("at least one input file or folder is required")
		}
		return ModeCreate, nil
	case len(args.Inputs) > 0:
		return ModeCreate, nil
	default:
		return 0, errors.New("no operation specified and no input given")
	}
}

func runCreate(args Arguments, logger *zap.Logger) error {
	resolveRoot, err := resolveDirectory(args.Directory)
	if err != nil {
		return err
	}

	resolved := ExpandInputs(args.Inputs, resolveRoot, logger)

	paths := make([]string, len(resolved))
	for i, input := range resolved {
		paths[i] = input.Path
	}
	baseDir, err := CommonBaseDir(paths)
	if err != nil {
		return fmt.Errorf("failed to compute base directory: %w", err)
	}
	if len(paths) == 0 {
		baseDir = resolveRoot
	}
	logger.Debug("Resolved archive base",
		zap.String("baseDir", baseDir),
		zap.Int("entryCount", len(resolved)))

	matcher, err := ignore.Load(baseDir, ignore.LoadOptions{
		Gitignore: args.Gitignore,
		Logger:    logger,
	})
	if err != nil {
		// Ignore-file problems never abort a run; they only mean no
		// patterns were contributed.
		logger.Debug("Ignore loading failed", zap.Error(err))
		matcher = nil
	}

	opts := GenerateOptions{
		Exclude:     args.Exclude,
		Matcher:     matcher,
		IncludeSpec: args.IncludeSpec,
		Stderr:      args.Stderr,
		Logger:      logger,
	}

	if args.Archive == "" || args.Archive == "-" {
		return Generate(baseDir, resolved, opts, args.Stdout)
	}

	out, err := os.Create(args.Archive)
	if err != nil {
		return fmt.Errorf("failed to create archive file %s: %w", args.Archive, err)
	}
	if err := Generate(baseDir, resolved, opts, out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close archive file %s: %w", args.Archive, err)
	}
	fmt.Fprintf(args.Stdout, "FML archive created: %s\n", args.Archive)
	return nil
}

func runExtract(args Arguments, logger *zap.Logger) error {
	source, err := openArchiveSource(args)
	if err != nil {
		return err
	}
	defer source.Close()

	targetDir := args.Directory
	if targetDir == "" {
		targetDir = "."
	}
	return ExtractArchive(source, targetDir, args.Stdout, args.Stderr, logger)
}

func runList(args Arguments, logger *zap.Logger) error {
	source, err := openArchiveSource(args)
	if err != nil {
		return err
	}
	defer source.Close()

	logger.Debug("Listing archive", zap.String("archive", args.Archive))
	return ListArchive(source, args.Stdout)
}

// openArchiveSource yields the archive byte stream for the read modes: the
// named file, or standard input when the archive is "-" or piped in. A
// missing file and an interactive stdin without -f are both configuration
// errors.
func openArchiveSource(args Arguments) (io.ReadCloser, error) {
	if args.Archive != "" && args.Archive != "-" {
		file, err := os.Open(args.Archive)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("archive file not found: %s", args.Archive)
			}
			return nil, fmt.Errorf("failed to open archive file %s: %w", args.Archive, err)
		}
		return file, nil
	}

	if args.Stdin != nil {
		return io.NopCloser(args.Stdin), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("-f/--file or piped input is required for --extract or --list")
	}
	return io.NopCloser(os.Stdin), nil
}

// resolveDirectory makes the -C option absolute, defaulting to the working
// directory.
func resolveDirectory(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	return abs, nil
}
