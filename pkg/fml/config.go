package fml

import "io"

// Arguments holds the resolved command-line configuration for one run.
type Arguments struct {
	Create      bool     // Create a new archive
	Extract     bool     // Extract files from an archive
	List        bool     // List the contents of an archive
	Archive     string   // Archive file path; "" or "-" means stdin/stdout
	Directory   string   // Base for relative paths (create) or extraction root
	Exclude     []string // Glob patterns excluding entries at creation time
	Gitignore   bool     // Also honor .gitignore files when creating
	IncludeSpec bool     // Append the FML specification to the created archive
	Inputs      []string // Input files or folders for archive creation

	// Stdout and Stderr carry the format's user-facing channels: archive
	// bytes and progress lines on Stdout, diagnostics on Stderr. They
	// default to the process streams and are overridden in tests.
	Stdout io.Writer
	Stderr io.Writer

	// Stdin is the archive source when no file is given. Defaults to the
	// process stream.
	Stdin io.Reader
}

// Mode is the operating mode resolved from the mutually exclusive flags.
type Mode int

const (
	ModeCreate Mode = iota
	ModeExtract
	ModeList
)
