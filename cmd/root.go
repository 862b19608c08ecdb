package cmd

import (
	"fmt"

	"fmlpack/pkg/fml"
	"fmlpack/pkg/logging"
	"fmlpack/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute builds the root command and runs it. Any returned error is a
// fatal configuration error; the caller reports it as a single line.
func Execute(logger *zap.Logger) error {
	return NewRootCommand(logger).Execute()
}

// NewRootCommand wires the tar-like flag surface to the fml package.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	var args fml.Arguments
	var specHelp bool
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "fmlpack [flags] [input ...]",
		Short: "fmlpack converts a file tree to/from a Filesystem Markup Language (FML) document",
		Long: `fmlpack archives a file-system subtree into a single human-readable FML
document and reconstructs a subtree from one, like a plain-text tar.

Only UTF-8 text files are archived; binary files are detected and skipped.
Entries can be filtered with --exclude globs, .fmlpackignore files, and
(with --gitignore) the .gitignore convention.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			if specHelp {
				fmt.Fprint(cmd.OutOrStdout(), fml.Spec())
				return nil
			}

			runLogger := logger
			if debug {
				if err := logging.Setup(true, "fmlpack", version.Get().Version); err == nil {
					runLogger = logging.Logger
				}
			}

			args.Inputs = positional
			return fml.Execute(args, runLogger)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&args.Create, "create", "c", false, "Create a new archive (default when inputs are given)")
	flags.BoolVarP(&args.Extract, "extract", "x", false, "Extract files from an archive")
	flags.BoolVarP(&args.List, "list", "t", false, "List the contents of an archive")
	flags.StringVarP(&args.Archive, "file", "f", "", "Use archive file ARCHIVE; '-' means stdin/stdout")
	flags.StringVarP(&args.Directory, "directory", "C", "", "Base directory for relative paths (create) or extraction target")
	flags.StringArrayVar(&args.Exclude, "exclude", nil, "Exclude files matching PATTERN (repeatable)")
	flags.BoolVar(&args.Gitignore, "gitignore", false, "Also honor .gitignore files when creating an archive")
	flags.BoolVarP(&args.IncludeSpec, "include-spec", "s", false, "Include the FML specification (as fmlpack-spec.md) in the created archive")
	flags.BoolVar(&specHelp, "spec-help", false, "Print the FML specification and exit")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}
