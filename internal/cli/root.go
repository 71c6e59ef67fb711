// Package cli implements the finch command line interface: compile,
// validate, fields and exec subcommands over a shared object-type
// registry.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Error codes surfaced in JSON output.
const (
	ErrCodeParse   = "E001" // query rejected by the compiler
	ErrCodeSpecs   = "E002" // registry spec loading failure
	ErrCodeStore   = "E003" // execution store failure
	ErrCodeGeneric = "E999"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Specs   string // optional CUE registry directory
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the finch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "finch",
		Short: "finch - typed query compiler for commerce object types",
		Long: `finch compiles typed object queries into native search or SQL form.

Queries follow the FIND grammar:

  FIND Product WHERE ProductCode = 'SKU123' LIMIT 10

Object types and their queryable fields come from the built-in commerce
registry, or from a CUE spec directory given with --specs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Specs, "specs", "", "CUE registry directory (default: built-in commerce registry)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewFieldsCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
