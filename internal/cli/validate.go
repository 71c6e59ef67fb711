package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchql/finch/internal/parser"
)

// ValidateResult is the JSON payload for a validation pass.
type ValidateResult struct {
	Input string `json:"input"`
	Valid bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <query>",
		Short:         "Check a query for validity without executing it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := loadRegistry(opts)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeSpecs, err.Error()); outputErr != nil {
			return outputErr
		}
		return err
	}

	if _, err := parser.New(reg).Verify(input); err != nil {
		if outputErr := formatter.Error(ErrCodeParse, err.Error()); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "validation failed", Err: err}
	}

	if opts.Format == "json" {
		return formatter.Success(&ValidateResult{Input: input, Valid: true})
	}
	return formatter.Success(fmt.Sprintf("valid: %s", input))
}
