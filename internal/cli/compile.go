package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchql/finch/internal/parser"
	"github.com/finchql/finch/internal/qlang"
)

// CompileResult is the JSON payload for a successful compile.
type CompileResult struct {
	Query *qlang.CompiledQuery `json:"query"`
	Input string               `json:"input"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <query>",
		Short: "Compile a query to its native form",
		Long: `Compile a query string and print the native query, bound parameters
and paging information without executing anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCompile(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := loadRegistry(opts)
	if err != nil {
		outputErr := formatter.Error(ErrCodeSpecs, err.Error())
		if outputErr != nil {
			return outputErr
		}
		return err
	}
	formatter.VerboseLog("registry loaded with %d object type(s)", len(reg.Types()))

	q, err := parser.New(reg).Parse(input)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeParse, err.Error()); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "compile failed", Err: err}
	}

	if opts.Format == "json" {
		return formatter.Success(&CompileResult{Query: q, Input: input})
	}
	return formatter.Success(renderQuery(q))
}

// renderQuery formats a compiled query for text output.
func renderQuery(q *qlang.CompiledQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type:    %s\n", q.Type)
	fmt.Fprintf(&b, "dialect: %s\n", q.Dialect)
	fmt.Fprintf(&b, "fetch:   %s\n", q.Fetch)
	fmt.Fprintf(&b, "native:  %s\n", q.Native)
	if len(q.Params) > 0 {
		fmt.Fprintf(&b, "params:  %v\n", q.Params)
	}
	if q.Limit != qlang.LimitUnbounded {
		fmt.Fprintf(&b, "limit:   %d\n", q.Limit)
	}
	if q.StartIndex > 0 {
		fmt.Fprintf(&b, "offset:  %d\n", q.StartIndex)
	}
	return strings.TrimRight(b.String(), "\n")
}
