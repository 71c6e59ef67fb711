package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finchql/finch/internal/parser"
	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Database string
}

// ExecResult is the JSON payload for an executed query.
type ExecResult struct {
	Input string   `json:"input"`
	Fetch string   `json:"fetch"`
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <query>",
		Short: "Compile and run a SQL-dialect query against the settings store",
		Long: `Compile a query and execute it against the SQLite settings store.
Only SQL-dialect object types (Catalog, Configuration) are executable;
search-dialect queries target the external index and are rejected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "finch.db", "path to the SQLite settings store")

	return cmd
}

func runExec(opts *ExecOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	reg, err := loadRegistry(opts.RootOptions)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeSpecs, err.Error()); outputErr != nil {
			return outputErr
		}
		return err
	}

	q, err := parser.New(reg).Parse(input)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeParse, err.Error()); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "compile failed", Err: err}
	}
	if q.Dialect != qlang.DialectSQL {
		msg := fmt.Sprintf("type %s compiles to the %s dialect and cannot be executed here", q.Type, q.Dialect)
		if outputErr := formatter.Error(ErrCodeParse, msg); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "not executable"}
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "initializing logger", Err: err}
	}
	defer logger.Sync()

	s, err := store.Open(opts.Database, logger.Sugar())
	if err != nil {
		if outputErr := formatter.Error(ErrCodeStore, err.Error()); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitCommandError, Message: "opening store", Err: err}
	}
	defer s.Close()

	ids, err := s.Execute(cmd.Context(), q)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeStore, err.Error()); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitCommandError, Message: "executing query", Err: err}
	}

	if opts.Format == "json" {
		return formatter.Success(&ExecResult{
			Input: input,
			Fetch: string(q.Fetch),
			Count: len(ids),
			IDs:   ids,
		})
	}
	if len(ids) == 0 {
		return formatter.Success("no results")
	}
	return formatter.Success(strings.Join(ids, "\n"))
}

// newLogger builds the exec logger. Verbose mode enables debug output on
// stderr; otherwise only warnings and above surface.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
