package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchql/finch/internal/qlang"
)

// TypeFields is the JSON payload listing one type's queryable fields.
type TypeFields struct {
	Type    qlang.ObjectType `json:"type"`
	Dialect qlang.Dialect    `json:"dialect"`
	Fields  []FieldInfo      `json:"fields"`
}

// FieldInfo describes one queryable field.
type FieldInfo struct {
	Key        qlang.FieldKey       `json:"key"`
	ValueType  qlang.FieldValueType `json:"valueType"`
	EnumValues []string             `json:"enumValues,omitempty"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields [type]",
		Short: "List object types and their queryable fields",
		Long: `List the registered object types. With a type argument, list that
type's queryable fields with their value types.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := ""
			if len(args) == 1 {
				typeName = args[0]
			}
			return runFields(rootOpts, typeName, cmd)
		},
	}
	return cmd
}

func runFields(opts *RootOptions, typeName string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	reg, err := loadRegistry(opts)
	if err != nil {
		if outputErr := formatter.Error(ErrCodeSpecs, err.Error()); outputErr != nil {
			return outputErr
		}
		return err
	}

	if typeName == "" {
		types := reg.Types()
		if opts.Format == "json" {
			return formatter.Success(types)
		}
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		return formatter.Success(strings.Join(names, "\n"))
	}

	t, ok := qlang.ParseObjectType(typeName)
	if !ok {
		if outputErr := formatter.Error(ErrCodeParse, fmt.Sprintf("unsupported query type %q", typeName)); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "unknown type"}
	}
	cfg, ok := reg.Config(t)
	if !ok {
		if outputErr := formatter.Error(ErrCodeParse, fmt.Sprintf("no configuration registered for type %s", t)); outputErr != nil {
			return outputErr
		}
		return &ExitError{Code: ExitFailure, Message: "unknown type"}
	}

	result := TypeFields{Type: cfg.Type, Dialect: cfg.Dialect}
	for _, key := range cfg.FieldKeys() {
		desc, _ := cfg.Lookup(key)
		result.Fields = append(result.Fields, FieldInfo{
			Key:        desc.Key,
			ValueType:  desc.ValueType,
			EnumValues: desc.EnumValues,
		})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s dialect)\n", result.Type, result.Dialect)
	for _, f := range result.Fields {
		fmt.Fprintf(&b, "  %-20s %s", f.Key, f.ValueType)
		if len(f.EnumValues) > 0 {
			fmt.Fprintf(&b, " {%s}", strings.Join(f.EnumValues, ", "))
		}
		b.WriteByte('\n')
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}
