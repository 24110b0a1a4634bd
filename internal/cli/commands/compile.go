package commands

import (
	"fmt"
	"strings"

	"github.com/pipeforge-labs/pipeforge/pkg/canonical"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/spf13/cobra"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	SQL       string
	Format    string
	Canonical bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile [file.sql]",
		Short: "Compile a SQL statement into a pipeline descriptor",
		Long: `Run a statement through the lexer, parser and descriptor builder and
print the resulting pipeline descriptor.

SQL is read from the file argument, from --sql, or from stdin.`,
		Example: `  # Compile a file
  pipeforge compile pipelines/events.sql

  # Compile inline SQL, emit YAML
  pipeforge compile --sql "SELECT id, name FROM users" --format yaml

  # Pipe from stdin
  echo "SELECT * FROM events;" | pipeforge compile

  # Show the canonical statement map instead of the descriptor
  pipeforge compile --canonical pipelines/events.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SQL, "sql", "", "Inline SQL statement to compile")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "Emit the canonical statement map instead of the descriptor")

	return cmd
}

func runCompile(cmd *cobra.Command, args []string, opts *CompileOptions) error {
	cc := NewCommandContext(cmd)

	sql, err := readSQLInput(cmd, args, opts.SQL)
	if err != nil {
		return err
	}

	var payload any
	if opts.Canonical {
		stmt, err := parser.ParseOne(sql)
		if err != nil {
			return err
		}
		payload = canonical.Normalize(stmt)
	} else {
		desc, err := buildDescriptor(sql, cc.Cfg.Compile.DescriptorConfig(cc.Cfg.ProjectName))
		if err != nil {
			return err
		}
		payload = desc
	}

	switch strings.ToLower(opts.Format) {
	case "json":
		return cc.Renderer.JSON(payload)
	case "yaml", "yml":
		return cc.Renderer.YAML(payload)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", opts.Format)
	}
}
