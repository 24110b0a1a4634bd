package commands

import (
	"strconv"
	"strings"

	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/pkg/canonical"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/spf13/cobra"
)

// InspectOptions holds options for the inspect command.
type InspectOptions struct {
	SQL        string
	Tokens     bool
	AST        bool
	Conditions bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [file.sql]",
		Short: "Inspect the compile stages of a statement",
		Long: `Show intermediate compile results for a statement: the token stream,
the canonical statement map, and the normalized filter conditions.

With no section flag, all sections are shown.`,
		Example: `  # Everything
  pipeforge inspect pipelines/events.sql

  # Token stream only
  pipeforge inspect --tokens --sql "SELECT id FROM users"

  # Conditions as JSON
  pipeforge inspect --conditions -o json pipelines/events.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SQL, "sql", "", "Inline SQL statement to inspect")
	cmd.Flags().BoolVar(&opts.Tokens, "tokens", false, "Show the token stream")
	cmd.Flags().BoolVar(&opts.AST, "ast", false, "Show the canonical statement map")
	cmd.Flags().BoolVar(&opts.Conditions, "conditions", false, "Show normalized filter conditions")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	cc := NewCommandContext(cmd)

	sql, err := readSQLInput(cmd, args, opts.SQL)
	if err != nil {
		return err
	}

	// No section flag selects everything.
	all := !opts.Tokens && !opts.AST && !opts.Conditions

	var (
		tokens []parser.Token
		node   any
		desc   *descriptor.Descriptor
	)
	if opts.Tokens || all {
		if tokens, err = parser.Tokenize(sql); err != nil {
			return err
		}
	}
	if opts.AST || all {
		stmt, err := parser.ParseOne(sql)
		if err != nil {
			return err
		}
		node = canonical.Normalize(stmt)
	}
	if opts.Conditions || all {
		if desc, err = buildDescriptor(sql, cc.Cfg.Compile.DescriptorConfig(cc.Cfg.ProjectName)); err != nil {
			return err
		}
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		payload := map[string]any{}
		if tokens != nil {
			payload["tokens"] = tokenRows(tokens)
		}
		if node != nil {
			payload["ast"] = node
		}
		if desc != nil {
			payload["conditions"] = desc.Conditions
		}
		return cc.Renderer.JSON(payload)
	}

	if tokens != nil {
		cc.Renderer.Header(2, "Tokens")
		rows := make([][]string, 0, len(tokens))
		for _, row := range tokenRows(tokens) {
			rows = append(rows, []string{row.Kind, row.Literal, strconv.Itoa(row.Line), strconv.Itoa(row.Col)})
		}
		cc.Renderer.Table([]string{"KIND", "LITERAL", "LINE", "COL"}, rows)
	}

	if node != nil {
		cc.Renderer.Header(2, "Statement")
		if err := cc.Renderer.YAML(node); err != nil {
			return err
		}
	}

	if desc != nil {
		cc.Renderer.Header(2, "Conditions")
		if len(desc.Conditions) == 0 {
			cc.Renderer.Muted("no filter conditions")
			return nil
		}
		cc.Renderer.Table(
			[]string{"KIND", "COLUMN", "OPERATOR", "VALUE"},
			conditionRows(desc.Conditions, 0),
		)
	}
	return nil
}

// inspectToken is one row of the token listing.
type inspectToken struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
}

func tokenRows(tokens []parser.Token) []inspectToken {
	rows := make([]inspectToken, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == parser.TOKEN_EOF {
			continue
		}
		rows = append(rows, inspectToken{
			Kind:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Col:     tok.Pos.Column,
		})
	}
	return rows
}

// conditionRows flattens the condition tree for table display. Nested
// groups indent their KIND cell one level per depth.
func conditionRows(conds []descriptor.Condition, depth int) [][]string {
	indent := strings.Repeat("  ", depth)
	var rows [][]string
	for _, c := range conds {
		switch c.Kind {
		case descriptor.ConditionDisjunction:
			rows = append(rows, []string{indent + string(c.Kind), "", "", ""})
			rows = append(rows, conditionRows(c.Or, depth+1)...)
		case descriptor.ConditionConjunction:
			rows = append(rows, []string{indent + string(c.Kind), "", "", ""})
			rows = append(rows, conditionRows(c.And, depth+1)...)
		case descriptor.ConditionMembership:
			op := "IN"
			if c.Negated {
				op = "NOT IN"
			}
			rows = append(rows, []string{indent + string(c.Kind), c.Column, op, strings.Join(c.Values, ", ")})
		default:
			rows = append(rows, []string{indent + string(c.Kind), c.Column, c.Operator, c.Value})
		}
	}
	return rows
}
