package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pipeforge-labs/pipeforge/pkg/canonical"
	"github.com/pipeforge-labs/pipeforge/pkg/parser"
	"github.com/pipeforge-labs/pipeforge/pkg/token"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive compile loop",
		Long: `Start an interactive session. Statements end with a semicolon and
compile into pipeline descriptors; dot-commands inspect single
statements without one.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pipeforge> ",
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "pipeforge REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("pipeforge> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cc, cmd, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("      ...> ")
			continue
		}
		rl.SetPrompt("pipeforge> ")

		sqlText := multiLineBuffer.String()
		multiLineBuffer.Reset()

		if err := replCompile(cc, sqlText); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// replCompile compiles one finished statement and prints its descriptor.
func replCompile(cc *CommandContext, sqlText string) error {
	desc, err := buildDescriptor(sqlText, cc.Cfg.Compile.DescriptorConfig(cc.Cfg.ProjectName))
	if err != nil {
		return err
	}
	return cc.Renderer.JSON(desc)
}

// handleDotCommand dispatches a dot-command line. It reports whether the
// REPL should quit.
func handleDotCommand(cc *CommandContext, cmd *cobra.Command, line string) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())

	case ".tokens":
		if rest == "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .tokens <sql>")
			return false
		}
		tokens, err := parser.Tokenize(rest)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		rows := make([][]string, 0, len(tokens))
		for _, row := range tokenRows(tokens) {
			rows = append(rows, []string{row.Kind, row.Literal, strconv.Itoa(row.Line), strconv.Itoa(row.Col)})
		}
		cc.Renderer.Table([]string{"KIND", "LITERAL", "LINE", "COL"}, rows)

	case ".ast":
		if rest == "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .ast <sql>")
			return false
		}
		stmt, err := parser.ParseOne(rest)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		if err := cc.Renderer.YAML(canonical.Normalize(stmt)); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".descriptor":
		if rest == "" {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .descriptor <sql>")
			return false
		}
		if err := replCompile(cc, rest); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".config":
		if err := cc.Renderer.YAML(cc.Cfg.Compile.DescriptorConfig(cc.Cfg.ProjectName)); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", name)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .tokens <sql>      Token stream for a statement
  .ast <sql>         Canonical statement map
  .descriptor <sql>  Pipeline descriptor for a statement
  .config            Show the compile defaults in effect
  .clear             Clear the screen
  .quit / .exit      Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for keywords and dot-commands
`
	_, _ = fmt.Fprintln(w, help)
}

// replHistoryFile picks a per-user history location.
func replHistoryFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".pipeforge_history")
	}
	return filepath.Join(os.TempDir(), "pipeforge_history")
}

// newReplCompleter completes SQL keywords (both cases) and dot-commands.
func newReplCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw), readline.PcItem(strings.ToUpper(kw)))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tokens"),
		readline.PcItem(".ast"),
		readline.PcItem(".descriptor"),
		readline.PcItem(".config"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
