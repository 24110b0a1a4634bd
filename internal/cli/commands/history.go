package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit    int
	Pipeline string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded pipeline generations",
		Long:  `List generation records from the state store, newest first.`,
		Example: `  # Recent generations
  pipeforge history

  # Only one pipeline, as JSON
  pipeforge history --pipeline events -o json

  # Full record for one generation
  pipeforge history show 3f2a9c1e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", state.DefaultListLimit, "Maximum number of records")
	cmd.Flags().StringVarP(&opts.Pipeline, "pipeline", "p", "", "Only records for this pipeline")

	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cc := NewCommandContext(cmd)

	store, err := openStore(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gens, err := store.ListGenerations(cmdContext(cmd), state.ListFilter{
		Pipeline: opts.Pipeline,
		Limit:    opts.Limit,
	})
	if err != nil {
		return err
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		if gens == nil {
			gens = []*state.Generation{}
		}
		return cc.Renderer.JSON(map[string]any{"generations": gens})
	}

	if len(gens) == 0 {
		cc.Renderer.Muted("no generations recorded")
		return nil
	}

	rows := make([][]string, 0, len(gens))
	for _, gen := range gens {
		rows = append(rows, []string{
			shortID(gen.ID),
			gen.Pipeline,
			string(gen.Status),
			gen.SourceType,
			gen.SinkType,
			gen.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	cc.Renderer.Table([]string{"ID", "PIPELINE", "STATUS", "SOURCE", "SINK", "CREATED"}, rows)
	return nil
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one generation record with its stored descriptor",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	store, err := openStore(cc.Cfg, cc.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gen, err := store.GetGeneration(cmdContext(cmd), args[0])
	if err != nil {
		return err
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return cc.Renderer.JSON(gen)
	}

	cc.Renderer.Header(2, fmt.Sprintf("Generation %s", gen.ID))
	cc.Renderer.Printf("pipeline: %s\n", gen.Pipeline)
	cc.Renderer.Printf("status:   %s\n", gen.Status)
	if gen.SourceType != "" {
		cc.Renderer.Printf("source:   %s\n", gen.SourceType)
	}
	if gen.SinkType != "" {
		cc.Renderer.Printf("sink:     %s\n", gen.SinkType)
	}
	cc.Renderer.Printf("created:  %s\n", gen.CreatedAt.Local().Format(time.RFC3339))

	if gen.Error != "" {
		cc.Renderer.Error(gen.Error)
	}
	if gen.DescriptorJSON != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(gen.DescriptorJSON), "", "  "); err != nil {
			cc.Renderer.Println(gen.DescriptorJSON)
		} else {
			cc.Renderer.Println(buf.String())
		}
	}
	return nil
}

// shortID trims a UUID to its first block for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
