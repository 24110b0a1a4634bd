package commands

import (
	"strings"

	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/internal/render"
	"github.com/spf13/cobra"
)

// NewTemplatesCommand creates the templates command.
func NewTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List embedded generator template sets",
		Long: `List the template sets available to generate, with the files each
set emits per pipeline.`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
}

// templateSet is one row of the listing.
type templateSet struct {
	Name    string   `json:"name"`
	Files   []string `json:"files"`
	Default bool     `json:"default"`
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	names, err := render.Sets()
	if err != nil {
		return err
	}

	sets := make([]templateSet, 0, len(names))
	for _, name := range names {
		files, err := render.SetFiles(name)
		if err != nil {
			return err
		}
		sets = append(sets, templateSet{
			Name:    name,
			Files:   files,
			Default: name == render.DefaultSet,
		})
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return cc.Renderer.JSON(map[string]any{"sets": sets})
	}

	rows := make([][]string, 0, len(sets))
	for _, set := range sets {
		def := ""
		if set.Default {
			def = "yes"
		}
		rows = append(rows, []string{set.Name, strings.Join(set.Files, ", "), def})
	}
	cc.Renderer.Table([]string{"NAME", "FILES", "DEFAULT"}, rows)
	return nil
}
