package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new pipeforge project",
		Long: `Initialize a new pipeforge project with a default configuration and an
example pipeline.

This creates:
  - pipeforge.yaml configuration file
  - pipelines/ directory with an example SQL pipeline
  - .gitignore covering generated output and local state`,
		Example: `  # Initialize in the current directory
  pipeforge init

  # Initialize a new directory
  pipeforge init my-pipelines

  # Answer the setup questions interactively
  pipeforge init --interactive

  # Overwrite an existing configuration
  pipeforge init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, force, interactive)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for project name, source type and sink type")

	return cmd
}

func runInit(cmd *cobra.Command, args []string, force, interactive bool) error {
	cc := NewCommandContext(cmd)

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	answers := scaffoldAnswers{
		ProjectName: defaultProjectName(dir),
		SourceType:  descriptor.DefaultSourceType,
		SinkType:    descriptor.DefaultSinkType,
	}
	if interactive {
		var err error
		if answers, err = runWizard(answers); err != nil {
			return err
		}
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "pipeforge.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("pipeforge.yaml already exists. Use --force to overwrite")
	}

	created, err := writeScaffold(dir, answers, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	for _, f := range created {
		cc.Renderer.StatusLine(f, "success", "")
	}

	cc.Renderer.Println("")
	cc.Renderer.Success("pipeforge project initialized!")
	cc.Renderer.Println("")
	cc.Renderer.Println("Next steps:")
	cc.Renderer.Println("  1. Edit pipelines/events.sql or add more pipelines")
	cc.Renderer.Println("  2. Run 'pipeforge compile pipelines/events.sql' to see the descriptor")
	cc.Renderer.Println("  3. Run 'pipeforge generate' to render the pipeline projects")

	return nil
}

// defaultProjectName derives a project name from the target directory.
func defaultProjectName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "pipeforge-project"
	}
	name := filepath.Base(abs)
	if name == "/" || name == "." || name == "" {
		return "pipeforge-project"
	}
	return name
}
