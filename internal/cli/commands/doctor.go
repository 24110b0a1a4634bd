package commands

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pipeforge-labs/pipeforge/internal/cli/config"
	"github.com/pipeforge-labs/pipeforge/internal/cli/output"
	"github.com/pipeforge-labs/pipeforge/internal/render"
	"github.com/pipeforge-labs/pipeforge/internal/state"
	"github.com/pipeforge-labs/pipeforge/pkg/descriptor"
	"github.com/pipeforge-labs/pipeforge/pkg/source"
	"github.com/pipeforge-labs/pipeforge/pkg/token"
	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run a project health check",
		Long: `Analyze the project for configuration and pipeline problems.

The report covers config parsing, per-pipeline compilation, reserved
column names, source and sink recognition, the state store, and the
configured template set, with a health score at the end.`,
		Example: `  # Run health check
  pipeforge doctor

  # Machine-readable report
  pipeforge doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks     []HealthCheck `json:"checks"`
	Score      int           `json:"score"`
	IssueCount int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"` // "pass", "warn", "error"
	Details []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	out := buildDoctorOutput(cmd, cc)

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON:
		return cc.Renderer.JSON(out)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(cc.Renderer, out)
	default:
		return renderDoctorText(cc.Renderer, out)
	}
}

func buildDoctorOutput(cmd *cobra.Command, cc *CommandContext) *DoctorOutput {
	checks := []HealthCheck{
		checkConfigFile(),
		checkProjectName(cc.Cfg),
		checkSourceType(cc.Cfg),
		checkSinkType(cc.Cfg),
	}
	checks = append(checks, checkPipelines(cc)...)
	checks = append(checks, checkStateStore(cmd, cc), checkTemplateSet(cc.Cfg))

	out := &DoctorOutput{Checks: checks}
	out.Score = healthScore(checks)
	for _, c := range checks {
		out.IssueCount += len(c.Details)
	}
	return out
}

func checkConfigFile() HealthCheck {
	check := HealthCheck{Name: "config file", Group: "configuration", Status: "pass"}
	if used := config.GetConfigFileUsed(); used != "" {
		check.Details = []string{used}
		return check
	}
	check.Status = "warn"
	check.Details = []string{"no pipeforge.yaml found, defaults in effect"}
	return check
}

func checkProjectName(cfg *config.Config) HealthCheck {
	check := HealthCheck{Name: "project name", Group: "configuration", Status: "pass"}
	if cfg.ProjectName == "" {
		check.Status = "warn"
		check.Details = []string{"project_name is not set"}
	}
	return check
}

func checkSourceType(cfg *config.Config) HealthCheck {
	check := HealthCheck{Name: "source type", Group: "configuration", Status: "pass"}
	typ := cfg.Compile.SourceType
	if typ == "" {
		check.Details = []string{descriptor.DefaultSourceType + " (default)"}
		return check
	}
	if !source.IsKnownType(typ) {
		check.Status = "warn"
		check.Details = []string{fmt.Sprintf("unknown source type %q, generic connection settings will be used", typ)}
	}
	return check
}

func checkSinkType(cfg *config.Config) HealthCheck {
	check := HealthCheck{Name: "sink type", Group: "configuration", Status: "pass"}
	typ := cfg.Compile.SinkType
	if typ == "" {
		check.Details = []string{descriptor.DefaultSinkType + " (default)"}
		return check
	}
	if !source.IsKnownSink(typ) {
		check.Status = "warn"
		check.Details = []string{fmt.Sprintf("unknown sink type %q, generic endpoint will be used", typ)}
	}
	return check
}

// checkPipelines compiles every configured pipeline and scans the
// resulting columns for reserved-word collisions.
func checkPipelines(cc *CommandContext) []HealthCheck {
	compileCheck := HealthCheck{Name: "pipelines compile", Group: "pipelines", Status: "pass"}
	reservedCheck := HealthCheck{Name: "reserved columns", Group: "pipelines", Status: "pass"}

	if len(cc.Cfg.Pipelines) == 0 {
		compileCheck.Status = "warn"
		compileCheck.Details = []string{"no pipelines configured"}
		return []HealthCheck{compileCheck, reservedCheck}
	}

	for _, p := range cc.Cfg.Pipelines {
		sqlText, err := p.LoadSQL(cc.Cfg.ProjectRoot)
		if err != nil {
			compileCheck.Status = "error"
			compileCheck.Details = append(compileCheck.Details, err.Error())
			continue
		}
		desc, err := buildDescriptor(sqlText, cc.Cfg.Compile.Merge(p.Compile).DescriptorConfig(cc.Cfg.ProjectName))
		if err != nil {
			compileCheck.Status = "error"
			compileCheck.Details = append(compileCheck.Details, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		for _, col := range desc.Columns {
			if col == descriptor.Wildcard {
				continue
			}
			if token.IsReservedWord(col) {
				reservedCheck.Status = "warn"
				reservedCheck.Details = append(reservedCheck.Details,
					fmt.Sprintf("%s: column %q is a SQL reserved word", p.Name, col))
			}
		}
	}
	return []HealthCheck{compileCheck, reservedCheck}
}

func checkStateStore(cmd *cobra.Command, cc *CommandContext) HealthCheck {
	check := HealthCheck{Name: "state store", Group: "state", Status: "pass"}

	store, err := openStore(cc.Cfg, cc.Logger)
	if err != nil {
		check.Status = "error"
		check.Details = []string{err.Error()}
		return check
	}
	defer func() { _ = store.Close() }()

	version, err := store.GetMigrationVersion()
	if err != nil {
		check.Status = "error"
		check.Details = []string{err.Error()}
		return check
	}
	gens, err := store.ListGenerations(cmdContext(cmd), state.ListFilter{Limit: 1})
	if err != nil {
		check.Status = "error"
		check.Details = []string{err.Error()}
		return check
	}
	detail := fmt.Sprintf("%s (schema v%d)", cc.Cfg.StatePath, version)
	if len(gens) == 0 {
		detail += ", no generations recorded yet"
	}
	check.Details = []string{detail}
	return check
}

func checkTemplateSet(cfg *config.Config) HealthCheck {
	check := HealthCheck{Name: "template set", Group: "templates", Status: "pass"}
	set := cfg.Generate.TemplateSet
	if set == "" {
		set = render.DefaultSet
	}
	if !render.HasSet(set) {
		check.Status = "error"
		check.Details = []string{fmt.Sprintf("unknown template set %q", set)}
		return check
	}
	check.Details = []string{set}
	return check
}

// healthScore folds check statuses into a 0-100 score. Warnings cost a
// tenth, errors a quarter.
func healthScore(checks []HealthCheck) int {
	score := 100
	for _, check := range checks {
		switch check.Status {
		case "warn":
			score -= 10
		case "error":
			score -= 25
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Pipeforge Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 50)))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("  " + titleCaser.String(currentGroup)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}
		r.Printf("  %s %s\n", icon, check.Name)
		for _, detail := range check.Details {
			r.Println(styles.Muted.Render("      " + detail))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render(strings.Repeat("=", 50)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("  Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")
	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Pipeforge Project Health Report")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("## " + titleCaser.String(currentGroup))
			r.Println("")
		}

		r.Printf("- **[%s]** %s\n", strings.ToUpper(check.Status), check.Name)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}

	r.Println("")
	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	return nil
}
