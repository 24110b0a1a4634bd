// Package output renders CLI command results.
//
// Commands write through a Renderer that adapts to its environment:
// styled text on a terminal, plain markdown when piped, JSON or YAML when
// asked for explicitly. Auto mode probes the output writer for a TTY and
// picks text or markdown accordingly, so the same command works for
// humans and for scripts without flags.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how command results are rendered.
type OutputMode string

const (
	// ModeAuto picks text on a TTY and markdown otherwise.
	ModeAuto OutputMode = "auto"
	// ModeText renders styled terminal output.
	ModeText OutputMode = "text"
	// ModeMarkdown renders plain markdown suitable for piping.
	ModeMarkdown OutputMode = "markdown"
	// ModeJSON renders machine-readable JSON.
	ModeJSON OutputMode = "json"
)

// Mode parses a mode string. Unknown values fall back to auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// ValidModes lists the accepted --output values.
func ValidModes() []string {
	return []string{"auto", "text", "markdown", "json"}
}

// IsValidMode reports whether s names a known output mode.
func IsValidMode(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "text", "markdown", "md", "json":
		return true
	}
	return false
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer, probing out for a TTY.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use this to force either styled or plain output.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	r.styles = NewStyles(r.colorEnabled())
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// colorEnabled respects NO_COLOR and dumb terminals via termenv.
func (r *Renderer) colorEnabled() bool {
	if !r.isTTY {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// IsTTY reports whether the output writer is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the destination for primary output.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the destination for diagnostics.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set matching the renderer's color state.
func (r *Renderer) Styles() Styles { return r.styles }

// EffectiveMode resolves auto to text or markdown based on the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Println writes a line to the output writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Header writes a section header. Level 1 is a title, level 2 a section.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(strings.Repeat("#", level) + " " + text)
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(text))
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println("**" + msg + "**")
		return
	}
	r.Println(r.styles.Success.Render(msg))
}

// Warning writes a warning line to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(msg))
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
}

// Info writes an informational line.
func (r *Renderer) Info(msg string) {
	r.Println(r.styles.Info.Render(msg))
}

// Muted writes a secondary line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// StatusLine writes one "item: outcome" line, as used by file listings
// and health checks.
func (r *Renderer) StatusLine(name, status, detail string) {
	if r.EffectiveMode() == ModeMarkdown {
		line := fmt.Sprintf("- [%s] %s", status, name)
		if detail != "" {
			line += " (" + detail + ")"
		}
		r.Println(line)
		return
	}

	var icon string
	switch status {
	case "success", "ok", "pass":
		icon = r.styles.StatusSuccess.String()
	case "error", "failed", "fail":
		icon = r.styles.StatusFailed.String()
	case "warn", "warning":
		icon = r.styles.Warning.Render("!")
	default:
		icon = r.styles.Muted.Render("-")
	}

	line := fmt.Sprintf("  %s %s", icon, name)
	if detail != "" {
		line += "  " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// Table writes a table. Text mode uses a light box style, markdown mode a
// pipe table, and JSON mode an array of objects keyed by header.
func (r *Renderer) Table(headers []string, rows [][]string) {
	if r.EffectiveMode() == ModeJSON {
		objects := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i, h := range headers {
				if i < len(row) {
					obj[h] = row[i]
				}
			}
			objects = append(objects, obj)
		}
		_ = r.JSON(objects)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
