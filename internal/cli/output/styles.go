package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used across commands. When color is
// disabled every style is a plain passthrough, so rendered output carries
// no escape codes.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// StatusSuccess and StatusFailed carry their glyphs as the style
	// value, so callers render them with String().
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style

	// PipelineName styles pipeline identifiers in listings.
	PipelineName lipgloss.Style
}

// NewStyles builds the style set. Plain styles are returned when color
// is false so output stays byte-identical to unstyled text.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Header1:       plain,
			Header2:       plain,
			Bold:          plain,
			Muted:         plain,
			Success:       plain,
			Warning:       plain,
			Error:         plain,
			Info:          plain,
			StatusSuccess: lipgloss.NewStyle().SetString("✓"),
			StatusFailed:  lipgloss.NewStyle().SetString("✗"),
			PipelineName:  plain,
		}
	}

	return Styles{
		Header1:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:          lipgloss.NewStyle().Bold(true),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Info:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		StatusSuccess: lipgloss.NewStyle().SetString("✓").Foreground(lipgloss.Color("10")),
		StatusFailed:  lipgloss.NewStyle().SetString("✗").Foreground(lipgloss.Color("9")),
		PipelineName:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
