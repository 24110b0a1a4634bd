package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// runWizard asks for the scaffold answers interactively. Empty answers
// keep their defaults.
func runWizard(defaults scaffoldAnswers) (scaffoldAnswers, error) {
	p := tea.NewProgram(newWizardModel(defaults))
	final, err := p.Run()
	if err != nil {
		return scaffoldAnswers{}, err
	}

	m, ok := final.(wizardModel)
	if !ok || m.aborted {
		return scaffoldAnswers{}, fmt.Errorf("init cancelled")
	}

	answers := scaffoldAnswers{
		ProjectName: strings.TrimSpace(m.inputs[0].Value()),
		SourceType:  strings.TrimSpace(m.inputs[1].Value()),
		SinkType:    strings.TrimSpace(m.inputs[2].Value()),
	}
	if answers.ProjectName == "" {
		answers.ProjectName = defaults.ProjectName
	}
	if answers.SourceType == "" {
		answers.SourceType = defaults.SourceType
	}
	if answers.SinkType == "" {
		answers.SinkType = defaults.SinkType
	}
	return answers, nil
}

type wizardModel struct {
	inputs  []textinput.Model
	labels  []string
	focus   int
	aborted bool
}

func newWizardModel(defaults scaffoldAnswers) wizardModel {
	m := wizardModel{
		labels: []string{"Project name", "Source type", "Sink type"},
	}

	values := []string{defaults.ProjectName, defaults.SourceType, defaults.SinkType}
	m.inputs = make([]textinput.Model, len(values))
	for i, v := range values {
		ti := textinput.New()
		ti.SetValue(v)
		ti.CharLimit = 64
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			if m.focus == len(m.inputs)-1 {
				return m, tea.Quit
			}
			m.setFocus(m.focus + 1)
			return m, textinput.Blink

		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, textinput.Blink

		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *wizardModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m wizardModel) View() string {
	var b strings.Builder
	b.WriteString("pipeforge project setup\n\n")
	for i := range m.inputs {
		b.WriteString(m.labels[i] + "\n")
		b.WriteString(m.inputs[i].View() + "\n\n")
	}
	b.WriteString("enter: accept, tab: switch field, esc: cancel\n")
	return b.String()
}
