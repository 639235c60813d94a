package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zerobrew/zb-migrate/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// selectSteps runs the interactive package picker over a plan's steps.
// It returns the confirmed subset in the original (dependency) order,
// or aborted=true if the user quit without confirming.
func selectSteps(steps []graph.Package) (selected []graph.Package, aborted bool, err error) {
	model := newStepListModel(steps)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := final.(stepListModel)
	if !ok || !m.Confirmed {
		return nil, true, nil
	}
	for i, p := range steps {
		if m.Include[i] {
			selected = append(selected, p)
		}
	}
	return selected, false, nil
}

// =============================================================================
// stepListModel - Interactive migration step selection
// =============================================================================

// stepListModel is the bubbletea model for choosing which planned
// packages actually get migrated.
type stepListModel struct {
	Steps     []graph.Package
	Include   []bool
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

func newStepListModel(steps []graph.Package) stepListModel {
	include := make([]bool, len(steps))
	for i := range include {
		include[i] = true
	}
	return stepListModel{
		Steps:   steps,
		Include: include,
		Height:  15,
	}
}

func (m stepListModel) Init() tea.Cmd {
	return nil
}

func (m stepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Steps)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "y", " ":
			m.Include[m.Cursor] = !m.Include[m.Cursor]
		case "n":
			m.Include[m.Cursor] = false
		case "a":
			for i := range m.Include {
				m.Include[i] = true
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m stepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Packages to Migrate"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  y/space toggle  n drop  a all  ⏎ confirm  q abort"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Steps) {
		end = len(m.Steps)
	}

	for i := m.Offset; i < end; i++ {
		p := m.Steps[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := StyleDim.Render("○")
		if m.Include[i] {
			mark = StyleSuccess.Render("●")
		}

		line := fmt.Sprintf("%s%s %-28s %s", cursor, mark, p.Name, listDimStyle.Render(p.Version))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.Include[i] {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	count := 0
	for _, in := range m.Include {
		if in {
			count++
		}
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected  [%d/%d]",
		count, len(m.Steps), m.Cursor+1, len(m.Steps))))

	return b.String()
}
