package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/artifactscout/pkg/version"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// VersionListModel - Interactive version selection
// =============================================================================

// VersionListModel is the bubbletea model for picking one version.
// Versions are shown newest first; the cursor starts on the newest.
type VersionListModel struct {
	Module   string
	Versions []string // newest first
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewVersionListModel creates a list over vs, which must be sorted ascending.
func NewVersionListModel(module string, vs []version.Version) VersionListModel {
	names := version.Strings(vs)
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return VersionListModel{
		Module:   module,
		Versions: names,
		Height:   15,
	}
}

func (m VersionListModel) Init() tea.Cmd {
	return nil
}

func (m VersionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Versions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Versions) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Versions[m.Cursor]
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

func (m VersionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Version"))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(m.Module))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Versions))
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + m.Versions[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + m.Versions[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Versions))))
	return b.String()
}
