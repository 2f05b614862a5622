package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shaftworks/shaftdraw/pkg/shaft"
	"github.com/shaftworks/shaftdraw/pkg/units"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listAutoStyle     = lipgloss.NewStyle().Foreground(colorGray)
)

// componentModel is the bubbletea model for interactive component browsing.
// The list shows every resolved component in axial order; the detail pane
// below follows the cursor.
type componentModel struct {
	Title    string
	Resolved []shaft.Resolved
	Window   shaft.Window
	Unit     units.Unit

	Cursor int
	Height int
	Offset int
}

// newComponentModel creates a component browser over the resolved list.
func newComponentModel(title string, resolved []shaft.Resolved, w shaft.Window, unit units.Unit) componentModel {
	return componentModel{
		Title:    title,
		Resolved: resolved,
		Window:   w,
		Unit:     unit,
		Height:   15,
	}
}

func (m componentModel) Init() tea.Cmd {
	return nil
}

func (m componentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Resolved)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m componentModel) View() string {
	var b strings.Builder

	title := m.Title
	if title == "" {
		title = "Resolved Components"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("window %s .. %s   ↑/↓ navigate  q quit",
		units.Format(m.Window.Start, m.Unit), units.Format(m.Window.End, m.Unit))))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Resolved) {
		end = len(m.Resolved)
	}

	for i := m.Offset; i < end; i++ {
		rc := m.Resolved[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		} else if rc.IsAuto() {
			style = listAutoStyle
		}

		line := fmt.Sprintf("%-7s %-24s %10s .. %-10s",
			rc.Kind, rc.ID,
			units.Format(rc.Start, m.Unit), units.Format(rc.End(), m.Unit))
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")
	}

	if len(m.Resolved) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detailView(m.Resolved[m.Cursor]))
	}
	return b.String()
}

// detailView renders the detail pane for the component under the cursor.
func (m componentModel) detailView(rc shaft.Resolved) string {
	var rows []string

	add := func(key, value string) {
		rows = append(rows, listDimStyle.Render(fmt.Sprintf("%-10s", key))+StyleValue.Render(value))
	}

	add("source", rc.Source.String())
	add("length", units.Format(rc.Length, m.Unit))
	add("diameter", diameterLabel(rc.Segment, m.Unit))
	if rc.Kind == shaft.KindThread {
		add("pitch", units.Format(rc.Pitch, m.Unit))
		if rc.ExcludeFromOAL {
			add("oal", "excluded")
		}
	}
	if om := m.Window.ToMeasure(rc.End()); om > 0 && rc.End() <= m.Window.End {
		add("official", units.Format(om, m.Unit))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
