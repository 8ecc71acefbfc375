package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tame/pkg/scan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PackageSelectModel - Interactive selection of packages to fix
// =============================================================================

// PackageSelectModel is the bubbletea model for choosing which packages fix rewrites.
// Every package starts checked.
type PackageSelectModel struct {
	Packages  []scan.Package
	Checked   []bool
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

// NewPackageSelectModel creates a selection model over the given packages.
func NewPackageSelectModel(pkgs []scan.Package) PackageSelectModel {
	checked := make([]bool, len(pkgs))
	for i := range checked {
		checked[i] = true
	}
	return PackageSelectModel{
		Packages: pkgs,
		Checked:  checked,
		Height:   15,
	}
}

// Selected returns the directories of the checked packages once confirmed.
func (m PackageSelectModel) Selected() map[string]bool {
	if !m.Confirmed {
		return nil
	}
	out := make(map[string]bool)
	for i, p := range m.Packages {
		if m.Checked[i] {
			out[p.Dir] = true
		}
	}
	return out
}

func (m PackageSelectModel) Init() tea.Cmd {
	return nil
}

func (m PackageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Packages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Checked) > 0 {
				m.Checked = toggled(m.Checked, m.Cursor)
			}
		case "a":
			all := true
			for _, c := range m.Checked {
				all = all && c
			}
			checked := make([]bool, len(m.Checked))
			for i := range checked {
				checked[i] = !all
			}
			m.Checked = checked
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// toggled returns a copy of checked with index i flipped, keeping models immutable.
func toggled(checked []bool, i int) []bool {
	out := append([]bool(nil), checked...)
	out[i] = !out[i]
	return out
}

func (m PackageSelectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select packages to fix"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ fix  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Packages))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Packages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Checked[i] {
			box = "[x]"
		}

		names := make([]string, len(p.Findings))
		for j, f := range p.Findings {
			names[j] = f.Name
		}
		rows = append(rows, []string{cursor + box, p.Dir, fmt.Sprint(len(p.Findings)), strings.Join(names, ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Findings", "Dependencies").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Packages) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !m.Checked[idx]:
				return base.Foreground(colorDim)
			case col == 3:
				return base.Foreground(colorRed)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	n := 0
	for _, c := range m.Checked {
		if c {
			n++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", n, len(m.Packages))))
	b.WriteString("\n")

	return b.String()
}
