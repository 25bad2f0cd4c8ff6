package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line with the
// project location on the left and collection/issue tallies on the right.
func (m Model) renderStatusBar() string {
	dir := "(unsaved)"
	if m.cli.Store != nil {
		dir = m.cli.Store.Dir
	}
	left := fmt.Sprintf(" %s", dir)

	p := m.cli.Project
	right := fmt.Sprintf("vars:%d graphs:%d rules:%d | %d err %d warn ",
		len(p.Variables), len(p.Graphs)+len(p.DialogueGraphs), len(p.Rules),
		m.errCount, m.warnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
