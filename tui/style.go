package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleInput = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	stylePlain = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("40"))

	styleWarn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindPlain lineKind = iota
	kindOK
	kindWarn
	kindError
	kindDialogue
)

// classifyLine styles inspector output by its leading phrase. The CLI writes
// plain text; color is the TUI's concern.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "error:"):
		return kindError
	case strings.HasPrefix(trimmed, "warning:"):
		return kindWarn
	case strings.HasPrefix(trimmed, "Unknown "),
		strings.Contains(trimmed, "failed:"),
		strings.HasPrefix(trimmed, "Usage:"):
		return kindError
	case strings.HasPrefix(trimmed, "Stopped "):
		return kindWarn
	case strings.HasPrefix(trimmed, "Matched "),
		strings.HasPrefix(trimmed, "Saved "),
		strings.HasPrefix(trimmed, "Exported "),
		trimmed == "No issues.":
		return kindOK
	case strings.Contains(trimmed, ": \""):
		return kindDialogue
	default:
		return kindPlain
	}
}

func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindOK:
		return styleOK.Render(line)
	case kindWarn:
		return styleWarn.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	default:
		return stylePlain.Render(line)
	}
}
