package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/advcore/cli"
	"github.com/nathoo/advcore/codec"
	"github.com/nathoo/advcore/project"
	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/types"
)

// rawLine stores an unstyled output line with its classification, so lines
// can be re-wrapped and re-styled on terminal resize.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // echoed command line
}

// Model is the Bubble Tea model for the project inspector. Commands are
// executed by the embedded CLI dispatcher with its output captured, so the
// two front ends cannot drift apart.
type Model struct {
	cli *cli.CLI
	buf *bytes.Buffer

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	errCount  int
	warnCount int

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates an inspector model over the given project.
func New(p *project.Project, reg *registry.Registry, store *codec.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	m := Model{
		cli:     cli.New(p, reg, store),
		buf:     &bytes.Buffer{},
		input:   ti,
		history: NewHistory(100),
	}
	m.cli.NoColor = true
	m.cli.Out = m.buf
	m.refreshCounts()
	return m
}

// Run starts the Bubble Tea program.
func Run(p *project.Project, reg *registry.Registry, store *codec.Store) error {
	prog := tea.NewProgram(New(p, reg, store), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}

// Init shows the project summary and the initial validation state.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resize, and command output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
			m = m.runCommand("/validate")
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted command line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	if input == "/quit" || input == "/exit" {
		m.quitting = true
		return m, tea.Quit
	}

	m = m.runCommand(input)
	return m, nil
}

// runCommand executes one line through the CLI dispatcher and appends its
// captured output to the narrative.
func (m Model) runCommand(input string) Model {
	m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})

	m.buf.Reset()
	m.cli.Dispatch(input)

	out := strings.TrimRight(m.buf.String(), "\n")
	if out != "" {
		for _, line := range strings.Split(out, "\n") {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
		}
	}
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshCounts()
	m.refreshViewport()
	return m
}

// refreshCounts recomputes the validation tallies shown in the status bar.
func (m *Model) refreshCounts() {
	m.errCount, m.warnCount = 0, 0
	for _, issue := range m.cli.Project.Validate(m.cli.Registry) {
		if issue.Severity == types.SeverityError {
			m.errCount++
		} else {
			m.warnCount++
		}
	}
}

// refreshViewport re-wraps and re-styles all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := wordWrap(rl.text, width)
		if rl.isInput {
			styled = append(styled, styleInput.Render(wrapped))
		} else {
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text at word boundaries to fit within width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			result.WriteString(word)
			lineLen = wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		default:
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}
	return result.String()
}

// View renders viewport + status bar + input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap disables Up/Down in the viewport; those navigate history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
