// Package cli provides the line-oriented project inspector: terminal I/O,
// output formatting, and command dispatch over a loaded project.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/advcore/codec"
	"github.com/nathoo/advcore/graph"
	"github.com/nathoo/advcore/match"
	"github.com/nathoo/advcore/project"
	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/types"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// CLI handles terminal interaction with the author.
type CLI struct {
	Project  *project.Project
	Registry *registry.Registry
	Store    *codec.Store
	In       io.Reader
	Out      io.Writer
	NoColor  bool // plain output, for piping or embedding

	// overrides holds session variable values layered over the initial
	// state, for what-if resolve and trace runs.
	overrides map[string]types.Value
}

func (c *CLI) render(style lipgloss.Style, text string) string {
	if c.NoColor {
		return text
	}
	return style.Render(text)
}

// New creates a CLI over the given project.
func New(p *project.Project, reg *registry.Registry, store *codec.Store) *CLI {
	return &CLI{
		Project:   p,
		Registry:  reg,
		Store:     store,
		In:        os.Stdin,
		Out:       os.Stdout,
		overrides: map[string]types.Value{},
	}
}

// Reader returns the session state: overrides first, then initial values.
func (c *CLI) Reader() types.VariableReader {
	initial := c.Project.InitialState()
	return func(id string) (types.Value, bool) {
		if v, ok := c.overrides[id]; ok {
			return v, true
		}
		return initial(id)
	}
}

// Run loops: prompt, input, dispatch, output. Returns on /quit or EOF.
func (c *CLI) Run() {
	c.printLine(fmt.Sprintf("%d variables, %d graphs, %d dialogue graphs, %d rules.",
		len(c.Project.Variables), len(c.Project.Graphs),
		len(c.Project.DialogueGraphs), len(c.Project.Rules)))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.Dispatch(input) {
			return
		}
	}
}

// Dispatch runs one command line. Returns true on quit.
func (c *CLI) Dispatch(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		c.cmdHelp()
	case "/validate":
		c.cmdValidate()
	case "/vars":
		c.cmdVars()
	case "/graphs":
		c.cmdGraphs()
	case "/rules":
		c.cmdRules()
	case "/find":
		c.cmdFind(strings.Join(args, " "))
	case "/save":
		c.cmdSave()
	case "/export":
		c.cmdExport(args)
	case "set":
		c.cmdSet(args)
	case "resolve":
		c.cmdResolve(args)
	case "trace":
		c.cmdTrace(args)
	default:
		c.printLine(c.render(errStyle, fmt.Sprintf("Unknown command: %s. Type /help.", cmd)))
	}
	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Project:",
		"  /validate                — Check the whole project, list every issue",
		"  /vars                    — List global variables",
		"  /graphs                  — List logic and dialogue graphs",
		"  /rules                   — List interaction rules",
		"  /find <text>             — Search ids, names, commands, dialogue",
		"  /save                    — Write the project directory",
		"  /export <file>           — Write the compressed runtime bundle",
		"",
		"Session:",
		"  set <var> <value>        — Override a variable for this session",
		"  resolve <scene> <verb> [primary] [secondary] [hotspot]",
		"                           — Run the interaction matcher",
		"  trace <graph> [entry]    — Walk a graph against session state",
		"  /quit                    — Exit",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdValidate() {
	issues := c.Project.Validate(c.Registry)
	if len(issues) == 0 {
		c.printLine(c.render(okStyle, "No issues."))
		return
	}
	for _, issue := range issues {
		line := issue.String()
		if issue.Severity == types.SeverityError {
			line = c.render(errStyle, line)
		} else {
			line = c.render(warnStyle, line)
		}
		c.printLine(line)
	}
	c.printLine(fmt.Sprintf("%d issue(s).", len(issues)))
}

func (c *CLI) cmdVars() {
	for _, v := range c.Project.Variables {
		line := fmt.Sprintf("%s  %s = %s", v.ID, v.Type, v.InitialValue)
		if ov, ok := c.overrides[v.ID]; ok {
			line += fmt.Sprintf("  (session: %s)", ov)
		}
		c.printLine(line)
	}
	if len(c.Project.Variables) == 0 {
		c.printLine("No variables.")
	}
}

func (c *CLI) cmdGraphs() {
	for _, g := range c.Project.Graphs {
		c.printLine(fmt.Sprintf("%s  %q  %d node(s)", g.ID, g.Name, len(g.Nodes)))
	}
	for _, g := range c.Project.DialogueGraphs {
		c.printLine(fmt.Sprintf("%s  %q  %d node(s)  [dialogue]", g.ID, g.Name, len(g.Nodes)))
	}
	if len(c.Project.Graphs)+len(c.Project.DialogueGraphs) == 0 {
		c.printLine("No graphs.")
	}
}

func (c *CLI) cmdRules() {
	rules := append([]types.InteractionRule(nil), c.Project.Rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
	for _, r := range rules {
		c.printLine(fmt.Sprintf("%s  [%d] %s/%s -> %s", r.ID, r.Priority, r.SceneID, r.VerbID, r.LogicGraphID))
	}
	if len(rules) == 0 {
		c.printLine("No rules.")
	}
}

func (c *CLI) cmdFind(query string) {
	if query == "" {
		c.printLine("Usage: /find <text>")
		return
	}
	hits := c.Project.Search(query)
	for _, h := range hits {
		switch {
		case h.VariableID != "":
			c.printLine(fmt.Sprintf("variable %s  %s: %s", h.VariableID, h.Field, h.Snippet))
		case h.NodeID != "":
			c.printLine(fmt.Sprintf("graph %s node %s  %s: %s", h.GraphID, h.NodeID, h.Field, h.Snippet))
		case h.GraphID != "":
			c.printLine(fmt.Sprintf("graph %s  %s: %s", h.GraphID, h.Field, h.Snippet))
		case h.RuleID != "":
			c.printLine(fmt.Sprintf("rule %s  %s: %s", h.RuleID, h.Field, h.Snippet))
		}
	}
	c.printLine(fmt.Sprintf("%d hit(s).", len(hits)))
}

func (c *CLI) cmdSave() {
	if c.Store == nil {
		c.printLine(c.render(errStyle, "No project directory (imported from script?)."))
		return
	}
	if err := c.Store.Save(c.Project); err != nil {
		c.printLine(c.render(errStyle, fmt.Sprintf("Save failed: %v", err)))
		return
	}
	c.printLine(c.render(okStyle, fmt.Sprintf("Saved to %s.", c.Store.Dir)))
}

func (c *CLI) cmdExport(args []string) {
	if len(args) != 1 {
		c.printLine("Usage: /export <file>")
		return
	}
	data, err := codec.ExportBundle(c.Project)
	if err != nil {
		c.printLine(c.render(errStyle, fmt.Sprintf("Export failed: %v", err)))
		return
	}
	if err := codec.WriteFileAtomic(args[0], data); err != nil {
		c.printLine(c.render(errStyle, fmt.Sprintf("Export failed: %v", err)))
		return
	}
	c.printLine(c.render(okStyle, fmt.Sprintf("Exported %d bytes to %s.", len(data), args[0])))
}

func (c *CLI) cmdSet(args []string) {
	if len(args) != 2 {
		c.printLine("Usage: set <var> <value>")
		return
	}
	id := args[0]
	v, ok := c.Project.Variable(id)
	if !ok {
		c.printLine(c.render(errStyle, fmt.Sprintf("Unknown variable %q.", id)))
		return
	}
	value, err := ParseValue(v.Type, args[1])
	if err != nil {
		c.printLine(c.render(errStyle, err.Error()))
		return
	}
	c.overrides[id] = value
	c.printLine(fmt.Sprintf("%s = %s", id, value))
}

func (c *CLI) cmdResolve(args []string) {
	if len(args) < 2 {
		c.printLine("Usage: resolve <scene> <verb> [primary] [secondary] [hotspot]")
		return
	}
	action := types.PlayerAction{SceneID: args[0], VerbID: args[1]}
	if len(args) > 2 {
		action.PrimaryItemID = args[2]
	}
	if len(args) > 3 {
		action.SecondaryItemID = args[3]
	}
	if len(args) > 4 {
		action.TargetHotspotID = args[4]
	}

	rule, reason := match.Resolve(c.Project.Rules, action, c.Reader())
	if rule == nil {
		c.printLine(fmt.Sprintf("No match (%s).", reason))
		return
	}
	c.printLine(c.render(okStyle, fmt.Sprintf("Matched %s (%s).", rule.ID, reason)))
	if rule.LogicGraphID != "" {
		c.printLine(fmt.Sprintf("  graph: %s  entry: %s", rule.LogicGraphID, rule.InitialNodeID))
	}
	if rule.FallbackDialogueID != "" {
		c.printLine(fmt.Sprintf("  fallback dialogue: %s", rule.FallbackDialogueID))
	}
}

func (c *CLI) cmdTrace(args []string) {
	if len(args) < 1 {
		c.printLine("Usage: trace <graph> [entry]")
		return
	}
	g, ok := c.Project.Graph(args[0])
	if !ok {
		c.printLine(c.render(errStyle, fmt.Sprintf("Unknown graph %q.", args[0])))
		return
	}

	var entryID string
	if len(args) > 1 {
		entryID = args[1]
	} else {
		entries := graph.EntryNodes(g)
		if len(entries) == 0 {
			c.printLine(c.render(errStyle, "Graph has no entry node; pass one explicitly."))
			return
		}
		entryID = entries[0].ID
	}

	result := graph.Traverse(g, entryID, c.Reader(), graph.TraverseOptions{})
	for _, visit := range result.Visits {
		switch visit.Node.Kind {
		case types.KindAction:
			c.printLine(fmt.Sprintf("%s  %s %s", visit.Node.ID, visit.Node.Command, formatParams(visit.Node.Params)))
		case types.KindCondition:
			branch := "failure"
			if visit.ConditionMet {
				branch = "success"
			}
			c.printLine(fmt.Sprintf("%s  %s %s %s -> %s", visit.Node.ID,
				visit.Node.VariableID, visit.Node.Operator, visit.Node.RequiredValue, branch))
		case types.KindDialogue:
			c.printLine(fmt.Sprintf("%s  %s: %q", visit.Node.ID, visit.Node.CharacterID, visit.Node.Text))
		}
	}
	switch {
	case result.AwaitingChoice:
		c.printLine(c.render(warnStyle, "Stopped at player choice."))
	case result.Truncated:
		c.printLine(c.render(warnStyle, "Stopped at step limit (cycle?)."))
	}
	c.printLine(fmt.Sprintf("%d node(s) visited.", len(result.Visits)))
}

// ParseValue parses a literal for the declared type.
func ParseValue(t types.ValueType, s string) (types.Value, error) {
	switch t {
	case types.TypeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return types.Value{}, fmt.Errorf("want true or false, got %q", s)
		}
		return types.BoolValue(b), nil
	case types.TypeInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("want an integer, got %q", s)
		}
		return types.IntValue(n), nil
	case types.TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("want a number, got %q", s)
		}
		return types.FloatValue(f), nil
	case types.TypeString:
		return types.StringValue(s), nil
	case types.TypeEnum:
		return types.EnumValue(s), nil
	}
	return types.Value{}, fmt.Errorf("unknown type %q", t)
}

func formatParams(params []types.Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, p.Value))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
