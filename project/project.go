// Package project owns the top-level collections of an adventure project:
// global variables, logic graphs, dialogue graphs, and interaction rules.
// A Project is passed explicitly to graph, match, and codec operations so
// tests can construct isolated instances; there is no ambient state.
package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/advcore/types"
)

// Project holds all authored data. Collections keep insertion order for
// stable serialization and diffing. Nodes are exclusively owned by their
// graph; everything else cross-references by id without ownership.
type Project struct {
	Variables      []types.GlobalVariable
	Graphs         []*types.LogicGraph
	DialogueGraphs []*types.LogicGraph
	Rules          []types.InteractionRule
}

// New returns an empty project.
func New() *Project {
	return &Project{}
}

// NewID mints a unique id with a collection prefix, e.g. "var_" or "rule_".
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// Variable looks up a global variable by id.
func (p *Project) Variable(id string) (*types.GlobalVariable, bool) {
	for i := range p.Variables {
		if p.Variables[i].ID == id {
			return &p.Variables[i], true
		}
	}
	return nil, false
}

// AddVariable appends a variable. Ids are unique across the collection.
func (p *Project) AddVariable(v types.GlobalVariable) error {
	if _, ok := p.Variable(v.ID); ok {
		return fmt.Errorf("variable %q already exists", v.ID)
	}
	p.Variables = append(p.Variables, v)
	return nil
}

// DeleteVariable removes a variable and returns issues describing every
// reference that is now dangling (condition nodes, rule predicates). The
// references themselves are left in place for the author to fix; they are
// flagged, never silently scrubbed.
func (p *Project) DeleteVariable(id string) []types.Issue {
	idx := -1
	for i := range p.Variables {
		if p.Variables[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	p.Variables = append(p.Variables[:idx], p.Variables[idx+1:]...)

	var issues []types.Issue
	for _, g := range p.AllGraphs() {
		for _, n := range g.Nodes {
			if n.Kind == types.KindCondition && n.VariableID == id {
				issues = append(issues, types.Issue{
					Severity: types.SeverityWarning, Code: "dangling_ref",
					GraphID: g.ID, NodeID: n.ID, Field: "variable_id",
					Message: fmt.Sprintf("condition still references deleted variable %q", id),
				})
			}
		}
	}
	for _, r := range p.Rules {
		for _, c := range r.Conditions {
			if c.VariableID == id {
				issues = append(issues, types.Issue{
					Severity: types.SeverityWarning, Code: "dangling_ref",
					RuleID: r.ID, Field: "conditions",
					Message: fmt.Sprintf("rule condition still references deleted variable %q", id),
				})
			}
		}
	}
	return issues
}

// Graph looks up a logic graph by id, searching logic graphs first, then
// dialogue graphs.
func (p *Project) Graph(id string) (*types.LogicGraph, bool) {
	for _, g := range p.Graphs {
		if g.ID == id {
			return g, true
		}
	}
	for _, g := range p.DialogueGraphs {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// AllGraphs returns logic graphs followed by dialogue graphs.
func (p *Project) AllGraphs() []*types.LogicGraph {
	all := make([]*types.LogicGraph, 0, len(p.Graphs)+len(p.DialogueGraphs))
	all = append(all, p.Graphs...)
	all = append(all, p.DialogueGraphs...)
	return all
}

// AddGraph appends a logic graph. Graph ids are project-scoped.
func (p *Project) AddGraph(g *types.LogicGraph) error {
	if _, ok := p.Graph(g.ID); ok {
		return fmt.Errorf("graph %q already exists", g.ID)
	}
	p.Graphs = append(p.Graphs, g)
	return nil
}

// AddDialogueGraph appends a dialogue graph. Dialogue graphs share the
// LogicGraph shape but persist as their own collection.
func (p *Project) AddDialogueGraph(g *types.LogicGraph) error {
	if _, ok := p.Graph(g.ID); ok {
		return fmt.Errorf("graph %q already exists", g.ID)
	}
	p.DialogueGraphs = append(p.DialogueGraphs, g)
	return nil
}

// DeleteGraph removes a graph (and with it all of its nodes, which it
// exclusively owns) and returns issues for rules that still reference it.
func (p *Project) DeleteGraph(id string) []types.Issue {
	removed := false
	for i, g := range p.Graphs {
		if g.ID == id {
			p.Graphs = append(p.Graphs[:i], p.Graphs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		for i, g := range p.DialogueGraphs {
			if g.ID == id {
				p.DialogueGraphs = append(p.DialogueGraphs[:i], p.DialogueGraphs[i+1:]...)
				removed = true
				break
			}
		}
	}
	if !removed {
		return nil
	}

	var issues []types.Issue
	for _, r := range p.Rules {
		if r.LogicGraphID == id {
			issues = append(issues, types.Issue{
				Severity: types.SeverityWarning, Code: "dangling_ref",
				RuleID: r.ID, Field: "logic_graph_id",
				Message: fmt.Sprintf("rule still references deleted graph %q", id),
			})
		}
	}
	return issues
}

// Rule looks up an interaction rule by id.
func (p *Project) Rule(id string) (*types.InteractionRule, bool) {
	for i := range p.Rules {
		if p.Rules[i].ID == id {
			return &p.Rules[i], true
		}
	}
	return nil, false
}

// AddRule appends an interaction rule.
func (p *Project) AddRule(r types.InteractionRule) error {
	if _, ok := p.Rule(r.ID); ok {
		return fmt.Errorf("rule %q already exists", r.ID)
	}
	p.Rules = append(p.Rules, r)
	return nil
}

// DeleteRule removes a rule by id. Returns false if absent.
func (p *Project) DeleteRule(id string) bool {
	for i := range p.Rules {
		if p.Rules[i].ID == id {
			p.Rules = append(p.Rules[:i], p.Rules[i+1:]...)
			return true
		}
	}
	return false
}

// VariableTypes returns the declared type of every variable, keyed by id.
func (p *Project) VariableTypes() map[string]types.ValueType {
	m := make(map[string]types.ValueType, len(p.Variables))
	for _, v := range p.Variables {
		m[v.ID] = v.Type
	}
	return m
}

// InitialState returns a reader over the variables' initial values: the
// state snapshot an author previews against before any play has happened.
func (p *Project) InitialState() types.VariableReader {
	values := make(map[string]types.Value, len(p.Variables))
	for _, v := range p.Variables {
		values[v.ID] = v.InitialValue
	}
	return func(id string) (types.Value, bool) {
		v, ok := values[id]
		return v, ok
	}
}
