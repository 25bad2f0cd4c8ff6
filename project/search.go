package project

import (
	"strings"

	"github.com/nathoo/advcore/types"
)

// Hit is one search result. Exactly one of VariableID, GraphID, or RuleID
// is set; NodeID narrows a graph hit to a single node.
type Hit struct {
	VariableID string
	GraphID    string
	NodeID     string
	RuleID     string
	Field      string
	Snippet    string
}

// Search scans ids, names, commands, variable references, and dialogue text
// for a case-insensitive substring match. An empty query matches nothing.
func (p *Project) Search(query string) []Hit {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	match := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), q)
	}

	var hits []Hit
	for _, v := range p.Variables {
		switch {
		case match(v.ID):
			hits = append(hits, Hit{VariableID: v.ID, Field: "id", Snippet: v.ID})
		case match(v.Name):
			hits = append(hits, Hit{VariableID: v.ID, Field: "name", Snippet: v.Name})
		case match(v.Category):
			hits = append(hits, Hit{VariableID: v.ID, Field: "category", Snippet: v.Category})
		}
	}
	for _, g := range p.AllGraphs() {
		if match(g.ID) {
			hits = append(hits, Hit{GraphID: g.ID, Field: "id", Snippet: g.ID})
		} else if match(g.Name) {
			hits = append(hits, Hit{GraphID: g.ID, Field: "name", Snippet: g.Name})
		}
		for _, n := range g.Nodes {
			switch {
			case match(n.ID):
				hits = append(hits, Hit{GraphID: g.ID, NodeID: n.ID, Field: "id", Snippet: n.ID})
			case n.Kind == types.KindAction && match(n.Command):
				hits = append(hits, Hit{GraphID: g.ID, NodeID: n.ID, Field: "command", Snippet: n.Command})
			case n.Kind == types.KindCondition && match(n.VariableID):
				hits = append(hits, Hit{GraphID: g.ID, NodeID: n.ID, Field: "variable_id", Snippet: n.VariableID})
			case n.Kind == types.KindDialogue && match(n.Text):
				hits = append(hits, Hit{GraphID: g.ID, NodeID: n.ID, Field: "text", Snippet: n.Text})
			}
		}
	}
	for _, r := range p.Rules {
		switch {
		case match(r.ID):
			hits = append(hits, Hit{RuleID: r.ID, Field: "id", Snippet: r.ID})
		case match(r.SceneID):
			hits = append(hits, Hit{RuleID: r.ID, Field: "scene", Snippet: r.SceneID})
		case match(r.VerbID):
			hits = append(hits, Hit{RuleID: r.ID, Field: "verb", Snippet: r.VerbID})
		case match(r.PrimaryItemID):
			hits = append(hits, Hit{RuleID: r.ID, Field: "primary_item_id", Snippet: r.PrimaryItemID})
		}
	}
	return hits
}
