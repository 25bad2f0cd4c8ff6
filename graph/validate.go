package graph

import (
	"fmt"

	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/types"
)

// ValidateNode checks one node against the command registry and the declared
// variable types. It returns every finding without stopping at the first:
// missing required parameters, type mismatches, unknown commands or
// operators, dangling variable references. Pure, no side effects.
//
// varTypes maps variable id to declared type; pass nil to skip reference
// checks (e.g. when validating a node in isolation).
func ValidateNode(n *types.LogicNode, reg *registry.Registry, varTypes map[string]types.ValueType) []types.Issue {
	var issues []types.Issue
	add := func(sev types.Severity, code, field, msg string) {
		issues = append(issues, types.Issue{
			Severity: sev, Code: code, NodeID: n.ID, Field: field, Message: msg,
		})
	}

	switch n.Kind {
	case types.KindAction:
		issues = append(issues, validateActionNode(n, reg)...)

	case types.KindCondition:
		if n.VariableID == "" {
			add(types.SeverityError, "missing_variable", "variable_id",
				"condition node has no variable reference")
		} else if varTypes != nil {
			if _, ok := varTypes[n.VariableID]; !ok {
				add(types.SeverityWarning, "dangling_ref", "variable_id",
					fmt.Sprintf("condition references unknown variable %q", n.VariableID))
			}
		}
		if !types.ValidOperator(n.Operator) {
			add(types.SeverityError, "unknown_operator", "operator",
				fmt.Sprintf("unknown operator %q", n.Operator))
		} else if n.Operator.Ordering() {
			if !n.RequiredValue.IsNumeric() {
				add(types.SeverityError, "operator_type", "required_value",
					fmt.Sprintf("operator %s requires a numeric value, got %s", n.Operator, n.RequiredValue.Type))
			}
			if varTypes != nil {
				if vt, ok := varTypes[n.VariableID]; ok && vt != types.TypeInt && vt != types.TypeFloat {
					add(types.SeverityError, "operator_type", "operator",
						fmt.Sprintf("operator %s is not legal on %s variable %q", n.Operator, vt, n.VariableID))
				}
			}
		}
		if varTypes != nil && !n.Operator.Ordering() {
			if vt, ok := varTypes[n.VariableID]; ok && n.RequiredValue.Type != "" && !compatibleTypes(vt, n.RequiredValue.Type) {
				add(types.SeverityError, "type_mismatch", "required_value",
					fmt.Sprintf("variable %q is %s but required value is %s", n.VariableID, vt, n.RequiredValue.Type))
			}
		}

	case types.KindDialogue:
		// Character and dialogue ids are opaque external identifiers;
		// nothing to check beyond edge shape below.

	default:
		add(types.SeverityError, "unknown_kind", "node_type",
			fmt.Sprintf("unknown node kind %q", n.Kind))
	}

	// Edge shape: labels must belong to the variant, one target per label.
	seen := map[types.EdgeLabel]bool{}
	for _, e := range n.Edges {
		if !LabelAllowed(n.Kind, e.Label) {
			add(types.SeverityError, "invalid_edge", "edges",
				fmt.Sprintf("label %q is not defined for %s nodes", e.Label, n.Kind))
		}
		if seen[e.Label] {
			add(types.SeverityError, "duplicate_edge", "edges",
				fmt.Sprintf("label %q appears more than once", e.Label))
		}
		seen[e.Label] = true
	}

	return issues
}

func validateActionNode(n *types.LogicNode, reg *registry.Registry) []types.Issue {
	var issues []types.Issue
	add := func(sev types.Severity, code, field, msg string) {
		issues = append(issues, types.Issue{
			Severity: sev, Code: code, NodeID: n.ID, Field: field, Message: msg,
		})
	}

	if n.Command == "" {
		add(types.SeverityError, "missing_command", "command", "action node has no command")
		return issues
	}
	if reg == nil {
		return issues
	}

	spec, ok := reg.Command(n.Command)
	if !ok {
		add(types.SeverityError, "unknown_command", "command",
			fmt.Sprintf("unknown command %q", n.Command))
		return issues
	}

	for _, ps := range spec.Params {
		if !ps.Required {
			continue
		}
		if _, ok := ParamValue(n, ps.Name); !ok {
			add(types.SeverityError, "missing_param", ps.Name,
				fmt.Sprintf("command %s requires parameter %q", n.Command, ps.Name))
		}
	}

	for _, p := range n.Params {
		ps, known := spec.Param(p.Name)
		if !known {
			// Unknown keys are preserved on the node but flagged.
			add(types.SeverityWarning, "unknown_param", p.Name,
				fmt.Sprintf("command %s does not define parameter %q", n.Command, p.Name))
			continue
		}
		if !paramTypeOK(ps, p.Value) {
			add(types.SeverityError, "type_mismatch", p.Name,
				fmt.Sprintf("parameter %q of %s expects %s, got %s", p.Name, n.Command, ps.Type, p.Value.Type))
		}
	}

	return issues
}

// paramTypeOK checks a parameter value against its schema. Integers satisfy
// float parameters; enum members may arrive as plain strings but must be in
// the choice list.
func paramTypeOK(ps registry.ParamSpec, v types.Value) bool {
	switch ps.Type {
	case types.TypeFloat:
		return v.IsNumeric()
	case types.TypeEnum:
		if v.Type != types.TypeEnum && v.Type != types.TypeString {
			return false
		}
		for _, c := range ps.Choices {
			if v.Str == c {
				return true
			}
		}
		return false
	default:
		return v.Type == ps.Type
	}
}

// compatibleTypes reports whether a value of type b can be compared for
// equality against a variable declared as a.
func compatibleTypes(a, b types.ValueType) bool {
	numeric := func(t types.ValueType) bool { return t == types.TypeInt || t == types.TypeFloat }
	if numeric(a) && numeric(b) {
		return true
	}
	if (a == types.TypeString || a == types.TypeEnum) && (b == types.TypeString || b == types.TypeEnum) {
		return true
	}
	return a == b
}

// ValidateGraph validates every node plus the graph-level invariants:
// unique node ids, no dangling edge targets, and at least one entry point.
func ValidateGraph(g *types.LogicGraph, reg *registry.Registry, varTypes map[string]types.ValueType) []types.Issue {
	var issues []types.Issue

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "duplicate_node",
				GraphID: g.ID, NodeID: n.ID,
				Message: fmt.Sprintf("duplicate node id %q", n.ID),
			})
		}
		ids[n.ID] = true
	}

	for _, n := range g.Nodes {
		for _, issue := range ValidateNode(n, reg, varTypes) {
			issue.GraphID = g.ID
			issues = append(issues, issue)
		}
		for _, e := range n.Edges {
			if !ids[e.Target] {
				issues = append(issues, types.Issue{
					Severity: types.SeverityError, Code: "dangling_edge",
					GraphID: g.ID, NodeID: n.ID, Field: "edges",
					Message: fmt.Sprintf("edge %q points to missing node %q", e.Label, e.Target),
				})
			}
		}
	}

	if len(g.Nodes) > 0 && len(EntryNodes(g)) == 0 {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning, Code: "no_entry", GraphID: g.ID,
			Message: "graph has no entry node (every node has an incoming edge)",
		})
	}

	return issues
}
