package project

import (
	"fmt"

	"github.com/nathoo/advcore/graph"
	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/types"
)

// Validate checks the whole project against the command registry and
// collects every issue found. Validation never stops at the first problem;
// an author fixing a broken save wants the full list.
func (p *Project) Validate(reg *registry.Registry) []types.Issue {
	var issues []types.Issue

	varTypes := p.VariableTypes()

	seenVars := make(map[string]bool, len(p.Variables))
	for _, v := range p.Variables {
		if seenVars[v.ID] {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "duplicate_variable",
				Field:   "id",
				Message: fmt.Sprintf("duplicate variable id %q", v.ID),
			})
		}
		seenVars[v.ID] = true
		if !types.ValidValueType(v.Type) {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "invalid_type",
				Field:   "type",
				Message: fmt.Sprintf("variable %q has unknown type %q", v.ID, v.Type),
			})
			continue
		}
		if v.InitialValue.Type != v.Type {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "type_mismatch",
				Field:   "initial_value",
				Message: fmt.Sprintf("variable %q declared %s but initial value is %s", v.ID, v.Type, v.InitialValue.Type),
			})
		}
	}

	seenGraphs := make(map[string]bool)
	for _, g := range p.AllGraphs() {
		if seenGraphs[g.ID] {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "duplicate_graph",
				GraphID: g.ID,
				Message: fmt.Sprintf("duplicate graph id %q", g.ID),
			})
		}
		seenGraphs[g.ID] = true
		issues = append(issues, graph.ValidateGraph(g, reg, varTypes)...)
	}

	seenRules := make(map[string]bool, len(p.Rules))
	for _, r := range p.Rules {
		if seenRules[r.ID] {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "duplicate_rule",
				RuleID:  r.ID,
				Message: fmt.Sprintf("duplicate rule id %q", r.ID),
			})
		}
		seenRules[r.ID] = true
		issues = append(issues, p.validateRule(r, varTypes)...)
	}

	return issues
}

func (p *Project) validateRule(r types.InteractionRule, varTypes map[string]types.ValueType) []types.Issue {
	var issues []types.Issue

	if r.SceneID == "" {
		issues = append(issues, types.Issue{
			Severity: types.SeverityError, Code: "missing_scene",
			RuleID: r.ID, Field: "scene",
			Message: "rule has no scene; use \"*\" to match any scene",
		})
	}
	if r.VerbID == "" {
		issues = append(issues, types.Issue{
			Severity: types.SeverityError, Code: "missing_verb",
			RuleID: r.ID, Field: "verb",
			Message: "rule has no verb",
		})
	}

	if r.LogicGraphID != "" {
		g, ok := p.Graph(r.LogicGraphID)
		if !ok {
			issues = append(issues, types.Issue{
				Severity: types.SeverityWarning, Code: "dangling_ref",
				RuleID: r.ID, Field: "logic_graph_id",
				Message: fmt.Sprintf("rule references unknown graph %q", r.LogicGraphID),
			})
		} else if r.InitialNodeID != "" {
			if _, ok := graph.FindNode(g, r.InitialNodeID); !ok {
				issues = append(issues, types.Issue{
					Severity: types.SeverityWarning, Code: "dangling_ref",
					RuleID: r.ID, Field: "initial_node_id",
					Message: fmt.Sprintf("rule entry node %q not in graph %q", r.InitialNodeID, r.LogicGraphID),
				})
			}
		}
	} else if r.InitialNodeID != "" {
		issues = append(issues, types.Issue{
			Severity: types.SeverityWarning, Code: "dangling_ref",
			RuleID: r.ID, Field: "initial_node_id",
			Message: "rule sets an entry node but no graph",
		})
	}

	for _, c := range r.Conditions {
		if c.VariableID == "" {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "missing_variable",
				RuleID: r.ID, Field: "conditions",
				Message: "rule condition has no variable",
			})
			continue
		}
		declared, known := varTypes[c.VariableID]
		if !known {
			issues = append(issues, types.Issue{
				Severity: types.SeverityWarning, Code: "dangling_ref",
				RuleID: r.ID, Field: "conditions",
				Message: fmt.Sprintf("rule condition references unknown variable %q", c.VariableID),
			})
		}
		if !types.ValidOperator(c.Operator) {
			issues = append(issues, types.Issue{
				Severity: types.SeverityError, Code: "unknown_operator",
				RuleID: r.ID, Field: "conditions",
				Message: fmt.Sprintf("unknown operator %q", c.Operator),
			})
			continue
		}
		if c.Operator.Ordering() {
			if !c.Value.IsNumeric() || (known && declared != types.TypeInt && declared != types.TypeFloat) {
				issues = append(issues, types.Issue{
					Severity: types.SeverityError, Code: "operator_type",
					RuleID: r.ID, Field: "conditions",
					Message: fmt.Sprintf("operator %q requires numeric operands", c.Operator),
				})
			}
		}
	}

	return issues
}
