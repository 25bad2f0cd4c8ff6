package project

import (
	"strings"
	"testing"

	"github.com/nathoo/advcore/graph"
	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/types"
)

func boolVar(id string, initial bool) types.GlobalVariable {
	return types.GlobalVariable{ID: id, Type: types.TypeBool, InitialValue: types.BoolValue(initial)}
}

func testProject(t *testing.T) *Project {
	t.Helper()
	p := New()
	if err := p.AddVariable(boolVar("var_door_open", false)); err != nil {
		t.Fatal(err)
	}
	if err := p.AddVariable(types.GlobalVariable{
		ID: "var_gold", Type: types.TypeInt, InitialValue: types.IntValue(25),
	}); err != nil {
		t.Fatal(err)
	}

	g := &types.LogicGraph{ID: "graph_door", Name: "Door"}
	check := graph.NewConditionNode("n_check", "var_door_open", types.OpEQ, types.BoolValue(true))
	if err := graph.AddNode(g, check); err != nil {
		t.Fatal(err)
	}
	if err := p.AddGraph(g); err != nil {
		t.Fatal(err)
	}

	if err := p.AddRule(types.InteractionRule{
		ID: "rule_open_door", SceneID: "cellar", VerbID: "open",
		LogicGraphID: "graph_door", InitialNodeID: "n_check",
		Conditions: []types.RuleCondition{
			{VariableID: "var_door_open", Operator: types.OpEQ, Value: types.BoolValue(false)},
		},
	}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewID(t *testing.T) {
	a, b := NewID("var_"), NewID("var_")
	if !strings.HasPrefix(a, "var_") {
		t.Errorf("NewID = %q, want var_ prefix", a)
	}
	if a == b {
		t.Error("NewID returned the same id twice")
	}
}

func TestAddVariableDuplicate(t *testing.T) {
	p := testProject(t)
	if err := p.AddVariable(boolVar("var_door_open", true)); err == nil {
		t.Fatal("duplicate variable id accepted")
	}
	if v, ok := p.Variable("var_gold"); !ok || v.InitialValue.Int != 25 {
		t.Errorf("Variable(var_gold) = %v, %v", v, ok)
	}
}

func TestDeleteVariableFlagsDanglers(t *testing.T) {
	p := testProject(t)
	issues := p.DeleteVariable("var_door_open")
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2 (node and rule): %v", len(issues), issues)
	}
	for _, is := range issues {
		if is.Code != "dangling_ref" || is.Severity != types.SeverityWarning {
			t.Errorf("issue = %+v, want dangling_ref warning", is)
		}
	}
	if _, ok := p.Variable("var_door_open"); ok {
		t.Error("variable still present after delete")
	}
	// References are flagged, not scrubbed.
	g, _ := p.Graph("graph_door")
	if n, ok := graph.FindNode(g, "n_check"); !ok || n.VariableID != "var_door_open" {
		t.Error("condition node reference was scrubbed")
	}

	if issues := p.DeleteVariable("var_absent"); issues != nil {
		t.Errorf("deleting an absent variable returned issues: %v", issues)
	}
}

func TestGraphIDSpaceIsShared(t *testing.T) {
	p := testProject(t)
	if err := p.AddDialogueGraph(&types.LogicGraph{ID: "graph_door"}); err == nil {
		t.Fatal("dialogue graph reused a logic graph id")
	}
	if err := p.AddDialogueGraph(&types.LogicGraph{ID: "dlg_intro"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Graph("dlg_intro"); !ok {
		t.Error("Graph() does not find dialogue graphs")
	}
	if got := len(p.AllGraphs()); got != 2 {
		t.Errorf("AllGraphs() returned %d graphs, want 2", got)
	}
}

func TestDeleteGraphFlagsRules(t *testing.T) {
	p := testProject(t)
	issues := p.DeleteGraph("graph_door")
	if len(issues) != 1 || issues[0].RuleID != "rule_open_door" {
		t.Fatalf("issues = %v, want one for rule_open_door", issues)
	}
	if _, ok := p.Graph("graph_door"); ok {
		t.Error("graph still present after delete")
	}
	if issues := p.DeleteGraph("graph_absent"); issues != nil {
		t.Errorf("deleting an absent graph returned issues: %v", issues)
	}
}

func TestDeleteRule(t *testing.T) {
	p := testProject(t)
	if !p.DeleteRule("rule_open_door") {
		t.Fatal("DeleteRule returned false for a present rule")
	}
	if p.DeleteRule("rule_open_door") {
		t.Error("DeleteRule returned true for an absent rule")
	}
}

func TestInitialState(t *testing.T) {
	p := testProject(t)
	read := p.InitialState()
	if v, ok := read("var_gold"); !ok || v.Int != 25 {
		t.Errorf("read(var_gold) = %v, %v", v, ok)
	}
	if _, ok := read("var_absent"); ok {
		t.Error("unknown variable reported as present")
	}
}

func TestValidateCleanProject(t *testing.T) {
	p := testProject(t)
	issues := p.Validate(registry.Builtin())
	if errs := types.Errors(issues); len(errs) != 0 {
		t.Errorf("clean project reported errors: %v", errs)
	}
}

func TestValidateIssueCodes(t *testing.T) {
	p := New()
	p.Variables = []types.GlobalVariable{
		boolVar("var_a", false),
		boolVar("var_a", true), // duplicate id
		{ID: "var_b", Type: "decimal"},
		{ID: "var_c", Type: types.TypeInt, InitialValue: types.StringValue("nope")},
	}
	p.Rules = []types.InteractionRule{
		{ID: "rule_1", SceneID: "", VerbID: "open"},
		{ID: "rule_2", SceneID: "*", VerbID: "talk", LogicGraphID: "graph_missing"},
		{ID: "rule_3", SceneID: "*", VerbID: "talk", Conditions: []types.RuleCondition{
			{VariableID: "var_a", Operator: types.OpGT, Value: types.IntValue(1)},
		}},
	}

	issues := p.Validate(registry.Builtin())
	want := []string{
		"duplicate_variable", "invalid_type", "type_mismatch",
		"missing_scene", "dangling_ref", "operator_type",
	}
	for _, code := range want {
		found := false
		for _, is := range issues {
			if is.Code == code {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing issue code %q in %v", code, issues)
		}
	}
}

func TestSearch(t *testing.T) {
	p := testProject(t)
	hits := p.Search("door")
	if len(hits) == 0 {
		t.Fatal("no hits for \"door\"")
	}
	var sawVar, sawGraph, sawRule bool
	for _, h := range hits {
		switch {
		case h.VariableID == "var_door_open":
			sawVar = true
		case h.GraphID == "graph_door" && h.NodeID == "":
			sawGraph = true
		case h.RuleID == "rule_open_door":
			sawRule = true
		}
	}
	if !sawVar || !sawGraph || !sawRule {
		t.Errorf("hits missed a collection: var=%v graph=%v rule=%v", sawVar, sawGraph, sawRule)
	}

	if hits := p.Search("DOOR"); len(hits) == 0 {
		t.Error("search is case-sensitive")
	}
	if hits := p.Search(""); hits != nil {
		t.Errorf("empty query returned hits: %v", hits)
	}
	if hits := p.Search("zyzzy"); len(hits) != 0 {
		t.Errorf("bogus query returned hits: %v", hits)
	}
}
