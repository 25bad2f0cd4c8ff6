package match

import (
	"testing"

	"github.com/nathoo/advcore/types"
)

func reader(vars map[string]types.Value) types.VariableReader {
	return func(id string) (types.Value, bool) {
		v, ok := vars[id]
		return v, ok
	}
}

func TestMatchesAction(t *testing.T) {
	tests := []struct {
		name   string
		rule   types.InteractionRule
		action types.PlayerAction
		want   bool
	}{
		{
			name:   "exact scene and verb",
			rule:   types.InteractionRule{SceneID: "cellar", VerbID: "open"},
			action: types.PlayerAction{SceneID: "cellar", VerbID: "open"},
			want:   true,
		},
		{
			name:   "wildcard scene",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "open"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "open"},
			want:   true,
		},
		{
			name:   "scene mismatch",
			rule:   types.InteractionRule{SceneID: "cellar", VerbID: "open"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "open"},
			want:   false,
		},
		{
			name:   "verb mismatch",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "open"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "close"},
			want:   false,
		},
		{
			name:   "item on both sides",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "use", PrimaryItemID: "crowbar"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "use", PrimaryItemID: "crowbar"},
			want:   true,
		},
		{
			name:   "rule item absent but action carries one",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "use"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "use", PrimaryItemID: "crowbar"},
			want:   false,
		},
		{
			name:   "rule item set but action has none",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "use", PrimaryItemID: "crowbar"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "use"},
			want:   false,
		},
		{
			name:   "hotspot must match",
			rule:   types.InteractionRule{SceneID: "*", VerbID: "look", TargetHotspotID: "window"},
			action: types.PlayerAction{SceneID: "attic", VerbID: "look", TargetHotspotID: "door"},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAction(tt.rule, tt.action); got != tt.want {
				t.Errorf("MatchesAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePriorityAndConditions(t *testing.T) {
	rules := []types.InteractionRule{
		{
			ID: "r_low", SceneID: "cellar", VerbID: "open", Priority: 1,
			LogicGraphID: "g_default",
		},
		{
			ID: "r_high", SceneID: "cellar", VerbID: "open", Priority: 10,
			Conditions: []types.RuleCondition{
				{VariableID: "has_key", Operator: types.OpEQ, Value: types.BoolValue(true)},
			},
			LogicGraphID: "g_unlock",
		},
	}
	action := types.PlayerAction{SceneID: "cellar", VerbID: "open"}

	// Conditions hold: the high-priority rule wins.
	rule, reason := Resolve(rules, action, reader(map[string]types.Value{"has_key": types.BoolValue(true)}))
	if reason != ReasonMatched || rule == nil || rule.ID != "r_high" {
		t.Fatalf("Resolve = %v, %s; want r_high, matched", rule, reason)
	}

	// Conditions fail: fall through to the next candidate.
	rule, reason = Resolve(rules, action, reader(map[string]types.Value{"has_key": types.BoolValue(false)}))
	if reason != ReasonMatched || rule == nil || rule.ID != "r_low" {
		t.Fatalf("Resolve = %v, %s; want r_low, matched", rule, reason)
	}
}

func TestResolveTieBreakByID(t *testing.T) {
	rules := []types.InteractionRule{
		{ID: "r_b", SceneID: "*", VerbID: "look", Priority: 5},
		{ID: "r_a", SceneID: "*", VerbID: "look", Priority: 5},
	}
	rule, _ := Resolve(rules, types.PlayerAction{SceneID: "hall", VerbID: "look"}, reader(nil))
	if rule == nil || rule.ID != "r_a" {
		t.Fatalf("tie-break picked %v, want r_a", rule)
	}
}

func TestResolveDeterminism(t *testing.T) {
	rules := []types.InteractionRule{
		{ID: "r2", SceneID: "*", VerbID: "use", Priority: 3},
		{ID: "r1", SceneID: "hall", VerbID: "use", Priority: 3},
		{ID: "r3", SceneID: "hall", VerbID: "use", Priority: 1},
	}
	action := types.PlayerAction{SceneID: "hall", VerbID: "use"}
	first, firstReason := Resolve(rules, action, reader(nil))
	for i := 0; i < 50; i++ {
		r, reason := Resolve(rules, action, reader(nil))
		if r.ID != first.ID || reason != firstReason {
			t.Fatalf("run %d resolved %s/%s, first run %s/%s", i, r.ID, reason, first.ID, firstReason)
		}
	}
	if len(rules) != 3 || rules[0].ID != "r2" {
		t.Error("Resolve mutated its input slice")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	rules := []types.InteractionRule{
		{ID: "r1", SceneID: "cellar", VerbID: "open"},
	}
	rule, reason := Resolve(rules, types.PlayerAction{SceneID: "attic", VerbID: "open"}, reader(nil))
	if rule != nil || reason != ReasonNoCandidates {
		t.Fatalf("Resolve = %v, %s; want nil, no_candidates", rule, reason)
	}

	rule, reason = Resolve(nil, types.PlayerAction{SceneID: "attic", VerbID: "open"}, reader(nil))
	if rule != nil || reason != ReasonNoCandidates {
		t.Fatalf("empty rule set: Resolve = %v, %s", rule, reason)
	}
}

func TestResolveFallbackPrefersSceneSpecific(t *testing.T) {
	failing := []types.RuleCondition{
		{VariableID: "quest_done", Operator: types.OpEQ, Value: types.BoolValue(true)},
	}
	rules := []types.InteractionRule{
		{
			ID: "r_wild", SceneID: "*", VerbID: "talk", Priority: 9,
			Conditions: failing, FallbackDialogueID: "dlg_generic",
		},
		{
			ID: "r_scene", SceneID: "tavern", VerbID: "talk", Priority: 1,
			Conditions: failing, FallbackDialogueID: "dlg_tavern",
		},
	}
	state := reader(map[string]types.Value{"quest_done": types.BoolValue(false)})

	rule, reason := Resolve(rules, types.PlayerAction{SceneID: "tavern", VerbID: "talk"}, state)
	if reason != ReasonFallback || rule == nil || rule.ID != "r_scene" {
		t.Fatalf("Resolve = %v, %s; want r_scene, fallback", rule, reason)
	}
}

func TestResolveFallbackWildcardWhenOnlyOption(t *testing.T) {
	rules := []types.InteractionRule{
		{
			ID: "r_wild", SceneID: "*", VerbID: "talk",
			Conditions: []types.RuleCondition{
				{VariableID: "ghost", Operator: types.OpEQ, Value: types.BoolValue(true)},
			},
			FallbackDialogueID: "dlg_generic",
		},
	}
	rule, reason := Resolve(rules, types.PlayerAction{SceneID: "tavern", VerbID: "talk"}, reader(nil))
	if reason != ReasonFallback || rule == nil || rule.ID != "r_wild" {
		t.Fatalf("Resolve = %v, %s; want r_wild, fallback", rule, reason)
	}
}

func TestResolveConditionsFailedWithoutFallback(t *testing.T) {
	rules := []types.InteractionRule{
		{
			ID: "r1", SceneID: "*", VerbID: "talk",
			Conditions: []types.RuleCondition{
				{VariableID: "ghost", Operator: types.OpEQ, Value: types.BoolValue(true)},
			},
		},
	}
	rule, reason := Resolve(rules, types.PlayerAction{SceneID: "tavern", VerbID: "talk"}, reader(nil))
	if rule != nil || reason != ReasonConditionsFailed {
		t.Fatalf("Resolve = %v, %s; want nil, conditions_failed", rule, reason)
	}
}

func TestEvalConditionsShortCircuit(t *testing.T) {
	calls := 0
	read := func(id string) (types.Value, bool) {
		calls++
		return types.BoolValue(false), true
	}
	conds := []types.RuleCondition{
		{VariableID: "a", Operator: types.OpEQ, Value: types.BoolValue(true)},
		{VariableID: "b", Operator: types.OpEQ, Value: types.BoolValue(true)},
	}
	if EvalConditions(conds, read) {
		t.Fatal("conditions should fail")
	}
	if calls != 1 {
		t.Errorf("evaluated %d conditions, want short-circuit after 1", calls)
	}
	if !EvalConditions(nil, read) {
		t.Error("empty condition list should be vacuously true")
	}
}
