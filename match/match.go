// Package match implements interaction resolution: given a player action
// and a state snapshot, select the single interaction rule to fire, or a
// fallback. The algorithm is the conformance reference for the game
// runtime and must stay pure, total, and deterministic.
package match

import (
	"sort"

	"github.com/nathoo/advcore/types"
)

// Reason explains a Resolve outcome.
type Reason string

const (
	// ReasonMatched: a candidate's conditions all held.
	ReasonMatched Reason = "matched"
	// ReasonFallback: no conditions held, but a candidate declared a
	// fallback dialogue.
	ReasonFallback Reason = "fallback"
	// ReasonNoCandidates: no rule matched the action shape at all.
	ReasonNoCandidates Reason = "no_candidates"
	// ReasonConditionsFailed: candidates existed but none fired and none
	// declared a fallback.
	ReasonConditionsFailed Reason = "conditions_failed"
)

// Resolve selects the interaction rule for an action, in four steps:
//
//  1. Filter rules whose scene matches (equal or wildcard) and whose verb,
//     item, and hotspot fields match the action exactly; an unset optional
//     field matches only an absent action field.
//  2. Order candidates by priority descending, rule id ascending.
//  3. Return the first candidate whose conditions all hold (AND,
//     short-circuit).
//  4. Otherwise surface the best candidate that declares a fallback
//     dialogue, preferring scene-specific rules over wildcard ones; with
//     no fallback, return nil and the caller falls through to its global
//     default.
//
// Resolve never mutates its inputs; repeated calls with the same inputs
// return the same result.
func Resolve(rules []types.InteractionRule, action types.PlayerAction, read types.VariableReader) (*types.InteractionRule, Reason) {
	// Step 1: filter by action shape.
	var candidates []types.InteractionRule
	for _, r := range rules {
		if MatchesAction(r, action) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, ReasonNoCandidates
	}

	// Step 2: priority descending, id ascending for determinism.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].ID < candidates[j].ID
	})

	// Step 3: first candidate whose conditions all hold.
	for i := range candidates {
		if EvalConditions(candidates[i].Conditions, read) {
			return &candidates[i], ReasonMatched
		}
	}

	// Step 4: fallback. Scene-specific rules outrank wildcard ones; within
	// each group the candidate order (priority, id) already applies.
	var wildcard *types.InteractionRule
	for i := range candidates {
		if candidates[i].FallbackDialogueID == "" {
			continue
		}
		if candidates[i].SceneID != types.SceneWildcard {
			return &candidates[i], ReasonFallback
		}
		if wildcard == nil {
			wildcard = &candidates[i]
		}
	}
	if wildcard != nil {
		return wildcard, ReasonFallback
	}

	return nil, ReasonConditionsFailed
}

// MatchesAction reports whether a rule's shape matches an action. There is
// no partial or fuzzy matching: the scene must be equal or the wildcard,
// the verb must be equal, and each optional field must be equal or absent
// on both sides.
func MatchesAction(r types.InteractionRule, action types.PlayerAction) bool {
	if r.SceneID != types.SceneWildcard && r.SceneID != action.SceneID {
		return false
	}
	if r.VerbID != action.VerbID {
		return false
	}
	if r.PrimaryItemID != action.PrimaryItemID {
		return false
	}
	if r.SecondaryItemID != action.SecondaryItemID {
		return false
	}
	if r.TargetHotspotID != action.TargetHotspotID {
		return false
	}
	return true
}

// EvalConditions evaluates a rule's predicates against a state snapshot.
// All must hold; evaluation short-circuits on the first false. An empty
// list is vacuously true. A missing variable makes its predicate false.
func EvalConditions(conditions []types.RuleCondition, read types.VariableReader) bool {
	for _, c := range conditions {
		current, ok := read(c.VariableID)
		if !ok {
			return false
		}
		if !c.Operator.Eval(current, c.Value) {
			return false
		}
	}
	return true
}
