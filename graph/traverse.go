package graph

import "github.com/nathoo/advcore/types"

// DefaultMaxSteps bounds a single traversal. Cycles are legal in stored
// graphs; the runtime contract caps how far one invocation may follow them.
const DefaultMaxSteps = 1000

// TraverseOptions tunes a traversal. The zero value uses DefaultMaxSteps.
type TraverseOptions struct {
	MaxSteps int
}

// Visit records one executed node. For Action nodes Effect carries the
// emitted command; for Condition nodes ConditionMet records the outcome;
// for Dialogue nodes the node itself carries the line.
type Visit struct {
	Node         *types.LogicNode
	Effect       *types.Effect
	ConditionMet bool
}

// TraversalResult is the outcome of one traversal invocation: the executed
// nodes in order, the effects they emitted, and whether the step bound cut
// the walk short.
type TraversalResult struct {
	Visits    []Visit
	Truncated bool
	// AwaitingChoice is set when the walk stopped at a player-choice
	// dialogue node; selection happens outside this contract.
	AwaitingChoice bool
}

// Effects returns the emitted effects in execution order.
func (r TraversalResult) Effects() []types.Effect {
	var effs []types.Effect
	for _, v := range r.Visits {
		if v.Effect != nil {
			effs = append(effs, *v.Effect)
		}
	}
	return effs
}

// Traverse walks the graph from entryID, reading variables through read.
// This is the reference for the runtime contract:
//
//   - Action: emit command+parameters, follow "next" if present, else stop.
//   - Condition: evaluate variable op required, follow "success"/"failure";
//     a missing chosen edge ends the branch without error.
//   - Dialogue: a player-choice node suspends the walk (selection is
//     external); otherwise follow "next" like an Action.
//
// Traversal is a finite directed path: opts.MaxSteps (DefaultMaxSteps when
// zero) bounds cycle following. An unknown entry id yields an empty result.
func Traverse(g *types.LogicGraph, entryID string, read types.VariableReader, opts TraverseOptions) TraversalResult {
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	var result TraversalResult
	node, ok := FindNode(g, entryID)
	if !ok {
		return result
	}

	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			result.Truncated = true
			return result
		}

		visit := Visit{Node: node}
		var nextLabel types.EdgeLabel

		switch node.Kind {
		case types.KindAction:
			visit.Effect = &types.Effect{
				NodeID:  node.ID,
				Command: node.Command,
				Params:  node.Params,
			}
			nextLabel = types.EdgeNext

		case types.KindCondition:
			met := false
			if current, ok := read(node.VariableID); ok {
				met = node.Operator.Eval(current, node.RequiredValue)
			}
			visit.ConditionMet = met
			if met {
				nextLabel = types.EdgeSuccess
			} else {
				nextLabel = types.EdgeFailure
			}

		case types.KindDialogue:
			if node.IsPlayerChoice {
				result.Visits = append(result.Visits, visit)
				result.AwaitingChoice = true
				return result
			}
			nextLabel = types.EdgeNext

		default:
			// Unknown kind cannot be constructed through this package;
			// stop rather than guess.
			result.Visits = append(result.Visits, visit)
			return result
		}

		result.Visits = append(result.Visits, visit)

		targetID, ok := EdgeTarget(node, nextLabel)
		if !ok {
			return result // branch ends, no-op
		}
		node, ok = FindNode(g, targetID)
		if !ok {
			return result // dangling edge target, flagged by validation
		}
	}
}
