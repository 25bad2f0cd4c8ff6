package graph

import (
	"errors"
	"testing"

	"github.com/nathoo/advcore/types"
)

func TestConnectLabels(t *testing.T) {
	tests := []struct {
		name    string
		node    *types.LogicNode
		label   types.EdgeLabel
		wantErr bool
	}{
		{"action next", NewActionNode("a", "FORCE_SAVE"), types.EdgeNext, false},
		{"action success rejected", NewActionNode("a", "FORCE_SAVE"), types.EdgeSuccess, true},
		{"condition success", NewConditionNode("c", "v", types.OpEQ, types.BoolValue(true)), types.EdgeSuccess, false},
		{"condition failure", NewConditionNode("c", "v", types.OpEQ, types.BoolValue(true)), types.EdgeFailure, false},
		{"condition next rejected", NewConditionNode("c", "v", types.OpEQ, types.BoolValue(true)), types.EdgeNext, true},
		{"dialogue next", NewDialogueNode("d", "", "hi", false), types.EdgeNext, false},
		{"dialogue failure rejected", NewDialogueNode("d", "", "hi", false), types.EdgeFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Connect(tt.node, tt.label, "target")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Connect(%s) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEdgeLabel) {
				t.Errorf("error %v does not unwrap to ErrInvalidEdgeLabel", err)
			}
		})
	}
}

func TestConnectLastWriteWins(t *testing.T) {
	n := NewActionNode("a", "FORCE_SAVE")
	if err := Connect(n, types.EdgeNext, "first"); err != nil {
		t.Fatal(err)
	}
	if err := Connect(n, types.EdgeNext, "second"); err != nil {
		t.Fatal(err)
	}
	if len(n.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(n.Edges))
	}
	if target, _ := EdgeTarget(n, types.EdgeNext); target != "second" {
		t.Errorf("target = %q, want %q", target, "second")
	}
}

func TestDisconnect(t *testing.T) {
	n := NewConditionNode("c", "v", types.OpEQ, types.BoolValue(true))
	Connect(n, types.EdgeSuccess, "yes")
	Connect(n, types.EdgeFailure, "no")

	Disconnect(n, types.EdgeSuccess)
	if _, ok := EdgeTarget(n, types.EdgeSuccess); ok {
		t.Error("success edge still present after Disconnect")
	}
	if target, ok := EdgeTarget(n, types.EdgeFailure); !ok || target != "no" {
		t.Errorf("failure edge = %q, %v; want no, true", target, ok)
	}
}

func TestSetParamPreservesOrderAndIdentity(t *testing.T) {
	n := NewActionNode("a", "SET_VARIABLE")
	SetParam(n, "VarName", types.StringValue("door_open"))
	SetParam(n, "Value", types.StringValue("true"))
	SetParam(n, "VarName", types.StringValue("door_locked")) // replace in place

	if len(n.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(n.Params))
	}
	if n.Params[0].Name != "VarName" || n.Params[1].Name != "Value" {
		t.Errorf("param order = %s, %s", n.Params[0].Name, n.Params[1].Name)
	}
	if v, _ := ParamValue(n, "VarName"); v.Str != "door_locked" {
		t.Errorf("VarName = %q, want door_locked", v.Str)
	}
	if n.ID != "a" || len(n.Edges) != 0 {
		t.Error("SetParam changed node id or edges")
	}
}
