package graph

import (
	"errors"
	"testing"

	"github.com/nathoo/advcore/types"
)

func TestAddNodeRejectsDuplicates(t *testing.T) {
	g := New("g1", "test")
	if err := AddNode(g, NewActionNode("a", "FORCE_SAVE")); err != nil {
		t.Fatal(err)
	}
	err := AddNode(g, NewActionNode("a", "FORCE_SAVE"))
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("duplicate AddNode error = %v, want ErrDuplicateNode", err)
	}
}

func TestRemoveNodeSeversEdges(t *testing.T) {
	g := New("g1", "test")
	AddNode(g, NewActionNode("a", "FORCE_SAVE"))
	AddNode(g, NewConditionNode("c", "v", types.OpEQ, types.BoolValue(true)))
	AddNode(g, NewActionNode("b", "FORCE_SAVE"))
	AddEdge(g, "a", types.EdgeNext, "c")
	AddEdge(g, "c", types.EdgeSuccess, "b")
	AddEdge(g, "c", types.EdgeFailure, "a")

	RemoveNode(g, "c")

	if _, ok := FindNode(g, "c"); ok {
		t.Fatal("node c still present")
	}
	a, _ := FindNode(g, "a")
	if _, ok := EdgeTarget(a, types.EdgeNext); ok {
		t.Error("incoming edge a->c not severed")
	}
}

func TestRemoveAbsentNodeIsNoop(t *testing.T) {
	g := New("g1", "test")
	AddNode(g, NewActionNode("a", "FORCE_SAVE"))
	RemoveNode(g, "ghost")
	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
}

func TestAddEdgeRequiresSource(t *testing.T) {
	g := New("g1", "test")
	err := AddEdge(g, "missing", types.EdgeNext, "anywhere")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("error = %v, want ErrNodeNotFound", err)
	}

	// A dangling target is tolerated; validation flags it.
	AddNode(g, NewActionNode("a", "FORCE_SAVE"))
	if err := AddEdge(g, "a", types.EdgeNext, "ghost"); err != nil {
		t.Fatalf("dangling target rejected: %v", err)
	}
}

func TestEntryNodesInsertionOrder(t *testing.T) {
	g := New("g1", "test")
	AddNode(g, NewActionNode("third", "FORCE_SAVE"))
	AddNode(g, NewActionNode("first", "FORCE_SAVE"))
	AddNode(g, NewActionNode("linked", "FORCE_SAVE"))
	AddEdge(g, "first", types.EdgeNext, "linked")

	entries := EntryNodes(g)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != "third" || entries[1].ID != "first" {
		t.Errorf("entry order = %s, %s; want third, first", entries[0].ID, entries[1].ID)
	}
}

func TestEntryNodesCycle(t *testing.T) {
	g := New("g1", "test")
	AddNode(g, NewActionNode("a", "FORCE_SAVE"))
	AddNode(g, NewActionNode("b", "FORCE_SAVE"))
	AddEdge(g, "a", types.EdgeNext, "b")
	AddEdge(g, "b", types.EdgeNext, "a")

	if entries := EntryNodes(g); len(entries) != 0 {
		t.Errorf("cyclic graph has %d entries, want 0", len(entries))
	}
}
