package graph

import (
	"fmt"

	"github.com/nathoo/advcore/types"
)

// New constructs an empty logic graph.
func New(id, name string) *types.LogicGraph {
	return &types.LogicGraph{ID: id, Name: name}
}

// FindNode returns the node with the given id, if present.
func FindNode(g *types.LogicGraph, id string) (*types.LogicNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// AddNode appends a node to the graph. Node ids are unique within a graph.
func AddNode(g *types.LogicGraph, n *types.LogicNode) error {
	if _, ok := FindNode(g, n.ID); ok {
		return fmt.Errorf("graph %s: %w: %s", g.ID, ErrDuplicateNode, n.ID)
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// RemoveNode deletes a node and severs every edge referencing it, in both
// directions. Removing an absent id is a no-op.
func RemoveNode(g *types.LogicGraph, id string) {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)

	// Sever incoming edges held by the remaining nodes.
	for _, n := range g.Nodes {
		kept := n.Edges[:0]
		for _, e := range n.Edges {
			if e.Target != id {
				kept = append(kept, e)
			}
		}
		n.Edges = kept
	}
}

// AddEdge connects (from, label) -> to. The source node must exist; the
// target may be absent (the editor tolerates dangling targets, validation
// flags them). A prior target for the same label is replaced.
func AddEdge(g *types.LogicGraph, fromID string, label types.EdgeLabel, toID string) error {
	from, ok := FindNode(g, fromID)
	if !ok {
		return fmt.Errorf("graph %s: %w: %s", g.ID, ErrNodeNotFound, fromID)
	}
	return Connect(from, label, toID)
}

// EntryNodes returns the nodes with no incoming edge, in insertion order.
// A well-formed graph has at least one; during editing zero is tolerated.
func EntryNodes(g *types.LogicGraph) []*types.LogicNode {
	incoming := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, e := range n.Edges {
			incoming[e.Target] = true
		}
	}
	var entries []*types.LogicNode
	for _, n := range g.Nodes {
		if !incoming[n.ID] {
			entries = append(entries, n)
		}
	}
	return entries
}
