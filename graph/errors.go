package graph

import (
	"errors"
	"fmt"

	"github.com/nathoo/advcore/types"
)

// Sentinel errors for mutation calls. These are author/programmer errors
// returned synchronously, never absorbed.
var (
	ErrInvalidEdgeLabel = errors.New("invalid edge label")
	ErrNodeNotFound     = errors.New("node not found")
	ErrDuplicateNode    = errors.New("duplicate node id")
)

// EdgeError reports an edge mutation rejected because the label is not in
// the node variant's defined label set.
type EdgeError struct {
	NodeID string
	Kind   types.NodeKind
	Label  types.EdgeLabel
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("invalid edge label %q for %s node %s", e.Label, e.Kind, e.NodeID)
}

func (e *EdgeError) Unwrap() error { return ErrInvalidEdgeLabel }
