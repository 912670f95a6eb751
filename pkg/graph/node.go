package graph

import (
	"crypto/sha1"
	"encoding/hex"
)

// NodeID is a content-derived identifier for graph nodes.
type NodeID string

// NewNodeID derives a stable ID from the given seed (typically the DSL
// form that created the node plus an evaluation ordinal).
func NewNodeID(seed string) NodeID {
	sum := sha1.Sum([]byte(seed))
	return NodeID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool { return id == "" }

// Short returns an abbreviated form for log and error messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

func (id NodeID) String() string { return string(id) }

// NodeKind enumerates the types of nodes in the design graph.
type NodeKind int

const (
	NodePrimitive NodeKind = iota // generated primitive (torus, helix)
	NodeSweep                     // profile swept along a path
	NodeLoft                      // surface lofted between cross-sections
	NodeDraft                     // tapered primitive or extrusion
	NodeTransform                 // spatial placement (place)
	NodeModifier                  // mesh modifier applied to a child (mirror, draft)
	NodeGroup                     // logical grouping (assembly)
)

func (k NodeKind) String() string {
	switch k {
	case NodePrimitive:
		return "primitive"
	case NodeSweep:
		return "sweep"
	case NodeLoft:
		return "loft"
	case NodeDraft:
		return "draft"
	case NodeTransform:
		return "transform"
	case NodeModifier:
		return "modifier"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the design graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
