package graph

import "fmt"

// Default segment counts handed to builtins that omit them. They match
// the kernel's package defaults so DSL output and direct kernel calls
// produce identical geometry.
const (
	DefaultTorusMajorSegments = 32
	DefaultTorusMinorSegments = 16
	DefaultHelixSegments      = 32
	DefaultHelixTubeSegments  = 8
	DefaultProfileSegments    = 16
	DefaultDraftSegments      = 32
	DefaultLoftSteps          = 1
)

// GlobalDefaults contains graph-wide default settings.
type GlobalDefaults struct {
	TorusMajorSegments int    `json:"torus_major_segments"`
	TorusMinorSegments int    `json:"torus_minor_segments"`
	HelixSegments      int    `json:"helix_segments"`
	HelixTubeSegments  int    `json:"helix_tube_segments"`
	ProfileSegments    int    `json:"profile_segments"`
	DraftSegments      int    `json:"draft_segments"`
	LoftSteps          int    `json:"loft_steps"`
	Units              string `json:"units"` // "mm" only for now
}

// DesignGraph is the top-level immutable data structure produced by Lisp
// evaluation. It is never mutated in place; each evaluation produces a
// new graph.
type DesignGraph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  GlobalDefaults    `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty DesignGraph with default settings.
func New() *DesignGraph {
	return &DesignGraph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults: GlobalDefaults{
			TorusMajorSegments: DefaultTorusMajorSegments,
			TorusMinorSegments: DefaultTorusMinorSegments,
			HelixSegments:      DefaultHelixSegments,
			HelixTubeSegments:  DefaultHelixTubeSegments,
			ProfileSegments:    DefaultProfileSegments,
			DraftSegments:      DefaultDraftSegments,
			LoftSteps:          DefaultLoftSteps,
			Units:              "mm",
		},
	}
}

// AddNode adds a node to the graph. It does not check for duplicates.
func (g *DesignGraph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *DesignGraph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *DesignGraph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *DesignGraph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("graph: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *DesignGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Parts returns all geometry-producing nodes in the graph (everything
// except placements, modifiers and groups).
func (g *DesignGraph) Parts() []*Node {
	var parts []*Node
	for _, n := range g.Nodes {
		switch n.Kind {
		case NodePrimitive, NodeSweep, NodeLoft, NodeDraft:
			parts = append(parts, n)
		}
	}
	return parts
}

// Children returns the child nodes of the given node.
func (g *DesignGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (g *DesignGraph) NodeCount() int {
	return len(g.Nodes)
}
