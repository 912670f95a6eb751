package graph

import (
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
)

func TestNewDesignGraph(t *testing.T) {
	g := New()
	if g.Nodes == nil {
		t.Fatal("Nodes map should be initialized")
	}
	if g.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if g.Defaults.TorusMajorSegments != DefaultTorusMajorSegments {
		t.Errorf("default torus major segments = %d, want %d", g.Defaults.TorusMajorSegments, DefaultTorusMajorSegments)
	}
	if g.Defaults.Units != "mm" {
		t.Errorf("default units = %q, want %q", g.Defaults.Units, "mm")
	}
	if g.NodeCount() != 0 {
		t.Errorf("empty graph should have 0 nodes, got %d", g.NodeCount())
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	g := New()

	id := NewNodeID("torus/ring")
	node := &Node{
		ID:   id,
		Kind: NodePrimitive,
		Name: "ring",
		Data: TorusData{
			PrimKind:      PrimTorus,
			MajorRadius:   20,
			MinorRadius:   5,
			MajorSegments: 32,
			MinorSegments: 16,
		},
	}
	g.AddNode(node)
	g.AddRoot(id)

	if g.NodeCount() != 1 {
		t.Errorf("node count = %d, want 1", g.NodeCount())
	}

	found := g.Lookup("ring")
	if found == nil {
		t.Fatal("Lookup('ring') returned nil")
	}
	if found.ID != id {
		t.Error("lookup returned wrong node")
	}

	must := g.MustLookup("ring")
	if must.ID != id {
		t.Error("MustLookup returned wrong node")
	}

	if g.Get(id) != node {
		t.Error("Get returned wrong node")
	}
	if g.Get(NewNodeID("missing")) != nil {
		t.Error("Get for unknown id should return nil")
	}
	if g.Lookup("missing") != nil {
		t.Error("Lookup for unknown name should return nil")
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustLookup should panic for unknown names")
		}
	}()
	New().MustLookup("no-such-part")
}

func TestParts(t *testing.T) {
	g := New()

	torusID := NewNodeID("torus/1")
	g.AddNode(&Node{ID: torusID, Kind: NodePrimitive, Data: TorusData{}})

	sweepID := NewNodeID("sweep/1")
	g.AddNode(&Node{ID: sweepID, Kind: NodeSweep, Data: SweepData{}})

	loftID := NewNodeID("loft/1")
	g.AddNode(&Node{ID: loftID, Kind: NodeLoft, Data: LoftData{}})

	groupID := NewNodeID("group/1")
	g.AddNode(&Node{
		ID:       groupID,
		Kind:     NodeGroup,
		Children: []NodeID{torusID, sweepID, loftID},
		Data:     GroupData{},
	})

	parts := g.Parts()
	if len(parts) != 3 {
		t.Errorf("Parts() returned %d nodes, want 3", len(parts))
	}
	for _, p := range parts {
		if p.Kind == NodeGroup {
			t.Error("Parts() must not include group nodes")
		}
	}
}

func TestChildren(t *testing.T) {
	g := New()

	childID := NewNodeID("helix/1")
	g.AddNode(&Node{ID: childID, Kind: NodePrimitive, Data: HelixData{}})

	parentID := NewNodeID("place/1")
	trans := vec3.T{0, 10, 0}
	g.AddNode(&Node{
		ID:       parentID,
		Kind:     NodeTransform,
		Children: []NodeID{childID, NewNodeID("dangling")},
		Data:     DeltaData{Translation: &trans},
	})

	children := g.Children(g.Get(parentID))
	if len(children) != 1 {
		t.Fatalf("Children() returned %d nodes, want 1 (dangling skipped)", len(children))
	}
	if children[0].ID != childID {
		t.Error("Children() returned wrong node")
	}
}

func TestNodeIDHelpers(t *testing.T) {
	id := NewNodeID("torus/ring")
	if id.IsZero() {
		t.Error("derived id should not be zero")
	}
	if len(id.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 characters", id.Short())
	}
	if NewNodeID("torus/ring") != id {
		t.Error("NewNodeID must be deterministic")
	}
	if NewNodeID("torus/other") == id {
		t.Error("different seeds must produce different ids")
	}

	var zero NodeID
	if !zero.IsZero() {
		t.Error("empty id should be zero")
	}
}

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{NodePrimitive, "primitive"},
		{NodeSweep, "sweep"},
		{NodeLoft, "loft"},
		{NodeDraft, "draft"},
		{NodeTransform, "transform"},
		{NodeModifier, "modifier"},
		{NodeGroup, "group"},
		{NodeKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
