package tessellate_test

import (
	"math"
	"testing"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chazu/swarf/pkg/graph"
	"github.com/chazu/swarf/pkg/tessellate"
)

// makeTorus creates a torus primitive node with the given name and radii.
func makeTorus(name string, major, minor float64, center vec3.T) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:   id,
		Kind: graph.NodePrimitive,
		Name: name,
		Data: graph.TorusData{
			PrimKind:      graph.PrimTorus,
			MajorRadius:   major,
			MinorRadius:   minor,
			Center:        center,
			MajorSegments: 4,
			MinorSegments: 4,
		},
	}
}

// makeDelta creates a transform node with a translation.
func makeDelta(name string, tx, ty, tz float64, children ...graph.NodeID) *graph.Node {
	id := graph.NewNodeID(name)
	t := vec3.T{tx, ty, tz}
	return &graph.Node{
		ID:       id,
		Kind:     graph.NodeTransform,
		Name:     name,
		Children: children,
		Data: graph.DeltaData{
			Translation: &t,
		},
	}
}

// makeGroup creates a group node with children.
func makeGroup(name string, children ...graph.NodeID) *graph.Node {
	id := graph.NewNodeID(name)
	return &graph.Node{
		ID:       id,
		Kind:     graph.NodeGroup,
		Name:     name,
		Children: children,
		Data:     graph.GroupData{Description: name},
	}
}

func TestSingleTorus(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 10, 2, vec3.Zero)
	g.AddNode(torus)
	g.AddRoot(torus.ID)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	p := parts[0]
	if p.Name != "ring" {
		t.Errorf("expected part name %q, got %q", "ring", p.Name)
	}
	if p.NodeID != torus.ID {
		t.Errorf("part should carry its node ID")
	}
	// A 4x4 torus has (4+1)*(4+1) vertices and 4*4*2 triangles.
	if p.Mesh.VertexCount() != 25 {
		t.Errorf("expected 25 vertices, got %d", p.Mesh.VertexCount())
	}
	if p.Mesh.TriangleCount() != 32 {
		t.Errorf("expected 32 triangles, got %d", p.Mesh.TriangleCount())
	}
}

func TestTwoParts(t *testing.T) {
	g := graph.New()

	inner := makeTorus("inner-ring", 5, 1, vec3.Zero)
	outer := makeTorus("outer-ring", 10, 1, vec3.Zero)
	g.AddNode(inner)
	g.AddNode(outer)
	g.AddRoot(inner.ID)
	g.AddRoot(outer.ID)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}

	names := map[string]bool{}
	for _, p := range parts {
		if p.Mesh.IsEmpty() {
			t.Errorf("part %q should not be empty", p.Name)
		}
		names[p.Name] = true
	}
	if !names["inner-ring"] {
		t.Error("missing part inner-ring")
	}
	if !names["outer-ring"] {
		t.Error("missing part outer-ring")
	}
}

func TestPartWithTranslation(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 10, 2, vec3.Zero)
	g.AddNode(torus)

	place := makeDelta("place-ring", 100, 50, 25, torus.ID)
	g.AddNode(place)
	g.AddRoot(place.ID)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	p := parts[0]
	if p.Name != "ring" {
		t.Errorf("expected part name %q, got %q", "ring", p.Name)
	}

	// The first torus vertex sits at center + (major+minor, 0, 0), so after
	// the translation it should be at (112, 50, 25).
	v := p.Mesh.Vertices[0]
	want := vec3.T{112, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(v[i]-want[i]) > 1e-9 {
			t.Fatalf("vertex 0 = %v, want %v", v, want)
		}
	}
}

func TestAssembly(t *testing.T) {
	g := graph.New()

	left := makeTorus("left-ring", 8, 1, vec3.Zero)
	right := makeTorus("right-ring", 8, 1, vec3.Zero)
	g.AddNode(left)
	g.AddNode(right)

	placeLeft := makeDelta("place-left", -20, 0, 0, left.ID)
	placeRight := makeDelta("place-right", 20, 0, 0, right.ID)
	g.AddNode(placeLeft)
	g.AddNode(placeRight)

	assembly := makeGroup("chain", placeLeft.ID, placeRight.ID)
	g.AddNode(assembly)
	g.AddRoot(assembly.ID)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}

	names := map[string]bool{}
	for _, p := range parts {
		if p.Mesh.IsEmpty() {
			t.Errorf("part %q should not be empty", p.Name)
		}
		names[p.Name] = true
	}
	for _, want := range []string{"left-ring", "right-ring"} {
		if !names[want] {
			t.Errorf("missing part %q", want)
		}
	}
}

func TestSweepNode(t *testing.T) {
	g := graph.New()

	id := graph.NewNodeID("tube")
	g.AddNode(&graph.Node{
		ID:   id,
		Kind: graph.NodeSweep,
		Name: "tube",
		Data: graph.SweepData{
			Profile: graph.ProfileSpec{Kind: graph.ProfileCircle, Radius: 1, Segments: 8},
			Path: graph.PathSpec{
				Kind:     graph.PathLine,
				From:     vec3.T{0, 0, 0},
				To:       vec3.T{5, 0, 0},
				Segments: 5,
			},
			Closed: true,
		},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	// 6 rings of 8 vertices plus 2 cap centers; 80 wall + 16 cap triangles.
	m := parts[0].Mesh
	if m.VertexCount() != 50 {
		t.Errorf("expected 50 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 96 {
		t.Errorf("expected 96 triangles, got %d", m.TriangleCount())
	}
}

func TestLoftNode(t *testing.T) {
	g := graph.New()

	id := graph.NewNodeID("boss")
	g.AddNode(&graph.Node{
		ID:   id,
		Kind: graph.NodeLoft,
		Name: "boss",
		Data: graph.LoftData{
			Rings: []graph.RingSpec{
				{Kind: graph.ProfileCircle, Radius: 2, Center: vec3.T{0, 0, 0}, Segments: 8},
				{Kind: graph.ProfileCircle, Radius: 1, Center: vec3.T{0, 5, 0}, Segments: 8},
			},
			Closed: true,
		},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	// Two 8-vertex rings plus two cap centroids.
	if got := parts[0].Mesh.VertexCount(); got != 18 {
		t.Errorf("expected 18 vertices, got %d", got)
	}
}

func TestLoftErrorPropagates(t *testing.T) {
	g := graph.New()

	id := graph.NewNodeID("bad-boss")
	g.AddNode(&graph.Node{
		ID:   id,
		Kind: graph.NodeLoft,
		Name: "bad-boss",
		Data: graph.LoftData{
			Rings: []graph.RingSpec{
				{Kind: graph.ProfileCircle, Radius: 2, Segments: 8},
			},
		},
	})
	g.AddRoot(id)

	_, err := tessellate.Tessellate(g)
	if err == nil {
		t.Fatal("expected error for single-ring loft")
	}
}

func TestDraftBoxNode(t *testing.T) {
	g := graph.New()

	id := graph.NewNodeID("block")
	g.AddNode(&graph.Node{
		ID:   id,
		Kind: graph.NodeDraft,
		Name: "block",
		Data: graph.DraftBoxData{
			Size:      vec3.T{2, 2, 2},
			AngleDeg:  5,
			Direction: vec3.T{0, 1, 0},
		},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	m := parts[0].Mesh
	if m.VertexCount() != 8 {
		t.Errorf("expected 8 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
}

func TestMirrorModifier(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 3, 1, vec3.T{5, 0, 0})
	g.AddNode(torus)

	id := graph.NewNodeID("mirror-ring")
	g.AddNode(&graph.Node{
		ID:       id,
		Kind:     graph.NodeModifier,
		Name:     "mirror-ring",
		Children: []graph.NodeID{torus.ID},
		Data:     graph.MirrorData{Plane: "yz"},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}

	// Vertex 0 of the torus sits at (5+3+1, 0, 0); mirrored across the
	// yz plane it lands at x = -9.
	v := parts[0].Mesh.Vertices[0]
	if math.Abs(v[0]-(-9)) > 1e-9 {
		t.Errorf("mirrored vertex 0 x = %v, want -9", v[0])
	}
}

func TestMirrorKeepOriginalDoublesMesh(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 3, 1, vec3.T{5, 0, 0})
	g.AddNode(torus)

	id := graph.NewNodeID("mirror-ring")
	g.AddNode(&graph.Node{
		ID:       id,
		Kind:     graph.NodeModifier,
		Name:     "mirror-ring",
		Children: []graph.NodeID{torus.ID},
		Data:     graph.MirrorData{Plane: "yz", KeepOriginal: true},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if got := parts[0].Mesh.VertexCount(); got != 50 {
		t.Errorf("expected 50 vertices, got %d", got)
	}
}

func TestUnknownMirrorPlane(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 3, 1, vec3.Zero)
	g.AddNode(torus)

	id := graph.NewNodeID("mirror-ring")
	g.AddNode(&graph.Node{
		ID:       id,
		Kind:     graph.NodeModifier,
		Name:     "mirror-ring",
		Children: []graph.NodeID{torus.ID},
		Data:     graph.MirrorData{Plane: "diagonal"},
	})
	g.AddRoot(id)

	_, err := tessellate.Tessellate(g)
	if err == nil {
		t.Fatal("expected error for unknown mirror plane")
	}
}

func TestDraftModifier(t *testing.T) {
	g := graph.New()

	torus := makeTorus("ring", 10, 2, vec3.Zero)
	g.AddNode(torus)

	id := graph.NewNodeID("draft-ring")
	g.AddNode(&graph.Node{
		ID:       id,
		Kind:     graph.NodeModifier,
		Name:     "draft-ring",
		Children: []graph.NodeID{torus.ID},
		Data: graph.DraftMeshData{
			AngleDeg:    10,
			PlanePoint:  vec3.Zero,
			PlaneNormal: vec3.T{0, 1, 0},
		},
	})
	g.AddRoot(id)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	// Topology is preserved; only vertex positions move.
	if got := parts[0].Mesh.VertexCount(); got != 25 {
		t.Errorf("expected 25 vertices, got %d", got)
	}
}

func TestEmptyGraph(t *testing.T) {
	parts, err := tessellate.Tessellate(graph.New())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 0 {
		t.Fatalf("expected 0 parts, got %d", len(parts))
	}
}

func TestNilGraph(t *testing.T) {
	parts, err := tessellate.Tessellate(nil)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if parts != nil {
		t.Fatalf("expected nil parts, got %v", parts)
	}
}

func TestDanglingRootSkipped(t *testing.T) {
	g := graph.New()
	g.AddRoot(graph.NewNodeID("ghost"))

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(parts) != 0 {
		t.Fatalf("expected 0 parts, got %d", len(parts))
	}
}

func TestUnnamedPartFallsBackToShortID(t *testing.T) {
	g := graph.New()

	torus := makeTorus("", 4, 1, vec3.Zero)
	torus.ID = graph.NewNodeID("anonymous")
	g.AddNode(torus)
	g.AddRoot(torus.ID)

	parts, err := tessellate.Tessellate(g)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if parts[0].Name != torus.ID.Short() {
		t.Errorf("expected short-ID name %q, got %q", torus.ID.Short(), parts[0].Name)
	}
}
