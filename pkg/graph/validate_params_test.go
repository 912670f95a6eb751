package graph

import (
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
)

// paramGraph wraps a single data payload in a rooted node so parameter
// validation sees it.
func paramGraph(kind NodeKind, data NodeData) *DesignGraph {
	g := New()
	id := NewNodeID("node/under-test")
	g.AddNode(&Node{ID: id, Kind: kind, Data: data})
	g.AddRoot(id)
	return g
}

// modifierGraph wraps a modifier payload around a valid torus child.
func modifierGraph(data NodeData) *DesignGraph {
	g := validTorusGraph()
	id := NewNodeID("modifier/under-test")
	g.AddNode(&Node{
		ID:       id,
		Kind:     NodeModifier,
		Children: []NodeID{g.NameIndex["ring"]},
		Data:     data,
	})
	root := g.Get(g.Roots[0])
	root.Children = append(root.Children, id)
	return g
}

func TestValidateTorusParameters(t *testing.T) {
	tests := []struct {
		name     string
		data     TorusData
		fragment string // "" = no errors expected
	}{
		{"valid", TorusData{MajorRadius: 20, MinorRadius: 5, MajorSegments: 32, MinorSegments: 16}, ""},
		{"zero major radius", TorusData{MajorRadius: 0, MinorRadius: 5, MajorSegments: 32, MinorSegments: 16}, "major radius"},
		{"negative minor radius", TorusData{MajorRadius: 20, MinorRadius: -1, MajorSegments: 32, MinorSegments: 16}, "minor radius"},
		{"too few segments", TorusData{MajorRadius: 20, MinorRadius: 5, MajorSegments: 2, MinorSegments: 16}, "major segments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAll(paramGraph(NodePrimitive, tt.data))
			if tt.fragment == "" {
				if !result.OK() {
					t.Errorf("unexpected errors: %v", result.Errors)
				}
				return
			}
			if !hasErrorContaining(result.Errors, tt.fragment) {
				t.Errorf("expected error mentioning %q, got %v", tt.fragment, result.Errors)
			}
		})
	}
}

func TestValidateTorusWarnings(t *testing.T) {
	// 4 segments is valid but visibly faceted.
	coarse := TorusData{MajorRadius: 20, MinorRadius: 5, MajorSegments: 4, MinorSegments: 16}
	result := ValidateAll(paramGraph(NodePrimitive, coarse))
	if !result.OK() {
		t.Fatalf("coarse torus should not error: %v", result.Errors)
	}
	if !hasWarningContaining(result.Warnings, "faceted") {
		t.Errorf("expected a faceting warning, got %v", result.Warnings)
	}

	// Minor radius at or beyond the major radius self-intersects.
	fat := TorusData{MajorRadius: 5, MinorRadius: 6, MajorSegments: 32, MinorSegments: 16}
	result = ValidateAll(paramGraph(NodePrimitive, fat))
	if !hasWarningContaining(result.Warnings, "self-intersects") {
		t.Errorf("expected a self-intersection warning, got %v", result.Warnings)
	}
}

func TestValidateHelixParameters(t *testing.T) {
	valid := HelixData{Radius: 5, Pitch: 2, Turns: 3, TubeRadius: 0.5, Segments: 32, TubeSegments: 8}
	if result := ValidateAll(paramGraph(NodePrimitive, valid)); !result.OK() {
		t.Errorf("valid helix produced errors: %v", result.Errors)
	}

	bad := valid
	bad.Turns = 0
	result := ValidateAll(paramGraph(NodePrimitive, bad))
	if !hasErrorContaining(result.Errors, "turns") {
		t.Errorf("expected a turns error, got %v", result.Errors)
	}

	bad = valid
	bad.Segments = 0
	result = ValidateAll(paramGraph(NodePrimitive, bad))
	if !hasErrorContaining(result.Errors, "helix segments") {
		t.Errorf("expected a segments error, got %v", result.Errors)
	}
}

func TestValidateSweepParameters(t *testing.T) {
	valid := SweepData{
		Profile: ProfileSpec{Kind: ProfileCircle, Radius: 1, Segments: 8},
		Path:    PathSpec{Kind: PathLine, To: vec3.T{0, 10, 0}, Segments: 5},
		Closed:  true,
	}
	if result := ValidateAll(paramGraph(NodeSweep, valid)); !result.OK() {
		t.Errorf("valid sweep produced errors: %v", result.Errors)
	}

	tests := []struct {
		name     string
		mutate   func(*SweepData)
		fragment string
	}{
		{"zero profile radius", func(d *SweepData) { d.Profile.Radius = 0 }, "profile radius"},
		{"two profile segments", func(d *SweepData) { d.Profile.Segments = 2 }, "profile segments"},
		{"zero path segments", func(d *SweepData) { d.Path.Segments = 0 }, "path segments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			result := ValidateAll(paramGraph(NodeSweep, d))
			if !hasErrorContaining(result.Errors, tt.fragment) {
				t.Errorf("expected error mentioning %q, got %v", tt.fragment, result.Errors)
			}
		})
	}

	curve := SweepData{
		Profile: ProfileSpec{Kind: ProfileRect, Width: 2, Height: 1},
		Path:    PathSpec{Kind: PathCurve, Points: []vec3.T{{0, 0, 0}}, SamplesPerSegment: 4},
	}
	result := ValidateAll(paramGraph(NodeSweep, curve))
	if !hasErrorContaining(result.Errors, "control points") {
		t.Errorf("expected a control point error, got %v", result.Errors)
	}
}

func TestValidateLoftParameters(t *testing.T) {
	ring := RingSpec{Kind: ProfileCircle, Radius: 2, Segments: 8}

	// Mirrors the kernel's only hard failure, but caught before
	// tessellation.
	single := LoftData{Rings: []RingSpec{ring}}
	result := ValidateAll(paramGraph(NodeLoft, single))
	if !hasErrorContaining(result.Errors, "at least 2") {
		t.Errorf("expected a cross-section count error, got %v", result.Errors)
	}

	badRing := LoftData{Rings: []RingSpec{ring, {Kind: ProfileRect, Width: 0, Depth: 2}}}
	result = ValidateAll(paramGraph(NodeLoft, badRing))
	if !hasErrorContaining(result.Errors, "width") {
		t.Errorf("expected a ring width error, got %v", result.Errors)
	}

	negSteps := LoftData{Rings: []RingSpec{ring, ring}, Steps: -1}
	result = ValidateAll(paramGraph(NodeLoft, negSteps))
	if !result.OK() {
		t.Fatalf("negative steps should not block: %v", result.Errors)
	}
	if !hasWarningContaining(result.Warnings, "negative") {
		t.Errorf("expected a negative steps warning, got %v", result.Warnings)
	}
}

func TestValidateDraftParameters(t *testing.T) {
	box := DraftBoxData{Size: vec3.T{4, 0, 4}, AngleDeg: 5, Direction: vec3.T{0, 1, 0}}
	result := ValidateAll(paramGraph(NodeDraft, box))
	if !hasErrorContaining(result.Errors, "box size y") {
		t.Errorf("expected a box size error, got %v", result.Errors)
	}

	cyl := DraftCylinderData{Radius: 3, Height: 2, AngleDeg: 95, Segments: 16}
	result = ValidateAll(paramGraph(NodeDraft, cyl))
	if !result.OK() {
		t.Fatalf("extreme angle should warn, not error: %v", result.Errors)
	}
	if !hasWarningContaining(result.Warnings, "draft angle") {
		t.Errorf("expected a draft angle warning, got %v", result.Warnings)
	}

	flare := DraftCylinderData{Radius: 3, Height: 2, AngleDeg: -10, Segments: 16}
	result = ValidateAll(paramGraph(NodeDraft, flare))
	if !hasWarningContaining(result.Warnings, "flares") {
		t.Errorf("expected a flare warning, got %v", result.Warnings)
	}
}

func TestValidateDraftMeshParameters(t *testing.T) {
	bad := DraftMeshData{AngleDeg: 10, PlaneNormal: vec3.Zero}
	result := ValidateAll(modifierGraph(bad))
	if !hasErrorContaining(result.Errors, "zero vector") {
		t.Errorf("expected a zero normal error, got %v", result.Errors)
	}

	good := DraftMeshData{AngleDeg: 10, PlaneNormal: vec3.T{0, 1, 0}}
	if result := ValidateAll(modifierGraph(good)); !result.OK() {
		t.Errorf("valid draft modifier produced errors: %v", result.Errors)
	}
}

func TestValidateMirrorPlane(t *testing.T) {
	bad := MirrorData{Plane: "xw"}
	result := ValidateAll(modifierGraph(bad))
	if !hasErrorContaining(result.Errors, "mirror plane") {
		t.Errorf("expected a mirror plane error, got %v", result.Errors)
	}

	for _, plane := range []string{"xy", "xz", "yz"} {
		if result := ValidateAll(modifierGraph(MirrorData{Plane: plane})); !result.OK() {
			t.Errorf("plane %q produced errors: %v", plane, result.Errors)
		}
	}
}
