package graph

import "github.com/ungerik/go3d/float64/vec3"

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between generated primitives.
type PrimitiveKind int

const (
	PrimTorus PrimitiveKind = iota
	PrimHelix
)

// TorusData describes a torus around the Y axis.
type TorusData struct {
	PrimKind      PrimitiveKind `json:"prim_kind"`
	MajorRadius   float64       `json:"major_radius"`
	MinorRadius   float64       `json:"minor_radius"`
	Center        vec3.T        `json:"center"`
	MajorSegments int           `json:"major_segments"`
	MinorSegments int           `json:"minor_segments"`
}

func (TorusData) nodeData() {}

// HelixData describes a tube following a helical centerline.
type HelixData struct {
	PrimKind     PrimitiveKind `json:"prim_kind"`
	Radius       float64       `json:"radius"`
	Pitch        float64       `json:"pitch"`
	Turns        float64       `json:"turns"`
	TubeRadius   float64       `json:"tube_radius"`
	Center       vec3.T        `json:"center"`
	Segments     int           `json:"segments"`
	TubeSegments int           `json:"tube_segments"`
}

func (HelixData) nodeData() {}

// ---------------------------------------------------------------------------
// Profiles, rings, paths
// ---------------------------------------------------------------------------

// ProfileKind distinguishes between 2D cross-section shapes.
type ProfileKind int

const (
	ProfileCircle ProfileKind = iota
	ProfileRect
)

func (k ProfileKind) String() string {
	switch k {
	case ProfileCircle:
		return "circle"
	case ProfileRect:
		return "rect"
	default:
		return "unknown"
	}
}

// ProfileSpec describes a 2D cross-section in local (u,v) coordinates.
// Circle profiles use Radius and Segments; rect profiles use Width and
// Height.
type ProfileSpec struct {
	Kind     ProfileKind `json:"kind"`
	Radius   float64     `json:"radius,omitempty"`
	Width    float64     `json:"width,omitempty"`
	Height   float64     `json:"height,omitempty"`
	Segments int         `json:"segments,omitempty"`
}

// RingSpec describes a closed 3D cross-section ring for lofting.
// Circle rings use Radius and Segments; rect rings use Width and Depth.
type RingSpec struct {
	Kind     ProfileKind `json:"kind"`
	Radius   float64     `json:"radius,omitempty"`
	Width    float64     `json:"width,omitempty"`
	Depth    float64     `json:"depth,omitempty"`
	Center   vec3.T      `json:"center"`
	Segments int         `json:"segments,omitempty"`
}

// PathKind distinguishes between path generators.
type PathKind int

const (
	PathLine PathKind = iota
	PathCurve
)

// PathSpec describes a polyline sampling. Line paths use From, To and
// Segments; curve paths use Points and SamplesPerSegment.
type PathSpec struct {
	Kind              PathKind `json:"kind"`
	From              vec3.T   `json:"from,omitempty"`
	To                vec3.T   `json:"to,omitempty"`
	Segments          int      `json:"segments,omitempty"`
	Points            []vec3.T `json:"points,omitempty"`
	SamplesPerSegment int      `json:"samples_per_segment,omitempty"`
}

// ---------------------------------------------------------------------------
// Sweep and loft
// ---------------------------------------------------------------------------

// SweepData describes a profile swept along a path.
// Created by the (sweep ...), (pipe ...) and (rail ...) Lisp forms.
type SweepData struct {
	Profile ProfileSpec `json:"profile"`
	Path    PathSpec    `json:"path"`
	Closed  bool        `json:"closed"`
}

func (SweepData) nodeData() {}

// LoftData describes a surface lofted through a stack of rings.
// Created by the (loft ...) Lisp form.
type LoftData struct {
	Rings  []RingSpec `json:"rings"`
	Closed bool       `json:"closed"`
	Steps  int        `json:"steps"` // interpolated rings inserted per pair
}

func (LoftData) nodeData() {}

// ---------------------------------------------------------------------------
// Draft
// ---------------------------------------------------------------------------

// DraftBoxData describes a tapered box.
type DraftBoxData struct {
	Size      vec3.T  `json:"size"`
	Center    vec3.T  `json:"center"`
	AngleDeg  float64 `json:"angle_deg"`
	Direction vec3.T  `json:"direction"` // pull direction; zero means +Y
}

func (DraftBoxData) nodeData() {}

// DraftCylinderData describes a tapered cylinder (frustum).
type DraftCylinderData struct {
	Radius   float64 `json:"radius"`
	Height   float64 `json:"height"`
	Center   vec3.T  `json:"center"`
	AngleDeg float64 `json:"angle_deg"`
	Segments int     `json:"segments"`
}

func (DraftCylinderData) nodeData() {}

// DraftExtrudeData describes a tapered extrusion of a 2D profile.
type DraftExtrudeData struct {
	Profile  ProfileSpec `json:"profile"`
	Height   float64     `json:"height"`
	Center   vec3.T      `json:"center"`
	AngleDeg float64     `json:"angle_deg"`
}

func (DraftExtrudeData) nodeData() {}

// DraftMeshData tapers the child node's meshes about a pull plane.
// Created by the (draft ...) Lisp form; always a modifier with one child.
type DraftMeshData struct {
	AngleDeg    float64 `json:"angle_deg"`
	PlanePoint  vec3.T  `json:"plane_point"`
	PlaneNormal vec3.T  `json:"plane_normal"`
}

func (DraftMeshData) nodeData() {}

// ---------------------------------------------------------------------------
// Modifiers and placement
// ---------------------------------------------------------------------------

// MirrorData reflects the child node's meshes across a named axis-aligned
// plane ("xy", "xz" or "yz").
type MirrorData struct {
	Plane        string `json:"plane"`
	KeepOriginal bool   `json:"keep_original"`
}

func (MirrorData) nodeData() {}

// DeltaData represents a spatial placement applied to a child node.
// Created by the (place ...) Lisp form. Nil fields are identity.
type DeltaData struct {
	Translation *vec3.T `json:"translation,omitempty"`
	RotationDeg *vec3.T `json:"rotation_deg,omitempty"` // Euler angles, X then Y then Z
	Scale       *vec3.T `json:"scale,omitempty"`
}

func (DeltaData) nodeData() {}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping (assembly, subassembly).
// Created by the (assembly ...) Lisp form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
