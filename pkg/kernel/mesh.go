// Package kernel is the procedural mesh-generation kernel. It synthesizes
// indexed triangle meshes for parametric solids (torus, helix) and derives
// new meshes from existing ones by sweeping, lofting, draft-angle tapering,
// and rigid/affine transforms.
//
// Every function in this package is pure: inputs are never mutated and each
// call returns freshly allocated output. Callers may invoke any number of
// kernel functions concurrently over disjoint inputs without coordination.
// Parameter validation is the caller's responsibility (see pkg/graph);
// degenerate input produces degenerate geometry rather than an error, with
// the single exception of Loft's profile-count contract.
package kernel

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// Mesh is an indexed triangle mesh. Vertices and the optional Normals slice
// are aligned 1:1; Indices is a flat triangle list (len % 3 == 0) and every
// index is < len(Vertices). Triangles are wound counter-clockwise when
// viewed from the outward side.
type Mesh struct {
	Vertices []vec3.T
	Indices  []uint32
	Normals  []vec3.T
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0
}

// Flatten converts the mesh to the flat float32/uint32 array layout used by
// the rendering collaborator: 3 floats per vertex, 3 floats per normal,
// 3 uint32s per triangle. The normals slice is nil when the mesh has none.
func (m *Mesh) Flatten() (vertices, normals []float32, indices []uint32) {
	vertices = make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		vertices = append(vertices, float32(v[0]), float32(v[1]), float32(v[2]))
	}
	if m.HasNormals() {
		normals = make([]float32, 0, len(m.Normals)*3)
		for _, n := range m.Normals {
			normals = append(normals, float32(n[0]), float32(n[1]), float32(n[2]))
		}
	}
	indices = make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	return vertices, normals, indices
}

// clone returns a deep copy of the mesh. Transform engines operate on the
// copy so that the input mesh is never aliased or mutated.
func (m *Mesh) clone() *Mesh {
	out := &Mesh{
		Vertices: make([]vec3.T, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	if m.Normals != nil {
		out.Normals = make([]vec3.T, len(m.Normals))
		copy(out.Normals, m.Normals)
	}
	return out
}

// reverseWinding flips each triangle (a,b,c) to (a,c,b) in place. Mirror and
// Scale share this single helper so the transform operations cannot drift
// apart in how they correct winding.
func reverseWinding(indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
	}
}
