package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// MirrorPlane names an axis-aligned mirror plane through the origin.
type MirrorPlane int

const (
	PlaneXY MirrorPlane = iota // normal +Z
	PlaneXZ                    // normal +Y
	PlaneYZ                    // normal +X
)

// Normal returns the plane's unit normal.
func (p MirrorPlane) Normal() vec3.T {
	switch p {
	case PlaneXY:
		return vec3.T{0, 0, 1}
	case PlaneXZ:
		return vec3.T{0, 1, 0}
	default:
		return vec3.T{1, 0, 0}
	}
}

func (p MirrorPlane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	default:
		return "unknown"
	}
}

// ParseMirrorPlane maps "xy", "xz", "yz" to a MirrorPlane.
func ParseMirrorPlane(name string) (MirrorPlane, bool) {
	switch name {
	case "xy":
		return PlaneXY, true
	case "xz":
		return PlaneXZ, true
	case "yz":
		return PlaneYZ, true
	}
	return 0, false
}

// Translate returns a copy of the mesh offset by the given vector. Winding
// is unaffected.
func Translate(m *Mesh, offset vec3.T) *Mesh {
	out := m.clone()
	for i := range out.Vertices {
		out.Vertices[i].Add(&offset)
	}
	return out
}

// Rotate returns a copy of the mesh rotated by angleDeg around an arbitrary
// axis through center, using Rodrigues' rotation. Winding is unaffected.
func Rotate(m *Mesh, axis vec3.T, angleDeg float64, center vec3.T) *Mesh {
	out := m.clone()
	k := safeNormalize(axis)
	sin, cos := math.Sincos(radians(angleDeg))

	rot := func(v vec3.T) vec3.T {
		kv := vec3.Cross(&k, &v)
		kd := vec3.Dot(&k, &v) * (1 - cos)
		return vec3.T{
			v[0]*cos + kv[0]*sin + k[0]*kd,
			v[1]*cos + kv[1]*sin + k[1]*kd,
			v[2]*cos + kv[2]*sin + k[2]*kd,
		}
	}

	for i, v := range out.Vertices {
		rel := vec3.Sub(&v, &center)
		r := rot(rel)
		out.Vertices[i] = vec3.Add(&r, &center)
	}
	for i, n := range out.Normals {
		out.Normals[i] = rot(n)
	}
	return out
}

// Scale returns a copy of the mesh scaled per-axis about center. A uniform
// scale passes the same factor on every axis. When the product of the three
// factors is negative the mesh is turned inside out, so the winding is
// reversed to keep the outward side consistent.
func Scale(m *Mesh, factor vec3.T, center vec3.T) *Mesh {
	out := m.clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = vec3.T{
			center[0] + (v[0]-center[0])*factor[0],
			center[1] + (v[1]-center[1])*factor[1],
			center[2] + (v[2]-center[2])*factor[2],
		}
	}
	for i, n := range out.Normals {
		out.Normals[i] = safeNormalize(vec3.T{n[0] * factor[0], n[1] * factor[1], n[2] * factor[2]})
	}
	if factor[0]*factor[1]*factor[2] < 0 {
		reverseWinding(out.Indices)
	}
	return out
}

// Mirror reflects the mesh across the plane through the origin with the
// given normal (v' = v - 2(v.n)n). Mirrored triangles get reversed winding.
// When keepOriginal is true the original and mirrored vertex sets are
// concatenated, mirrored indices offset by the original vertex count; the
// result is an intentionally possibly self-intersecting symmetric shape.
func Mirror(m *Mesh, normal vec3.T, keepOriginal bool) *Mesh {
	n := safeNormalize(normal)
	reflect := func(v vec3.T) vec3.T {
		d := 2 * vec3.Dot(&v, &n)
		return vec3.T{v[0] - d*n[0], v[1] - d*n[1], v[2] - d*n[2]}
	}

	mirrored := m.clone()
	for i, v := range mirrored.Vertices {
		mirrored.Vertices[i] = reflect(v)
	}
	for i, nv := range mirrored.Normals {
		mirrored.Normals[i] = reflect(nv)
	}
	reverseWinding(mirrored.Indices)

	if !keepOriginal {
		return mirrored
	}

	out := m.clone()
	offset := uint32(len(out.Vertices))
	out.Vertices = append(out.Vertices, mirrored.Vertices...)
	if out.HasNormals() && mirrored.HasNormals() {
		out.Normals = append(out.Normals, mirrored.Normals...)
	} else {
		out.Normals = nil
	}
	for _, idx := range mirrored.Indices {
		out.Indices = append(out.Indices, idx+offset)
	}
	return out
}

// MirrorAcross reflects the mesh across a named axis-aligned plane.
func MirrorAcross(m *Mesh, plane MirrorPlane, keepOriginal bool) *Mesh {
	return Mirror(m, plane.Normal(), keepOriginal)
}

// TransformDelta is a placement: a scale, a per-axis rotation in degrees
// applied in fixed X then Y then Z order, and a translation, in that order.
// The zero value of each field is treated as identity.
type TransformDelta struct {
	Translation vec3.T
	RotationDeg vec3.T
	Scale       vec3.T
}

// IsIdentity reports whether applying the delta would change nothing.
func (d TransformDelta) IsIdentity() bool {
	return d.Translation == vec3.Zero &&
		d.RotationDeg == vec3.Zero &&
		(d.Scale == vec3.Zero || d.Scale == vec3.T{1, 1, 1})
}

// Apply returns a copy of the mesh with the delta applied about the origin:
// scale, then rotation X, Y, Z, then translation. Each identity component
// is skipped, so chaining deltas stays cheap.
func (d TransformDelta) Apply(m *Mesh) *Mesh {
	out := m
	if d.Scale != vec3.Zero && d.Scale != (vec3.T{1, 1, 1}) {
		out = Scale(out, d.Scale, vec3.Zero)
	}
	if d.RotationDeg[0] != 0 {
		out = Rotate(out, vec3.T{1, 0, 0}, d.RotationDeg[0], vec3.Zero)
	}
	if d.RotationDeg[1] != 0 {
		out = Rotate(out, vec3.T{0, 1, 0}, d.RotationDeg[1], vec3.Zero)
	}
	if d.RotationDeg[2] != 0 {
		out = Rotate(out, vec3.T{0, 0, 1}, d.RotationDeg[2], vec3.Zero)
	}
	if d.Translation != vec3.Zero {
		out = Translate(out, d.Translation)
	}
	if out == m {
		out = m.clone()
	}
	return out
}
