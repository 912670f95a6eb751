package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// The draft engine tapers geometry by a draft angle relative to a pull
// direction or plane, the way molded parts are eased for release. The three
// entry points are deliberately not unified: DraftBox and DraftCylinder
// taper closed-form primitives, DraftMesh rescales existing vertices
// radially per vertex, and DraftExtrude applies one global top-ring scale.

// DefaultDraftSegments is the cylinder segment count used by the DSL layer.
const DefaultDraftSegments = 32

// DraftBox builds a tapered box. The face pointed to by direction has its
// half-extents reduced by tan(angle)*height, clamped to the minimum draft
// dimension. direction selects the pull axis by its dominant component;
// the zero vector defaults to +Y. Fixed 8-vertex/12-triangle topology.
func DraftBox(size, center vec3.T, angleDeg float64, direction vec3.T) *Mesh {
	axis, sign := dominantAxis(direction)
	aAxis := (axis + 1) % 3
	bAxis := (axis + 2) % 3
	if sign < 0 {
		// Swapping the cross axes keeps the winding table outward when
		// the pull direction is negative.
		aAxis, bAxis = bAxis, aAxis
	}

	h := size[axis]
	halfA := size[aAxis] / 2
	halfB := size[bAxis] / 2
	offset := math.Tan(radians(angleDeg)) * h
	topA := math.Max(minDraftClamp, halfA-offset)
	topB := math.Max(minDraftClamp, halfB-offset)

	corner := func(a, b, w float64) vec3.T {
		var v vec3.T
		v[aAxis] = center[aAxis] + a
		v[bAxis] = center[bAxis] + b
		v[axis] = center[axis] + w*sign
		return v
	}

	bottomW := -h / 2
	topW := h / 2
	m := &Mesh{
		Vertices: []vec3.T{
			corner(-halfA, -halfB, bottomW),
			corner(halfA, -halfB, bottomW),
			corner(halfA, halfB, bottomW),
			corner(-halfA, halfB, bottomW),
			corner(-topA, -topB, topW),
			corner(topA, -topB, topW),
			corner(topA, topB, topW),
			corner(-topA, topB, topW),
		},
		Indices: []uint32{
			0, 3, 2, 0, 2, 1, // base
			4, 5, 6, 4, 6, 7, // tapered face
			0, 1, 5, 0, 5, 4,
			1, 2, 6, 1, 6, 5,
			2, 3, 7, 2, 7, 6,
			3, 0, 4, 3, 4, 7,
		},
	}
	return m
}

// DraftCylinder builds a frustum: a cylinder whose top radius is reduced by
// tan(angle)*height, clamped to the minimum draft dimension. The pull
// direction is +Y. Both ends are capped with center fans and each side quad
// is split into two triangles.
func DraftCylinder(radius, height float64, center vec3.T, angleDeg float64, segments int) *Mesh {
	if segments < 3 {
		return &Mesh{}
	}
	topRadius := math.Max(minDraftClamp, radius-math.Tan(radians(angleDeg))*height)
	yBottom := center[1] - height/2
	yTop := center[1] + height/2

	m := &Mesh{
		Vertices: make([]vec3.T, 0, 2*segments+2),
		Indices:  make([]uint32, 0, segments*12),
	}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		m.Vertices = append(m.Vertices, vec3.T{
			center[0] + radius*math.Cos(a),
			yBottom,
			center[2] + radius*math.Sin(a),
		})
	}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		m.Vertices = append(m.Vertices, vec3.T{
			center[0] + topRadius*math.Cos(a),
			yTop,
			center[2] + topRadius*math.Sin(a),
		})
	}

	bottomCenter := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, vec3.T{center[0], yBottom, center[2]})
	topCenter := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, vec3.T{center[0], yTop, center[2]})

	for j := 0; j < segments; j++ {
		j1 := (j + 1) % segments
		b, b1 := uint32(j), uint32(j1)
		t, t1 := uint32(segments+j), uint32(segments+j1)
		m.Indices = append(m.Indices, b, t, t1, b, t1, b1)
		m.Indices = append(m.Indices, bottomCenter, b, b1)
		m.Indices = append(m.Indices, topCenter, t1, t)
	}
	return m
}

// DraftMesh tapers an arbitrary mesh about a pull plane. Each vertex offset
// from planePoint is decomposed into a height component along planeNormal
// and a radial component; the radial component is scaled by
// (radialLength - height*tan(angle)) / radialLength, clamped to the minimum
// draft scale. Vertices with near-zero radial length pass through unscaled.
// Indices and normals are carried over unchanged.
func DraftMesh(m *Mesh, angleDeg float64, planePoint, planeNormal vec3.T) *Mesh {
	out := m.clone()
	n := safeNormalize(planeNormal)
	tan := math.Tan(radians(angleDeg))

	for i, v := range out.Vertices {
		off := vec3.Sub(&v, &planePoint)
		h := vec3.Dot(&off, &n)
		radial := vec3.T{off[0] - h*n[0], off[1] - h*n[1], off[2] - h*n[2]}
		rl := radial.Length()
		if rl < epsRadial {
			continue
		}
		s := math.Max(minDraftClamp, (rl-h*tan)/rl)
		out.Vertices[i] = vec3.T{
			planePoint[0] + h*n[0] + radial[0]*s,
			planePoint[1] + h*n[1] + radial[1]*s,
			planePoint[2] + h*n[2] + radial[2]*s,
		}
	}
	return out
}

// DraftExtrude extrudes a 2D profile upward by height and tapers the top
// ring with one global scale factor derived from the profile's maximum
// radius. This is a deliberate simplification distinct from DraftMesh's
// per-vertex scaling; the two are not to be unified without product
// direction.
func DraftExtrude(profile []vec2.T, height float64, center vec3.T, angleDeg float64) *Mesh {
	p := len(profile)
	if p < 3 {
		return &Mesh{}
	}

	maxRadius := 0.0
	for _, pt := range profile {
		if r := pt.Length(); r > maxRadius {
			maxRadius = r
		}
	}
	topScale := 1.0
	if maxRadius >= epsRadial {
		topScale = math.Max(minDraftClamp, (maxRadius-height*math.Tan(radians(angleDeg)))/maxRadius)
	}

	m := &Mesh{
		Vertices: make([]vec3.T, 0, 2*p+2),
		Indices:  make([]uint32, 0, p*12),
	}
	for _, pt := range profile {
		m.Vertices = append(m.Vertices, vec3.T{center[0] + pt[0], center[1], center[2] + pt[1]})
	}
	for _, pt := range profile {
		m.Vertices = append(m.Vertices, vec3.T{
			center[0] + pt[0]*topScale,
			center[1] + height,
			center[2] + pt[1]*topScale,
		})
	}

	bottomCenter := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, center)
	topCenter := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, vec3.T{center[0], center[1] + height, center[2]})

	for j := 0; j < p; j++ {
		j1 := (j + 1) % p
		b, b1 := uint32(j), uint32(j1)
		t, t1 := uint32(p+j), uint32(p+j1)
		m.Indices = append(m.Indices, b, t, t1, b, t1, b1)
		m.Indices = append(m.Indices, bottomCenter, b, b1)
		m.Indices = append(m.Indices, topCenter, t1, t)
	}
	return m
}

// dominantAxis returns the index and sign of the largest-magnitude
// component of v. The zero vector maps to +Y.
func dominantAxis(v vec3.T) (int, float64) {
	axis := 1
	best := 0.0
	for i := 0; i < 3; i++ {
		if a := math.Abs(v[i]); a > best {
			best = a
			axis = i
		}
	}
	if best == 0 {
		return 1, 1
	}
	if v[axis] < 0 {
		return axis, -1
	}
	return axis, 1
}
