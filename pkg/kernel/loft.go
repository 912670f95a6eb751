package kernel

import (
	"errors"
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// ErrInsufficientProfiles is returned by Loft when fewer than two profiles
// are supplied. Unlike the sweep and draft engines, which silently produce
// degenerate geometry, an insufficient loft profile count is a contract
// violation the caller must handle.
var ErrInsufficientProfiles = errors.New("loft requires at least 2 profiles")

// Loft builds a surface by interpolating between the given 3D cross-section
// profiles. Profiles are first resampled to the maximum point count using
// index-based linear interpolation along each ring (not arc-length based; a
// known approximation), then interpolationSteps intermediate profiles are
// inserted between each consecutive pair, and the resulting ring stack is
// triangulated like a sweep. Vertex normals are approximated from the cross
// product of adjacent same-ring edges. When closed, both ends are capped
// with a centroid fan; the start cap normal is negated while the end cap
// normal is not.
func Loft(profiles [][]vec3.T, closed bool, interpolationSteps int) (*Mesh, error) {
	if len(profiles) < 2 {
		return nil, fmt.Errorf("loft: got %d profiles: %w", len(profiles), ErrInsufficientProfiles)
	}

	ringSize := 0
	for _, p := range profiles {
		if len(p) > ringSize {
			ringSize = len(p)
		}
	}
	if ringSize < 3 {
		// The count contract is satisfied but the points are unusable;
		// degenerate geometry, matching the other engines.
		return &Mesh{}, nil
	}

	resampled := make([][]vec3.T, len(profiles))
	for i, p := range profiles {
		resampled[i] = resampleRing(p, ringSize)
	}

	rings := interpolateRings(resampled, interpolationSteps)

	m := &Mesh{
		Vertices: make([]vec3.T, 0, len(rings)*ringSize+2),
		Normals:  make([]vec3.T, 0, len(rings)*ringSize+2),
		Indices:  make([]uint32, 0, (len(rings)-1)*ringSize*6+2*ringSize*3),
	}

	for _, ring := range rings {
		for j := range ring {
			m.Vertices = append(m.Vertices, ring[j])

			next := ring[(j+1)%ringSize]
			prev := ring[(j-1+ringSize)%ringSize]
			e1 := vec3.Sub(&next, &ring[j])
			e2 := vec3.Sub(&prev, &ring[j])
			n := vec3.Cross(&e1, &e2)
			m.Normals = append(m.Normals, safeNormalize(n))
		}
	}

	for i := 0; i < len(rings)-1; i++ {
		for j := 0; j < ringSize; j++ {
			j1 := (j + 1) % ringSize
			v0 := uint32(i*ringSize + j)
			v1 := uint32((i+1)*ringSize + j)
			v2 := uint32((i+1)*ringSize + j1)
			v3 := uint32(i*ringSize + j1)
			m.Indices = append(m.Indices, v0, v1, v2, v0, v2, v3)
		}
	}

	if closed {
		addLoftCap(m, rings[0], 0, true)
		addLoftCap(m, rings[len(rings)-1], (len(rings)-1)*ringSize, false)
	}

	return m, nil
}

// resampleRing resamples a closed ring to count points by index-based
// linear interpolation. Rings already at the target count are copied
// verbatim.
func resampleRing(ring []vec3.T, count int) []vec3.T {
	out := make([]vec3.T, count)
	if len(ring) == 0 {
		return out
	}
	if len(ring) == count {
		copy(out, ring)
		return out
	}
	for i := 0; i < count; i++ {
		t := float64(i) * float64(len(ring)) / float64(count)
		idx := int(t) % len(ring)
		next := (idx + 1) % len(ring)
		frac := t - float64(int(t))
		out[i] = vec3.Interpolate(&ring[idx], &ring[next], frac)
	}
	return out
}

// interpolateRings inserts steps linearly-interpolated intermediate rings
// between each consecutive pair.
func interpolateRings(profiles [][]vec3.T, steps int) [][]vec3.T {
	if steps < 1 {
		return profiles
	}
	out := make([][]vec3.T, 0, (len(profiles)-1)*(steps+1)+1)
	for i := 0; i < len(profiles)-1; i++ {
		out = append(out, profiles[i])
		for k := 1; k <= steps; k++ {
			t := float64(k) / float64(steps+1)
			mid := make([]vec3.T, len(profiles[i]))
			for j := range mid {
				mid[j] = vec3.Interpolate(&profiles[i][j], &profiles[i+1][j], t)
			}
			out = append(out, mid)
		}
	}
	return append(out, profiles[len(profiles)-1])
}

// addLoftCap appends a centroid vertex and fan-triangulates the given ring
// to it. The start cap stores the negated ring normal and winds its fan in
// the opposite direction; the end cap does neither. The sign asymmetry is
// observed behavior and is preserved deliberately.
func addLoftCap(m *Mesh, ring []vec3.T, ringBase int, start bool) {
	var centroid vec3.T
	for _, p := range ring {
		centroid[0] += p[0]
		centroid[1] += p[1]
		centroid[2] += p[2]
	}
	inv := 1.0 / float64(len(ring))
	centroid[0] *= inv
	centroid[1] *= inv
	centroid[2] *= inv

	e1 := vec3.Sub(&ring[0], &centroid)
	e2 := vec3.Sub(&ring[1], &centroid)
	normal := vec3.Cross(&e1, &e2)
	normal = safeNormalize(normal)
	if start {
		normal = vec3.T{-normal[0], -normal[1], -normal[2]}
	}

	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, centroid)
	m.Normals = append(m.Normals, normal)

	n := len(ring)
	for j := 0; j < n; j++ {
		j1 := (j + 1) % n
		if start {
			m.Indices = append(m.Indices, center, uint32(ringBase+j1), uint32(ringBase+j))
		} else {
			m.Indices = append(m.Indices, center, uint32(ringBase+j), uint32(ringBase+j1))
		}
	}
}

// LoftCircles lofts a stack of circular cross-sections (cone and frustum
// stacks). The i-th circle has radii[i] and centers[i]; extra entries in
// the longer slice are ignored.
func LoftCircles(radii []float64, centers []vec3.T, segments int, closed bool, interpolationSteps int) (*Mesh, error) {
	n := minInt(len(radii), len(centers))
	profiles := make([][]vec3.T, 0, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, CircleRing(radii[i], centers[i], segments))
	}
	return Loft(profiles, closed, interpolationSteps)
}

// LoftRectToCircle lofts from a rectangular cross-section to a circular
// one. The profile point counts are equalized by Loft's resampling.
func LoftRectToCircle(width, depth float64, rectCenter vec3.T, radius float64, circleCenter vec3.T, segments int, closed bool, interpolationSteps int) (*Mesh, error) {
	return Loft([][]vec3.T{
		RectRing(width, depth, rectCenter),
		CircleRing(radius, circleCenter, segments),
	}, closed, interpolationSteps)
}
