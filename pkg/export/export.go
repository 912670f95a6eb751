// Package export serializes tessellated parts to interchange formats:
// binary and ASCII STL, Wavefront OBJ, and a JSON scene for viewers.
package export

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/swarf/pkg/kernel"
)

// degenerateAreaSqr is the squared-area cutoff below which a triangle is
// dropped from triangle-soup output. STL consumers reject zero-area facets.
const degenerateAreaSqr = 1e-18

// Triangles expands an indexed mesh into a triangle soup, skipping
// degenerate (zero-area) triangles.
func Triangles(m *kernel.Mesh) []sdf.Triangle3 {
	if m == nil || m.IsEmpty() {
		return nil
	}

	tris := make([]sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]

		if crossLengthSqr(a, b, c) < degenerateAreaSqr {
			continue
		}

		tris = append(tris, sdf.Triangle3{
			v3.Vec{X: a[0], Y: a[1], Z: a[2]},
			v3.Vec{X: b[0], Y: b[1], Z: b[2]},
			v3.Vec{X: c[0], Y: c[1], Z: c[2]},
		})
	}
	return tris
}

// crossLengthSqr returns |AB x AC|^2, which is 4 * area^2 of triangle ABC.
func crossLengthSqr(a, b, c [3]float64) float64 {
	abx, aby, abz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	acx, acy, acz := c[0]-a[0], c[1]-a[1], c[2]-a[2]

	cx := aby*acz - abz*acy
	cy := abz*acx - abx*acz
	cz := abx*acy - aby*acx
	return cx*cx + cy*cy + cz*cz
}
