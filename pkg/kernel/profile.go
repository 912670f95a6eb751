package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// A profile is an ordered ring of points forming one cross-section. The
// last point implicitly connects back to the first; no seam vertex is
// duplicated. 2D profiles feed the sweep engine, 3D profiles feed the
// loft engine.

// CircleProfile returns a 2D circular ring with the given number of points.
// Fewer than 3 segments yields an empty profile.
func CircleProfile(radius float64, segments int) []vec2.T {
	if segments < 3 {
		return nil
	}
	pts := make([]vec2.T, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = vec2.T{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return pts
}

// RectProfile returns a 2D rectangular ring of 4 corners, centered on the
// origin, wound counter-clockwise.
func RectProfile(width, height float64) []vec2.T {
	hw, hh := width/2, height/2
	return []vec2.T{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
}

// CircleRing returns a 3D circular ring in the XZ plane at center, for use
// as a loft cross-section.
func CircleRing(radius float64, center vec3.T, segments int) []vec3.T {
	if segments < 3 {
		return nil
	}
	pts := make([]vec3.T, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = vec3.T{
			center[0] + radius*math.Cos(a),
			center[1],
			center[2] + radius*math.Sin(a),
		}
	}
	return pts
}

// RectRing returns a 3D rectangular ring of 4 corners in the XZ plane at
// center.
func RectRing(width, depth float64, center vec3.T) []vec3.T {
	hw, hd := width/2, depth/2
	return []vec3.T{
		{center[0] - hw, center[1], center[2] - hd},
		{center[0] + hw, center[1], center[2] - hd},
		{center[0] + hw, center[1], center[2] + hd},
		{center[0] - hw, center[1], center[2] + hd},
	}
}
