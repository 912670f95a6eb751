package kernel

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// A path is an ordered polyline approximating a 3D space curve, sampled
// finely enough that a local tangent approximation is valid.

// LinePath returns segments+1 evenly spaced samples from from to to.
// Zero or negative segments yields a single-point path.
func LinePath(from, to vec3.T, segments int) []vec3.T {
	if segments < 1 {
		return []vec3.T{from}
	}
	pts := make([]vec3.T, segments+1)
	for i := range pts {
		t := float64(i) / float64(segments)
		pts[i] = vec3.Interpolate(&from, &to, t)
	}
	return pts
}

// CatmullRomPath interpolates a smooth polyline through the given control
// points, emitting samplesPerSegment samples per span plus the final point.
// End tangents are clamped by duplicating the first and last control points.
// Fewer than 2 control points are returned unchanged.
func CatmullRomPath(points []vec3.T, samplesPerSegment int) []vec3.T {
	if len(points) < 2 || samplesPerSegment < 1 {
		out := make([]vec3.T, len(points))
		copy(out, points)
		return out
	}

	out := make([]vec3.T, 0, (len(points)-1)*samplesPerSegment+1)
	for i := 0; i < len(points)-1; i++ {
		p0 := points[maxInt(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(i+2, len(points)-1)]

		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	out = append(out, points[len(points)-1])
	return out
}

// catmullRom evaluates the uniform Catmull-Rom spline for one span.
func catmullRom(p0, p1, p2, p3 vec3.T, t float64) vec3.T {
	t2 := t * t
	t3 := t2 * t

	var out vec3.T
	for k := 0; k < 3; k++ {
		out[k] = 0.5 * ((2 * p1[k]) +
			(-p0[k]+p2[k])*t +
			(2*p0[k]-5*p1[k]+4*p2[k]-p3[k])*t2 +
			(-p0[k]+3*p1[k]-3*p2[k]+p3[k])*t3)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
