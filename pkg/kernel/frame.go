package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Frame is an orthonormal (tangent, normal, binormal) basis attached to a
// path sample. Frames are computed on demand and never persisted.
type Frame struct {
	T vec3.T
	N vec3.T
	B vec3.T
}

// FrameAt computes the frame at path[index]. Interior tangents use a
// central difference of the neighboring samples; the endpoints use a
// one-sided difference. The reference up vector is +Y, switching to +X when
// |T.y| exceeds the near-parallel threshold.
//
// This is a simplified frame without rotation-minimizing continuity: a
// profile swept through rapid tangent changes near the up threshold can
// show a visible twist. That is a documented limitation, not a defect.
func FrameAt(path []vec3.T, index int) Frame {
	var tangent vec3.T
	switch {
	case len(path) < 2:
		tangent = vec3.T{0, 1, 0}
	case index <= 0:
		tangent = vec3.Sub(&path[1], &path[0])
	case index >= len(path)-1:
		tangent = vec3.Sub(&path[len(path)-1], &path[len(path)-2])
	default:
		tangent = vec3.Sub(&path[index+1], &path[index-1])
	}
	tangent = safeNormalize(tangent)

	up := vec3.T{0, 1, 0}
	if math.Abs(tangent[1]) > upThreshold {
		up = vec3.T{1, 0, 0}
	}

	normal := vec3.Cross(&tangent, &up)
	normal = safeNormalize(normal)
	binormal := vec3.Cross(&tangent, &normal)
	binormal = safeNormalize(binormal)

	return Frame{T: tangent, N: normal, B: binormal}
}
