package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Shared numeric thresholds. These are part of observed behavior and must
// stay identical across every engine that uses them.
const (
	// epsRadial is the near-zero radial length below which DraftMesh
	// passes a vertex through unscaled.
	epsRadial = 0.001

	// upThreshold is the |T.y| value above which the frame transport
	// switches its reference "up" vector from +Y to +X.
	upThreshold = 0.9

	// minDraftClamp is the smallest dimension or scale factor the draft
	// engines will taper down to.
	minDraftClamp = 0.01
)

// safeNormalize returns v normalized, or the zero vector when v is too
// short to normalize. Degenerate tangents on zero-length path segments
// must not produce NaNs that poison every downstream vertex.
func safeNormalize(v vec3.T) vec3.T {
	if v.LengthSqr() < 1e-12 {
		return vec3.Zero
	}
	v.Normalize()
	return v
}

// radians converts degrees to radians. Every public angle parameter in the
// kernel is in degrees, matching the upstream DSL.
func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
