package kernel

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Default segment counts used by the DSL layer when the source omits them.
const (
	DefaultTorusMajorSegments = 32
	DefaultTorusMinorSegments = 16
	DefaultHelixSegments      = 32
	DefaultHelixTubeSegments  = 8
)

// Torus generates a torus mesh centered at center. The vertex grid is
// (majorSegments+1) x (minorSegments+1) in row-major order, one row per
// major ring, with the seam duplicated so texture coordinates stay simple.
// Each grid cell emits the two triangles (a,b,c),(b,d,c); shading depends
// on this exact winding.
//
// Zero or negative radii produce degenerate geometry, not an error.
func Torus(majorRadius, minorRadius float64, center vec3.T, majorSegments, minorSegments int) *Mesh {
	if majorSegments < 1 || minorSegments < 1 {
		return &Mesh{}
	}

	rows := majorSegments + 1
	cols := minorSegments + 1
	m := &Mesh{
		Vertices: make([]vec3.T, 0, rows*cols),
		Normals:  make([]vec3.T, 0, rows*cols),
		Indices:  make([]uint32, 0, majorSegments*minorSegments*6),
	}

	for i := 0; i < rows; i++ {
		u := 2 * math.Pi * float64(i) / float64(majorSegments)
		cu, su := math.Cos(u), math.Sin(u)
		for j := 0; j < cols; j++ {
			v := 2 * math.Pi * float64(j) / float64(minorSegments)
			cv, sv := math.Cos(v), math.Sin(v)

			ring := majorRadius + minorRadius*cv
			m.Vertices = append(m.Vertices, vec3.T{
				center[0] + ring*cu,
				center[1] + minorRadius*sv,
				center[2] + ring*su,
			})
			// The tube normal points from the ring-center circle to the vertex.
			m.Normals = append(m.Normals, vec3.T{cv * cu, sv, cv * su})
		}
	}

	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			a := uint32(i*cols + j)
			b := uint32((i+1)*cols + j)
			c := a + 1
			d := b + 1
			m.Indices = append(m.Indices, a, b, c, b, d, c)
		}
	}

	return m
}

// Helix generates a circular tube swept along a helical centerline. The
// centerline walks t in [0,1] over segments*turns samples; pitch is the
// height gained per turn and the result is centered vertically on center.
// The tube frame comes from the analytic tangent and the radial direction,
// and each grid cell uses the same (a,b,c),(b,d,c) winding as Torus.
//
// Zero turns or radius produce degenerate geometry, not an error.
func Helix(radius, pitch, turns, tubeRadius float64, center vec3.T, segments, tubeSegments int) *Mesh {
	samples := int(float64(segments) * turns)
	if samples < 1 || tubeSegments < 1 {
		return &Mesh{}
	}

	rows := samples + 1
	cols := tubeSegments + 1
	totalHeight := pitch * turns
	m := &Mesh{
		Vertices: make([]vec3.T, 0, rows*cols),
		Normals:  make([]vec3.T, 0, rows*cols),
		Indices:  make([]uint32, 0, samples*tubeSegments*6),
	}

	for i := 0; i < rows; i++ {
		t := float64(i) / float64(samples)
		angle := 2 * math.Pi * turns * t
		ca, sa := math.Cos(angle), math.Sin(angle)

		p := vec3.T{
			center[0] + radius*ca,
			center[1] + (t-0.5)*totalHeight,
			center[2] + radius*sa,
		}

		// Analytic derivative of the centerline with respect to t.
		tangent := safeNormalize(vec3.T{
			-2 * math.Pi * turns * radius * sa,
			totalHeight,
			2 * math.Pi * turns * radius * ca,
		})
		normal := vec3.T{ca, 0, sa} // radial direction
		binormal := vec3.Cross(&tangent, &normal)
		binormal = safeNormalize(binormal)

		for j := 0; j < cols; j++ {
			phi := 2 * math.Pi * float64(j) / float64(tubeSegments)
			cp, sp := math.Cos(phi), math.Sin(phi)

			dir := vec3.T{
				normal[0]*cp + binormal[0]*sp,
				normal[1]*cp + binormal[1]*sp,
				normal[2]*cp + binormal[2]*sp,
			}
			m.Vertices = append(m.Vertices, vec3.T{
				p[0] + dir[0]*tubeRadius,
				p[1] + dir[1]*tubeRadius,
				p[2] + dir[2]*tubeRadius,
			})
			m.Normals = append(m.Normals, dir)
		}
	}

	for i := 0; i < samples; i++ {
		for j := 0; j < tubeSegments; j++ {
			a := uint32(i*cols + j)
			b := uint32((i+1)*cols + j)
			c := a + 1
			d := b + 1
			m.Indices = append(m.Indices, a, b, c, b, d, c)
		}
	}

	return m
}
