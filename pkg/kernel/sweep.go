package kernel

import (
	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Sweep extrudes a closed 2D profile along a path. Each path sample gets a
// transported frame and the profile point (u,v) maps to
// sample + u*N + v*B. Side walls connect consecutive rings with two
// triangles per quad, wound (v0,v1,v2),(v0,v2,v3). When closed, one
// cap-center vertex is added per endpoint, its normal approximated from the
// adjacent path direction, and the end rings are fan-triangulated to it.
//
// A path shorter than 2 samples or a profile shorter than 3 points yields
// an empty mesh, not an error.
func Sweep(profile []vec2.T, path []vec3.T, closed bool) *Mesh {
	if len(path) < 2 || len(profile) < 3 {
		return &Mesh{}
	}

	p := len(profile)
	rings := len(path)
	m := &Mesh{
		Vertices: make([]vec3.T, 0, rings*p+2),
		Normals:  make([]vec3.T, 0, rings*p+2),
		Indices:  make([]uint32, 0, (rings-1)*p*6+2*p*3),
	}

	for i := 0; i < rings; i++ {
		f := FrameAt(path, i)
		for _, pt := range profile {
			u, v := pt[0], pt[1]
			vert := vec3.T{
				path[i][0] + u*f.N[0] + v*f.B[0],
				path[i][1] + u*f.N[1] + v*f.B[1],
				path[i][2] + u*f.N[2] + v*f.B[2],
			}
			m.Vertices = append(m.Vertices, vert)
			n := vec3.Sub(&vert, &path[i])
			m.Normals = append(m.Normals, safeNormalize(n))
		}
	}

	for i := 0; i < rings-1; i++ {
		for j := 0; j < p; j++ {
			j1 := (j + 1) % p
			v0 := uint32(i*p + j)
			v1 := uint32((i+1)*p + j)
			v2 := uint32((i+1)*p + j1)
			v3 := uint32(i*p + j1)
			m.Indices = append(m.Indices, v0, v1, v2, v0, v2, v3)
		}
	}

	if closed {
		startNormal := vec3.Sub(&path[0], &path[1])
		endNormal := vec3.Sub(&path[rings-1], &path[rings-2])

		startCenter := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, path[0])
		m.Normals = append(m.Normals, safeNormalize(startNormal))

		endCenter := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, path[rings-1])
		m.Normals = append(m.Normals, safeNormalize(endNormal))

		lastRing := (rings - 1) * p
		for j := 0; j < p; j++ {
			j1 := (j + 1) % p
			// Start cap faces backward along the path, so its fan is
			// wound opposite to the end cap.
			m.Indices = append(m.Indices, startCenter, uint32(j1), uint32(j))
			m.Indices = append(m.Indices, endCenter, uint32(lastRing+j), uint32(lastRing+j1))
		}
	}

	return m
}

// Pipe sweeps a circular profile along the path.
func Pipe(radius float64, segments int, path []vec3.T, closed bool) *Mesh {
	return Sweep(CircleProfile(radius, segments), path, closed)
}

// Rail sweeps a rectangular profile along the path.
func Rail(width, height float64, path []vec3.T, closed bool) *Mesh {
	return Sweep(RectProfile(width, height), path, closed)
}
