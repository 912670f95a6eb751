package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/swarf/pkg/tessellate"
)

// stlRecordSize is the byte length of one binary STL facet record:
// 4 floats x 4 vectors plus a 2-byte attribute count.
const stlRecordSize = 50

// WriteSTLBinary writes all parts as a single binary STL solid.
// The name is embedded in the 80-byte header, truncated if needed.
func WriteSTLBinary(w io.Writer, name string, parts []tessellate.Part) error {
	var tris []sdf.Triangle3
	for _, p := range parts {
		tris = append(tris, Triangles(p.Mesh)...)
	}

	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(len(tris)))
	if _, err := bw.Write(count[:]); err != nil {
		return fmt.Errorf("stl: write count: %w", err)
	}

	var record [stlRecordSize]byte
	for _, tri := range tris {
		n := tri.Normal()
		off := 0
		for _, f := range []float64{
			n.X, n.Y, n.Z,
			tri[0].X, tri[0].Y, tri[0].Z,
			tri[1].X, tri[1].Y, tri[1].Z,
			tri[2].X, tri[2].Y, tri[2].Z,
		} {
			binary.LittleEndian.PutUint32(record[off:], math.Float32bits(float32(f)))
			off += 4
		}
		record[off] = 0
		record[off+1] = 0
		if _, err := bw.Write(record[:]); err != nil {
			return fmt.Errorf("stl: write facet: %w", err)
		}
	}

	return bw.Flush()
}

// WriteSTLASCII writes all parts as a single ASCII STL solid.
func WriteSTLASCII(w io.Writer, name string, parts []tessellate.Part) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return fmt.Errorf("stl: %w", err)
	}

	for _, p := range parts {
		for _, tri := range Triangles(p.Mesh) {
			n := tri.Normal()
			fmt.Fprintf(bw, "facet normal %e %e %e\n", n.X, n.Y, n.Z)
			fmt.Fprintf(bw, "  outer loop\n")
			for _, v := range tri {
				fmt.Fprintf(bw, "    vertex %e %e %e\n", v.X, v.Y, v.Z)
			}
			fmt.Fprintf(bw, "  endloop\n")
			fmt.Fprintf(bw, "endfacet\n")
		}
	}

	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	return bw.Flush()
}
