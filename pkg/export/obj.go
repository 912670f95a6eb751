package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/swarf/pkg/tessellate"
)

// WriteOBJ writes parts as a Wavefront OBJ document, one named object per
// part. Vertex and normal indices are 1-based and accumulate across parts
// in separate index spaces; only parts that carry normals advance the
// normal offset.
func WriteOBJ(w io.Writer, parts []tessellate.Part) error {
	bw := bufio.NewWriter(w)

	vertexOffset := 1
	normalOffset := 1
	for _, p := range parts {
		m := p.Mesh
		if m == nil || m.IsEmpty() {
			continue
		}

		if _, err := fmt.Fprintf(bw, "o %s\n", p.Name); err != nil {
			return fmt.Errorf("obj: %w", err)
		}

		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
		}

		hasNormals := m.HasNormals()
		if hasNormals {
			for _, n := range m.Normals {
				fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
			}
		}

		for i := 0; i+2 < len(m.Indices); i += 3 {
			a := int(m.Indices[i])
			b := int(m.Indices[i+1])
			c := int(m.Indices[i+2])
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
					a+vertexOffset, a+normalOffset,
					b+vertexOffset, b+normalOffset,
					c+vertexOffset, c+normalOffset)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n",
					a+vertexOffset, b+vertexOffset, c+vertexOffset)
			}
		}

		vertexOffset += m.VertexCount()
		if hasNormals {
			normalOffset += m.VertexCount()
		}
	}

	return bw.Flush()
}
