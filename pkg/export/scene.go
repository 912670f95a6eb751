package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/swarf/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// MeshData is the JSON-serializable mesh format consumed by viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// Scene is the full JSON document: every part mesh in flat-array form.
type Scene struct {
	Meshes []MeshData `json:"meshes"`
}

// BuildScene flattens parts into a Scene, cycling the color palette.
func BuildScene(parts []tessellate.Part) Scene {
	scene := Scene{Meshes: []MeshData{}}
	for i, p := range parts {
		if p.Mesh == nil {
			continue
		}
		vertices, normals, indices := p.Mesh.Flatten()
		scene.Meshes = append(scene.Meshes, MeshData{
			Vertices: vertices,
			Normals:  normals,
			Indices:  indices,
			PartName: p.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return scene
}

// WriteSceneJSON writes the parts as an indented JSON scene document.
func WriteSceneJSON(w io.Writer, parts []tessellate.Part) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildScene(parts)); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}
