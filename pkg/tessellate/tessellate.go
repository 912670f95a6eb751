// Package tessellate walks a design graph and produces triangle meshes
// using the geometry kernel. One mesh is produced per part.
package tessellate

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chazu/swarf/pkg/graph"
	"github.com/chazu/swarf/pkg/kernel"
)

// Part is one tessellated part: a mesh tagged with the node it came from.
type Part struct {
	Name   string
	NodeID graph.NodeID
	Mesh   *kernel.Mesh
}

// Tessellate walks the design graph and produces one triangle mesh per
// shape node reachable from the roots. The tessellator is read-only and
// never mutates the graph.
func Tessellate(g *graph.DesignGraph) ([]Part, error) {
	if g == nil {
		return nil, nil
	}

	var parts []Part
	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := walkNode(g, root)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		parts = append(parts, collected...)
	}

	return parts, nil
}

// walkNode recursively traverses a node and its children, collecting parts.
// Transform and modifier nodes recurse first and rewrite the collected
// meshes on the way back up.
func walkNode(g *graph.DesignGraph, n *graph.Node) ([]Part, error) {
	switch n.Kind {
	case graph.NodePrimitive:
		return handlePrimitive(n)

	case graph.NodeSweep:
		return handleSweep(n)

	case graph.NodeLoft:
		return handleLoft(n)

	case graph.NodeDraft:
		return handleDraft(n)

	case graph.NodeTransform:
		return handleTransform(g, n)

	case graph.NodeModifier:
		return handleModifier(g, n)

	case graph.NodeGroup:
		return handleGroup(g, n)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// partOf wraps a mesh for a node, preferring the node's name over its ID.
func partOf(n *graph.Node, m *kernel.Mesh) []Part {
	name := n.Name
	if name == "" {
		name = n.ID.Short()
	}
	return []Part{{Name: name, NodeID: n.ID, Mesh: m}}
}

func handlePrimitive(n *graph.Node) ([]Part, error) {
	switch data := n.Data.(type) {
	case graph.TorusData:
		m := kernel.Torus(data.MajorRadius, data.MinorRadius, data.Center,
			data.MajorSegments, data.MinorSegments)
		return partOf(n, m), nil
	case graph.HelixData:
		m := kernel.Helix(data.Radius, data.Pitch, data.Turns, data.TubeRadius,
			data.Center, data.Segments, data.TubeSegments)
		return partOf(n, m), nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

func handleSweep(n *graph.Node) ([]Part, error) {
	data, ok := n.Data.(graph.SweepData)
	if !ok {
		return nil, fmt.Errorf("sweep node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	m := kernel.Sweep(buildProfile(data.Profile), buildPath(data.Path), data.Closed)
	return partOf(n, m), nil
}

func handleLoft(n *graph.Node) ([]Part, error) {
	data, ok := n.Data.(graph.LoftData)
	if !ok {
		return nil, fmt.Errorf("loft node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	rings := make([][]vec3.T, 0, len(data.Rings))
	for _, spec := range data.Rings {
		rings = append(rings, buildRing(spec))
	}

	m, err := kernel.Loft(rings, data.Closed, data.Steps)
	if err != nil {
		return nil, fmt.Errorf("loft failed for node %s: %w", n.ID.Short(), err)
	}
	return partOf(n, m), nil
}

func handleDraft(n *graph.Node) ([]Part, error) {
	switch data := n.Data.(type) {
	case graph.DraftBoxData:
		m := kernel.DraftBox(data.Size, data.Center, data.AngleDeg, data.Direction)
		return partOf(n, m), nil
	case graph.DraftCylinderData:
		m := kernel.DraftCylinder(data.Radius, data.Height, data.Center,
			data.AngleDeg, data.Segments)
		return partOf(n, m), nil
	case graph.DraftExtrudeData:
		m := kernel.DraftExtrude(buildProfile(data.Profile), data.Height,
			data.Center, data.AngleDeg)
		return partOf(n, m), nil
	default:
		return nil, fmt.Errorf("draft node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

// handleTransform collects the child's parts and applies the delta to each.
func handleTransform(g *graph.DesignGraph, n *graph.Node) ([]Part, error) {
	data, ok := n.Data.(graph.DeltaData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	delta := deltaFrom(data)

	var parts []Part
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, child)
		if err != nil {
			return nil, err
		}
		for _, p := range collected {
			p.Mesh = delta.Apply(p.Mesh)
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// handleModifier applies a mirror or per-mesh draft to the child's parts.
func handleModifier(g *graph.DesignGraph, n *graph.Node) ([]Part, error) {
	var apply func(*kernel.Mesh) (*kernel.Mesh, error)

	switch data := n.Data.(type) {
	case graph.MirrorData:
		plane, ok := kernel.ParseMirrorPlane(data.Plane)
		if !ok {
			return nil, fmt.Errorf("modifier node %s has unknown mirror plane %q", n.ID.Short(), data.Plane)
		}
		apply = func(m *kernel.Mesh) (*kernel.Mesh, error) {
			return kernel.MirrorAcross(m, plane, data.KeepOriginal), nil
		}
	case graph.DraftMeshData:
		apply = func(m *kernel.Mesh) (*kernel.Mesh, error) {
			return kernel.DraftMesh(m, data.AngleDeg, data.PlanePoint, data.PlaneNormal), nil
		}
	default:
		return nil, fmt.Errorf("modifier node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}

	var parts []Part
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, child)
		if err != nil {
			return nil, err
		}
		for _, p := range collected {
			m, err := apply(p.Mesh)
			if err != nil {
				return nil, err
			}
			p.Mesh = m
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// handleGroup recurses into children transparently.
func handleGroup(g *graph.DesignGraph, n *graph.Node) ([]Part, error) {
	var parts []Part
	for _, child := range g.Children(n) {
		collected, err := walkNode(g, child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, collected...)
	}
	return parts, nil
}

// buildProfile realizes a 2D profile spec as kernel input.
func buildProfile(spec graph.ProfileSpec) []vec2.T {
	switch spec.Kind {
	case graph.ProfileRect:
		return kernel.RectProfile(spec.Width, spec.Height)
	default:
		return kernel.CircleProfile(spec.Radius, spec.Segments)
	}
}

// buildRing realizes a 3D ring spec as kernel input.
func buildRing(spec graph.RingSpec) []vec3.T {
	switch spec.Kind {
	case graph.ProfileRect:
		return kernel.RectRing(spec.Width, spec.Depth, spec.Center)
	default:
		return kernel.CircleRing(spec.Radius, spec.Center, spec.Segments)
	}
}

// buildPath realizes a path spec as kernel input.
func buildPath(spec graph.PathSpec) []vec3.T {
	switch spec.Kind {
	case graph.PathCurve:
		return kernel.CatmullRomPath(spec.Points, spec.SamplesPerSegment)
	default:
		return kernel.LinePath(spec.From, spec.To, spec.Segments)
	}
}

// deltaFrom converts optional graph transform fields into a kernel delta.
func deltaFrom(d graph.DeltaData) kernel.TransformDelta {
	var delta kernel.TransformDelta
	if d.Translation != nil {
		delta.Translation = *d.Translation
	}
	if d.RotationDeg != nil {
		delta.RotationDeg = *d.RotationDeg
	}
	if d.Scale != nil {
		delta.Scale = *d.Scale
	}
	return delta
}
