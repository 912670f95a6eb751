package graph

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// ---------------------------------------------------------------------------
// Tier 2 — Parameter validation (errors + warnings)
// ---------------------------------------------------------------------------

// The mesh kernel degenerates silently on unusable input, so this tier
// is the only place nonsense parameters are surfaced to the user.

const (
	// minRingSegments is the smallest segment count that still encloses
	// area; below it a validation error is emitted.
	minRingSegments = 3
	// coarseSegments is the threshold under which a warning about
	// visibly faceted output is emitted.
	coarseSegments = 8
	// maxDraftAngle is the draft angle (degrees) at or beyond which the
	// taper geometry stops being meaningful.
	maxDraftAngle = 90
)

// validateParameters runs all Tier 2 parameter checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateParameters(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case TorusData:
			e, w := checkTorus(node.ID, d)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		case HelixData:
			e, w := checkHelix(node.ID, d)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		case SweepData:
			errs = append(errs, checkProfile(node.ID, d.Profile)...)
			errs = append(errs, checkPath(node.ID, d.Path)...)
		case LoftData:
			e, w := checkLoft(node.ID, d)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		case DraftBoxData:
			errs = append(errs, checkPositive(node.ID, "box size x", d.Size[0])...)
			errs = append(errs, checkPositive(node.ID, "box size y", d.Size[1])...)
			errs = append(errs, checkPositive(node.ID, "box size z", d.Size[2])...)
			warnings = append(warnings, checkDraftAngle(node.ID, d.AngleDeg)...)
		case DraftCylinderData:
			errs = append(errs, checkPositive(node.ID, "cylinder radius", d.Radius)...)
			errs = append(errs, checkPositive(node.ID, "cylinder height", d.Height)...)
			errs = append(errs, checkSegments(node.ID, "cylinder segments", d.Segments)...)
			warnings = append(warnings, checkDraftAngle(node.ID, d.AngleDeg)...)
		case DraftExtrudeData:
			errs = append(errs, checkProfile(node.ID, d.Profile)...)
			errs = append(errs, checkPositive(node.ID, "extrude height", d.Height)...)
			warnings = append(warnings, checkDraftAngle(node.ID, d.AngleDeg)...)
		case DraftMeshData:
			warnings = append(warnings, checkDraftAngle(node.ID, d.AngleDeg)...)
			if d.PlaneNormal == vec3.Zero {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  "draft plane normal is the zero vector",
					Severity: SeverityError,
				})
			}
		case MirrorData:
			if d.Plane != "xy" && d.Plane != "xz" && d.Plane != "yz" {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("mirror plane %q is not one of xy, xz, yz", d.Plane),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs, warnings
}

func checkTorus(id NodeID, d TorusData) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, checkPositive(id, "torus major radius", d.MajorRadius)...)
	errs = append(errs, checkPositive(id, "torus minor radius", d.MinorRadius)...)
	errs = append(errs, checkSegments(id, "torus major segments", d.MajorSegments)...)
	errs = append(errs, checkSegments(id, "torus minor segments", d.MinorSegments)...)
	warnings = append(warnings, checkCoarse(id, "torus major segments", d.MajorSegments)...)
	warnings = append(warnings, checkCoarse(id, "torus minor segments", d.MinorSegments)...)

	if d.MinorRadius >= d.MajorRadius && d.MajorRadius > 0 {
		warnings = append(warnings, ValidationWarning{
			NodeID:  id,
			Message: fmt.Sprintf("torus minor radius %.4f >= major radius %.4f; the surface self-intersects", d.MinorRadius, d.MajorRadius),
		})
	}

	return errs, warnings
}

func checkHelix(id NodeID, d HelixData) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, checkPositive(id, "helix radius", d.Radius)...)
	errs = append(errs, checkPositive(id, "helix tube radius", d.TubeRadius)...)
	errs = append(errs, checkPositive(id, "helix turns", d.Turns)...)
	errs = append(errs, checkSegments(id, "helix tube segments", d.TubeSegments)...)
	warnings = append(warnings, checkCoarse(id, "helix tube segments", d.TubeSegments)...)

	if d.Segments < 1 {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("helix segments is %d, must be at least 1", d.Segments),
			Severity: SeverityError,
		})
	}

	return errs, warnings
}

func checkLoft(id NodeID, d LoftData) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	// Same threshold as the kernel's only hard failure, caught before
	// tessellation ever runs.
	if len(d.Rings) < 2 {
		errs = append(errs, ValidationError{
			NodeID:   id,
			Message:  fmt.Sprintf("loft has %d cross-sections, needs at least 2", len(d.Rings)),
			Severity: SeverityError,
		})
	}

	for i, r := range d.Rings {
		label := fmt.Sprintf("loft ring %d", i)
		switch r.Kind {
		case ProfileCircle:
			errs = append(errs, checkPositive(id, label+" radius", r.Radius)...)
			errs = append(errs, checkSegments(id, label+" segments", r.Segments)...)
		case ProfileRect:
			errs = append(errs, checkPositive(id, label+" width", r.Width)...)
			errs = append(errs, checkPositive(id, label+" depth", r.Depth)...)
		}
	}

	if d.Steps < 0 {
		warnings = append(warnings, ValidationWarning{
			NodeID:  id,
			Message: fmt.Sprintf("loft steps %d is negative and will be ignored", d.Steps),
		})
	}

	return errs, warnings
}

func checkProfile(id NodeID, p ProfileSpec) []ValidationError {
	var errs []ValidationError
	switch p.Kind {
	case ProfileCircle:
		errs = append(errs, checkPositive(id, "profile radius", p.Radius)...)
		errs = append(errs, checkSegments(id, "profile segments", p.Segments)...)
	case ProfileRect:
		errs = append(errs, checkPositive(id, "profile width", p.Width)...)
		errs = append(errs, checkPositive(id, "profile height", p.Height)...)
	}
	return errs
}

func checkPath(id NodeID, p PathSpec) []ValidationError {
	var errs []ValidationError
	switch p.Kind {
	case PathLine:
		if p.Segments < 1 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("line path segments is %d, must be at least 1", p.Segments),
				Severity: SeverityError,
			})
		}
	case PathCurve:
		if len(p.Points) < 2 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("curve path has %d control points, needs at least 2", len(p.Points)),
				Severity: SeverityError,
			})
		}
		if p.SamplesPerSegment < 1 {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("curve path samples per segment is %d, must be at least 1", p.SamplesPerSegment),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func checkPositive(id NodeID, what string, v float64) []ValidationError {
	if v > 0 {
		return nil
	}
	return []ValidationError{{
		NodeID:   id,
		Message:  fmt.Sprintf("%s is %.4f, must be positive", what, v),
		Severity: SeverityError,
	}}
}

func checkSegments(id NodeID, what string, n int) []ValidationError {
	if n >= minRingSegments {
		return nil
	}
	return []ValidationError{{
		NodeID:   id,
		Message:  fmt.Sprintf("%s is %d, must be at least %d", what, n, minRingSegments),
		Severity: SeverityError,
	}}
}

func checkCoarse(id NodeID, what string, n int) []ValidationWarning {
	if n < minRingSegments || n >= coarseSegments {
		return nil
	}
	return []ValidationWarning{{
		NodeID:  id,
		Message: fmt.Sprintf("%s is %d; output will be visibly faceted", what, n),
	}}
}

func checkDraftAngle(id NodeID, angle float64) []ValidationWarning {
	var warnings []ValidationWarning
	if angle < 0 {
		warnings = append(warnings, ValidationWarning{
			NodeID:  id,
			Message: fmt.Sprintf("draft angle %.1f is negative; the shape flares instead of tapering", angle),
		})
	}
	if angle >= maxDraftAngle {
		warnings = append(warnings, ValidationWarning{
			NodeID:  id,
			Message: fmt.Sprintf("draft angle %.1f degrees is at or beyond %d; the taper collapses to the minimum dimension", angle, maxDraftAngle),
		})
	}
	return warnings
}
