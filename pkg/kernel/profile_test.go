package kernel

import (
	"math"
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
)

func TestCircleProfile(t *testing.T) {
	pts := CircleProfile(2, 8)
	if len(pts) != 8 {
		t.Fatalf("expected 8 points, got %d", len(pts))
	}
	for i, p := range pts {
		r := math.Hypot(p[0], p[1])
		if !almostEqual(r, 2, testEps) {
			t.Errorf("point %d radius = %f, want 2", i, r)
		}
	}
	// First point sits on the +X axis; no duplicated seam point.
	if !almostEqual(pts[0][0], 2, testEps) || !almostEqual(pts[0][1], 0, testEps) {
		t.Errorf("point 0 = %v, want (2, 0)", pts[0])
	}
	last := pts[len(pts)-1]
	if almostEqual(last[0], 2, testEps) && almostEqual(last[1], 0, testEps) {
		t.Error("profile should not duplicate the seam point")
	}
}

func TestCircleProfileTooFewSegments(t *testing.T) {
	for _, segments := range []int{2, 1, 0, -4} {
		if pts := CircleProfile(1, segments); pts != nil {
			t.Errorf("segments=%d: expected nil, got %d points", segments, len(pts))
		}
	}
}

func TestRectProfileCorners(t *testing.T) {
	pts := RectProfile(4, 2)
	if len(pts) != 4 {
		t.Fatalf("expected 4 corners, got %d", len(pts))
	}
	if pts[0] != ([2]float64{-2, -1}) || pts[2] != ([2]float64{2, 1}) {
		t.Errorf("corners = %v", pts)
	}

	// Shoelace area is positive for counter-clockwise winding.
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	if area <= 0 {
		t.Errorf("signed area = %f, want positive (counter-clockwise)", area)
	}
}

func TestCircleRing(t *testing.T) {
	center := vec3.T{1, 5, -2}
	pts := CircleRing(3, center, 12)
	if len(pts) != 12 {
		t.Fatalf("expected 12 points, got %d", len(pts))
	}
	for i, p := range pts {
		if !almostEqual(p[1], 5, testEps) {
			t.Errorf("point %d y = %f, want 5 (ring lies in the XZ plane)", i, p[1])
		}
		r := math.Hypot(p[0]-center[0], p[2]-center[2])
		if !almostEqual(r, 3, testEps) {
			t.Errorf("point %d radius = %f, want 3", i, r)
		}
	}
}

func TestCircleRingTooFewSegments(t *testing.T) {
	if pts := CircleRing(1, vec3.Zero, 2); pts != nil {
		t.Errorf("expected nil, got %d points", len(pts))
	}
}

func TestRectRing(t *testing.T) {
	center := vec3.T{10, 1, 0}
	pts := RectRing(6, 4, center)
	if len(pts) != 4 {
		t.Fatalf("expected 4 corners, got %d", len(pts))
	}
	want := []vec3.T{
		{7, 1, -2},
		{13, 1, -2},
		{13, 1, 2},
		{7, 1, 2},
	}
	for i := range want {
		if !vecsAlmostEqual(pts[i], want[i], testEps) {
			t.Errorf("corner %d = %v, want %v", i, pts[i], want[i])
		}
	}
}
