package kernel

import (
	"testing"

	"github.com/ungerik/go3d/float64/vec3"
)

func TestLinePath(t *testing.T) {
	tests := []struct {
		name     string
		segments int
		want     int
	}{
		{"five segments", 5, 6},
		{"one segment", 1, 2},
		{"zero segments degrades to a point", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := LinePath(vec3.Zero, vec3.T{0, 10, 0}, tt.segments)
			if len(p) != tt.want {
				t.Fatalf("len = %d, want %d", len(p), tt.want)
			}
		})
	}
}

func TestLinePathEndpointsAndSpacing(t *testing.T) {
	from, to := vec3.T{1, 2, 3}, vec3.T{5, 2, 3}
	p := LinePath(from, to, 4)
	if !vecsAlmostEqual(p[0], from, testEps) {
		t.Errorf("first sample = %v, want %v", p[0], from)
	}
	if !vecsAlmostEqual(p[len(p)-1], to, testEps) {
		t.Errorf("last sample = %v, want %v", p[len(p)-1], to)
	}
	if !vecsAlmostEqual(p[2], vec3.T{3, 2, 3}, testEps) {
		t.Errorf("midpoint = %v, want (3,2,3)", p[2])
	}
}

func TestCatmullRomPassesThroughControlPoints(t *testing.T) {
	ctrl := []vec3.T{{0, 0, 0}, {2, 3, 0}, {5, 1, 2}, {7, 0, 4}}
	samples := 8
	p := CatmullRomPath(ctrl, samples)

	wantLen := (len(ctrl)-1)*samples + 1
	if len(p) != wantLen {
		t.Fatalf("len = %d, want %d", len(p), wantLen)
	}
	for i, c := range ctrl {
		at := i * samples
		if i == len(ctrl)-1 {
			at = len(p) - 1
		}
		if !vecsAlmostEqual(p[at], c, testEps) {
			t.Errorf("sample %d = %v, want control point %v", at, p[at], c)
		}
	}
}

func TestCatmullRomDegenerateInput(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		p := CatmullRomPath([]vec3.T{{1, 1, 1}}, 8)
		if len(p) != 1 {
			t.Fatalf("len = %d, want 1", len(p))
		}
	})
	t.Run("no points", func(t *testing.T) {
		if p := CatmullRomPath(nil, 8); len(p) != 0 {
			t.Fatalf("len = %d, want 0", len(p))
		}
	})
	t.Run("input is not mutated", func(t *testing.T) {
		ctrl := []vec3.T{{1, 0, 0}, {2, 0, 0}}
		p := CatmullRomPath(ctrl, 2)
		p[0][0] = 99
		if ctrl[0][0] != 1 {
			t.Error("CatmullRomPath aliased its input")
		}
	})
}
