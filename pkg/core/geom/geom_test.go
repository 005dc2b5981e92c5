package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestPolygon(t *testing.T) {
	if got := Polygon(0); got != nil {
		t.Errorf("Polygon(0) = %v, want nil", got)
	}

	tri := Polygon(3)
	if len(tri) != 3 {
		t.Fatalf("Polygon(3) len = %d, want 3", len(tri))
	}
	if !near(tri[0].X, 0.5) || !near(tri[0].Y, 0) {
		t.Errorf("first vertex = %v, want (0.5, 0)", tri[0])
	}

	for n := 3; n <= 8; n++ {
		for i, p := range Polygon(n) {
			d := math.Hypot(p.X-0.5, p.Y-0.5)
			if !near(d, 0.5) {
				t.Errorf("Polygon(%d)[%d] distance from center = %v, want 0.5", n, i, d)
			}
		}
	}
}

func TestPolygonSquareCorners(t *testing.T) {
	sq := Polygon(4)
	want := [][2]float64{{0.1464466, 0.1464466}, {0.8535534, 0.1464466}, {0.8535534, 0.8535534}, {0.1464466, 0.8535534}}
	for i, p := range sq {
		if math.Abs(p.X-want[i][0]) > 1e-6 || math.Abs(p.Y-want[i][1]) > 1e-6 {
			t.Errorf("square[%d] = %v, want %v", i, p, want[i])
		}
	}
}

func TestLinear(t *testing.T) {
	m := Linear(0.5, math.Pi/2)
	v := m.TransformVector(Pt(1, 0))
	if !near(v.X, 0) || !near(v.Y, 0.5) {
		t.Errorf("Linear(0.5, pi/2)·(1,0) = %v, want (0, 0.5)", v)
	}

	id := Linear(1, 0)
	if !id.IsIdentity() {
		t.Errorf("Linear(1, 0) = %+v, want identity", id)
	}
}

func TestToward(t *testing.T) {
	half := Linear(0.5, 0)
	got := Toward(Pt(0, 0), Pt(1, 1), half)
	if !near(got.X, 0.5) || !near(got.Y, 0.5) {
		t.Errorf("Toward halfway = %v, want (0.5, 0.5)", got)
	}

	// scale 1 lands exactly on the target
	got = Toward(Pt(0.2, 0.7), Pt(0.9, 0.1), Linear(1, 0))
	if !near(got.X, 0.9) || !near(got.Y, 0.1) {
		t.Errorf("Toward with identity = %v, want target", got)
	}

	// scale 0 does not move
	got = Toward(Pt(0.2, 0.7), Pt(0.9, 0.1), Linear(0, 1.3))
	if !near(got.X, 0.2) || !near(got.Y, 0.7) {
		t.Errorf("Toward with zero scale = %v, want unchanged", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-0.5, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {1.7, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
