package common

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 32, 32)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(16, 16, 32, 32), true},
		{"contained", NewRect(8, 8, 4, 4), true},
		{"touching right edge", NewRect(32, 0, 32, 32), false},
		{"touching bottom edge", NewRect(0, 32, 32, 32), false},
		{"touching corner", NewRect(32, 32, 8, 8), false},
		{"apart", NewRect(100, 100, 8, 8), false},
		{"sliver", NewRect(31.5, 0, 8, 8), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Fatalf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Fatalf("Intersects not symmetric: %v", got)
			}
		})
	}
}

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Rect
		wx, wy float64
	}{
		{"partial", NewRect(0, 0, 32, 32), NewRect(24, 28, 32, 32), 8, 4},
		{"no x overlap", NewRect(0, 0, 10, 10), NewRect(20, 5, 10, 10), 0, 5},
		{"disjoint", NewRect(0, 0, 10, 10), NewRect(50, 50, 10, 10), 0, 0},
		{"inside", NewRect(0, 0, 100, 100), NewRect(10, 20, 5, 6), 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.a.Overlap(tt.b)
			if x != tt.wx || y != tt.wy {
				t.Fatalf("Overlap = (%v,%v), want (%v,%v)", x, y, tt.wx, tt.wy)
			}
			if x < 0 || y < 0 {
				t.Fatalf("negative overlap (%v,%v)", x, y)
			}
		})
	}
}

func TestRectContainsInclusive(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	points := [][2]float64{{10, 10}, {30, 30}, {10, 30}, {30, 10}, {20, 20}}
	for _, p := range points {
		if !r.Contains(p[0], p[1]) {
			t.Fatalf("expected %v inside %+v", p, r)
		}
	}
	if r.Contains(9.99, 20) || r.Contains(20, 30.01) {
		t.Fatalf("point outside reported as contained")
	}
}

func TestRectDistance(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(30, 40, 10, 10)
	if d := a.Distance(b); math.Abs(d-50) > 1e-9 {
		t.Fatalf("Distance = %v, want 50", d)
	}
	if cx, cy := b.Center(); cx != 35 || cy != 45 {
		t.Fatalf("Center = (%v,%v)", cx, cy)
	}
}
