package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"single cell overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectFOverlap(t *testing.T) {
	tests := []struct {
		name   string
		a, b   RectF
		hit    bool
		dx, dy float64
	}{
		{"player on ground", RectF{X: 1, Y: 0, W: 1, H: 2}, RectF{X: 0, Y: -1, W: 4, H: 1.25}, true, 1, 0.25},
		{"touching top", RectF{X: 1, Y: 1, W: 1, H: 2}, RectF{X: 0, Y: 0, W: 4, H: 1}, false, 0, 0},
		{"beside", RectF{X: 5, Y: 0, W: 1, H: 1}, RectF{X: 0, Y: 0, W: 4, H: 1}, false, 0, 0},
		{"partial x", RectF{X: 3.5, Y: 0, W: 1, H: 1}, RectF{X: 0, Y: 0, W: 4, H: 1}, true, 0.5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.hit {
				t.Errorf("Intersects() = %v, expected %v", got, tc.hit)
			}
			dx, dy := tc.a.Overlap(tc.b)
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Overlap() = (%v, %v), expected (%v, %v)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min() should return the smaller value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max() should return the larger value")
	}
}

func TestRuntimeConfigTickSeconds(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 30}).TickSeconds(); got != 1.0/30.0 {
		t.Errorf("TickSeconds() = %v, expected 1/30", got)
	}
	if got := (RuntimeConfig{}).TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() with zero rate = %v, expected 1/60", got)
	}
}
