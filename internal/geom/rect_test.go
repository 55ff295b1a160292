package geom

import "testing"

func TestRectCollides(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 4, Height: 4}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 2, Y: 2, Width: 4, Height: 4}, true},
		{"inside", Rect{X: 1, Y: 1, Width: 1, Height: 1}, true},
		{"touching edge", Rect{X: 4, Y: 0, Width: 2, Height: 2}, false},
		{"apart", Rect{X: 10, Y: 10, Width: 2, Height: 2}, false},
	}
	for _, tt := range tests {
		if got := a.Collides(tt.other); got != tt.want {
			t.Errorf("%s: Collides(%+v) = %v, want %v", tt.name, tt.other, got, tt.want)
		}
		if got := tt.other.Collides(a); got != tt.want {
			t.Errorf("%s: Collides is not symmetric", tt.name)
		}
	}
}

func TestRectCollidesNear(t *testing.T) {
	a := Rect{X: 5, Y: 5, Width: 3, Height: 3}

	// Adjacent: apart without padding, colliding with it.
	b := Rect{X: 8, Y: 5, Width: 2, Height: 2}
	if a.Collides(b) {
		t.Fatal("adjacent rects should not collide")
	}
	if !a.CollidesNear(b, 1) {
		t.Error("adjacent rects should collide with padding 1")
	}

	// A one tile gap stays clear with padding 1.
	c := Rect{X: 9, Y: 5, Width: 2, Height: 2}
	if a.CollidesNear(c, 1) {
		t.Error("rects one tile apart should not collide with padding 1")
	}

	// Origin clamps at zero.
	edge := Rect{X: 0, Y: 0, Width: 2, Height: 2}
	if !edge.CollidesNear(Rect{X: 3, Y: 0, Width: 1, Height: 1}, 1) {
		t.Error("clamped padding should still grow the far edge")
	}
}

func TestRectIsOutOfBounds(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 1, Y: 1, Width: 3, Height: 3}, false},
		{Rect{X: -1, Y: 1, Width: 3, Height: 3}, true},
		{Rect{X: 1, Y: 1, Width: 9, Height: 3}, true}, // touches last column
		{Rect{X: 1, Y: 1, Width: 8, Height: 8}, false},
	}
	for _, tt := range tests {
		if got := tt.r.IsOutOfBounds(10, 10); got != tt.want {
			t.Errorf("%+v.IsOutOfBounds(10, 10) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRectCenterContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 5, Height: 4}
	cx, cy := r.Center()
	if cx != 4 || cy != 5 {
		t.Errorf("Center() = (%d,%d), want (4,5)", cx, cy)
	}
	if !r.Contains(cx, cy) {
		t.Error("rect should contain its center")
	}
	if r.Contains(7, 3) {
		t.Error("right edge is exclusive")
	}
	moved := r.Translate(10, -3)
	if moved.X != 12 || moved.Y != 0 || moved.Width != 5 || moved.Height != 4 {
		t.Errorf("Translate = %+v", moved)
	}
}

func TestRectIntersect(t *testing.T) {
	interior := Rect{X: 1, Y: 1, Width: 8, Height: 8}
	tests := []struct {
		r      Rect
		want   Rect
		wantOK bool
	}{
		{Rect{X: 2, Y: 2, Width: 3, Height: 3}, Rect{X: 2, Y: 2, Width: 3, Height: 3}, true},
		{Rect{X: 0, Y: 0, Width: 4, Height: 3}, Rect{X: 1, Y: 1, Width: 3, Height: 2}, true},
		{Rect{X: 7, Y: 5, Width: 5, Height: 2}, Rect{X: 7, Y: 5, Width: 2, Height: 2}, true},
		{Rect{X: 0, Y: 0, Width: 1, Height: 5}, Rect{}, false},
		{Rect{X: 9, Y: 0, Width: 1, Height: 10}, Rect{}, false},
	}
	for _, tt := range tests {
		got, ok := tt.r.Intersect(interior)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%+v.Intersect(%+v) = %+v, %v; want %+v, %v", tt.r, interior, got, ok, tt.want, tt.wantOK)
		}
	}
}
