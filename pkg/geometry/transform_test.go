package geometry

import (
	"testing"
)

func TestToDocumentDelta(t *testing.T) {
	tests := []struct {
		sx, sy, zoom float64
		wantX, wantY float64
	}{
		{100, 50, 1.0, 100, 50}, // identity at zoom 1
		{100, 50, 0.5, 200, 100},
		{100, 50, 2.0, 50, 25},
		{-60, 90, 3.0, -20, 30},
		{0, 0, 0.2, 0, 0},
	}

	for _, tt := range tests {
		dx, dy := ToDocumentDelta(tt.sx, tt.sy, tt.zoom)
		if dx != tt.wantX || dy != tt.wantY {
			t.Errorf("ToDocumentDelta(%v, %v, %v) = (%v, %v), want (%v, %v)",
				tt.sx, tt.sy, tt.zoom, dx, dy, tt.wantX, tt.wantY)
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.1, 0.2},
		{0.2, 0.2},
		{1.0, 1.0},
		{3.0, 3.0},
		{3.5, 3.0},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampFitZoom(t *testing.T) {
	if got := ClampFitZoom(2.5); got != 2.0 {
		t.Errorf("ClampFitZoom(2.5) = %v, want 2.0", got)
	}
	if got := ClampFitZoom(0.05); got != 0.2 {
		t.Errorf("ClampFitZoom(0.05) = %v, want 0.2", got)
	}
	if got := ClampFitZoom(1.4); got != 1.4 {
		t.Errorf("ClampFitZoom(1.4) = %v, want 1.4", got)
	}
}

func TestFitScale(t *testing.T) {
	// 834 viewport - 40 padding over a 794 px page is exactly 1.0.
	if got := FitScale(834, 40, 794); got != 1.0 {
		t.Errorf("FitScale(834, 40, 794) = %v, want 1.0", got)
	}
	// Very wide viewport clamps to the fit maximum, not the gesture maximum.
	if got := FitScale(4000, 40, 794); got != 2.0 {
		t.Errorf("FitScale(4000, 40, 794) = %v, want 2.0", got)
	}
	if got := FitScale(100, 40, 794); got != 0.2 {
		t.Errorf("FitScale(100, 40, 794) = %v, want 0.2", got)
	}
	if got := FitScale(1000, 40, 0); got != 1.0 {
		t.Errorf("FitScale with zero document width = %v, want 1.0", got)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	in := r.Inset(5, 10, 5, 10)
	want := Rect{X: 20, Y: 25, Width: 80, Height: 40}
	if in != want {
		t.Errorf("Inset = %+v, want %+v", in, want)
	}

	// Opposing insets that consume the whole dimension produce an empty
	// rectangle, never an inverted one.
	empty := r.Inset(30, 0, 30, 0)
	if !empty.Empty() {
		t.Errorf("expected empty rect, got %+v", empty)
	}
	if empty.Height != 0 {
		t.Errorf("expected height 0, got %v", empty.Height)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(100, 100, 200, 150)
	tests := []struct {
		x, y     float64
		expected bool
	}{
		{150, 175, true},
		{100, 100, true},
		{300, 250, true},
		{99, 100, false},
		{301, 100, false},
		{100, 251, false},
	}
	for _, tt := range tests {
		if got := r.Contains(Point2D{X: tt.x, Y: tt.y}); got != tt.expected {
			t.Errorf("Contains(%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}
