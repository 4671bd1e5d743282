package mathutil

import (
	"math"
	"testing"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1, 1},
		{-0.5, -1},
		{-1, -1},
		{-1.01, -2},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.in); got != tt.want {
			t.Errorf("FloorDiv(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVec2Rotate(t *testing.T) {
	v := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("rotating east by 90 degrees gave %+v, want (0,1)", v)
	}
	if got := V(3, 4).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := V(0, 0).Normalize(); !got.IsZero() {
		t.Errorf("Normalize of zero vector = %+v", got)
	}
	if got := V(0, -2).Perp(); got != V(2, 0) {
		t.Errorf("Perp = %+v, want (2,0)", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp out of range")
	}
	if ClampInt(10, 0, 5) != 5 || ClampInt(-3, 0, 5) != 0 {
		t.Error("ClampInt out of range")
	}
}
