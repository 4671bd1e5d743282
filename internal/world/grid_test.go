package world

import (
	"errors"
	"testing"
)

func TestNewGrid_Validation(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		cells int
	}{
		{"zero width", 0, 3, 0},
		{"negative height", 3, -1, 0},
		{"short cells", 2, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.w, tt.h, make([]Cell, tt.cells))
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("err = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestRoom(t *testing.T) {
	g, err := NewRoom(5, 4, 2)
	if err != nil {
		t.Fatalf("room: %v", err)
	}
	if got, want := g.CountWalls(), 5*4-3*2; got != want {
		t.Errorf("walls = %d, want %d", got, want)
	}
	if c, ok := g.CellAt(0, 0); !ok || c.Wall != 2 {
		t.Errorf("corner = %+v ok=%v", c, ok)
	}
	if _, ok := g.CellAt(5, 0); ok {
		t.Error("CellAt outside the grid must report !ok")
	}
	if _, ok := g.CellAt(-1, 2); ok {
		t.Error("CellAt at negative index must report !ok")
	}
}

func TestIsWallOutsideGrid(t *testing.T) {
	g, _ := NewRoom(4, 4, 1)
	tests := []struct {
		x, y float64
		want bool
	}{
		{1.5, 1.5, false},
		{0.5, 1.5, true},
		{-0.2, 1.5, true},
		{1.5, 9, true},
	}
	for _, tt := range tests {
		if got := g.IsWall(tt.x, tt.y); got != tt.want {
			t.Errorf("IsWall(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSetWallBumpsVersion(t *testing.T) {
	g, _ := NewRoom(4, 4, 1)
	v0 := g.Version()

	if err := g.SetWall(0, 1, Empty); err != nil {
		t.Fatalf("set wall: %v", err)
	}
	if g.Version() == v0 {
		t.Error("version unchanged after SetWall")
	}
	if c, _ := g.CellAt(0, 1); c.IsWall() {
		t.Error("door cell should be open")
	}
	if err := g.SetWall(7, 7, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}
