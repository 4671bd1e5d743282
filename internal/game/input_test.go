package game

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"labyrinth/internal/player"
)

func keys(down ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(down))
	for _, k := range down {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		down []ebiten.Key
		want player.Input
	}{
		{"idle", nil, player.Input{}},
		{"forward", []ebiten.Key{ebiten.KeyW}, player.Input{Forward: 1}},
		{"arrow back", []ebiten.Key{ebiten.KeyDown}, player.Input{Forward: -1}},
		{"opposite keys cancel", []ebiten.Key{ebiten.KeyW, ebiten.KeyS}, player.Input{}},
		{"strafe right sprinting", []ebiten.Key{ebiten.KeyD, ebiten.KeyShiftLeft}, player.Input{Strafe: 1, Sprint: true}},
		{"turn left", []ebiten.Key{ebiten.KeyQ}, player.Input{Turn: -1}},
		{"turn right arrow", []ebiten.Key{ebiten.KeyRight}, player.Input{Turn: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := readInput(keys(tt.down...), 0, 0.2); got != tt.want {
				t.Errorf("readInput = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMouseLook(t *testing.T) {
	var m mouseLook
	if d := m.delta(100); d != 0 {
		t.Errorf("first delta = %v, want 0", d)
	}
	if d := m.delta(110); d != 10 {
		t.Errorf("delta = %v, want 10", d)
	}

	in := readInput(keys(), m.delta(60), 0.5)
	if want := -25 * math.Pi / 180; math.Abs(in.Look-want) > 1e-12 {
		t.Errorf("look = %v, want %v", in.Look, want)
	}
}
