package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"labyrinth/internal/player"
)

// keyBindings lists the keys that drive each axis; any of them counts.
var keyBindings = struct {
	forward, back, left, right, turnLeft, turnRight, sprint []ebiten.Key
}{
	forward:   []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
	back:      []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
	left:      []ebiten.Key{ebiten.KeyA},
	right:     []ebiten.Key{ebiten.KeyD},
	turnLeft:  []ebiten.Key{ebiten.KeyQ, ebiten.KeyLeft},
	turnRight: []ebiten.Key{ebiten.KeyE, ebiten.KeyRight},
	sprint:    []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
}

func anyPressed(pressed func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

func axis(pressed func(ebiten.Key) bool, neg, pos []ebiten.Key) float64 {
	v := 0.0
	if anyPressed(pressed, neg) {
		v--
	}
	if anyPressed(pressed, pos) {
		v++
	}
	return v
}

// readInput maps key state and horizontal mouse motion (pixels) to player
// input. sensitivity is in degrees per pixel.
func readInput(pressed func(ebiten.Key) bool, mouseDX, sensitivity float64) player.Input {
	b := keyBindings
	return player.Input{
		Forward: axis(pressed, b.back, b.forward),
		Strafe:  axis(pressed, b.left, b.right),
		Turn:    axis(pressed, b.turnLeft, b.turnRight),
		Look:    mouseDX * sensitivity * math.Pi / 180,
		Sprint:  anyPressed(pressed, b.sprint),
	}
}

// mouseLook tracks the cursor between ticks.
type mouseLook struct {
	lastX int
	init  bool
}

// delta returns the horizontal motion since the last call.
func (m *mouseLook) delta(x int) float64 {
	if !m.init {
		m.lastX, m.init = x, true
		return 0
	}
	d := x - m.lastX
	m.lastX = x
	return float64(d)
}
