// Package keytracker turns ebiten's level-triggered key state into
// edge-triggered presses.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Tracker remembers the previous state of every key it was asked about.
type Tracker struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
}

// New returns a tracker reading ebiten's keyboard.
func New() *Tracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource returns a tracker reading key state from pressed.
func NewWithSource(pressed func(ebiten.Key) bool) *Tracker {
	return &Tracker{pressed: pressed, prev: make(map[ebiten.Key]bool)}
}

// IsKeyJustPressed returns true if the key was not pressed at the previous
// call for it but is pressed now.
func (t *Tracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := t.pressed(key)
	justPressed := pressed && !t.prev[key]
	t.prev[key] = pressed
	return justPressed
}
