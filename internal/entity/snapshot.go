package entity

import "labyrinth/internal/mathutil"

// ID identifies an entity within a Manager.
type ID uint64

// Item is a by-value copy of an entity for one frame. Distance is the
// Euclidean distance from the snapshot origin.
type Item struct {
	ID           ID
	Kind         Kind
	Position     mathutil.Vec2
	Sprite       SpriteID
	Scale        float64
	HeightOffset float64
	Distance     float64
}

// Snapshot is a frame-stable sequence of entities. It shares no memory with
// the live manager.
type Snapshot []Item

func itemOf(id ID, v View, from mathutil.Vec2) Item {
	p := v.Position()
	return Item{
		ID:           id,
		Kind:         v.Kind(),
		Position:     p,
		Sprite:       v.Sprite(),
		Scale:        v.Scale(),
		HeightOffset: v.HeightOffset(),
		Distance:     p.Dist(from),
	}
}
