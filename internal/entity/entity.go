package entity

import (
	"time"

	"labyrinth/internal/mathutil"
)

// Kind tags the entity variants.
type Kind int

const (
	KindMonster Kind = iota
	KindCollectible
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "monster"
	case KindCollectible:
		return "collectible"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// SpriteID selects a texture in the sprite layer of an atlas.
type SpriteID int

// View is everything the renderer may know about an entity.
type View interface {
	Kind() Kind
	Position() mathutil.Vec2
	Sprite() SpriteID
	// Scale multiplies the billboard size; 1 is one wall height.
	Scale() float64
	// HeightOffset lifts the billboard, in wall heights.
	HeightOffset() float64
}

type body struct {
	pos    mathutil.Vec2
	sprite SpriteID
	scale  float64
	height float64
}

func newBody(pos mathutil.Vec2, sprite SpriteID) body {
	return body{pos: pos, sprite: sprite, scale: 1}
}

func (b *body) Position() mathutil.Vec2 { return b.pos }
func (b *body) Sprite() SpriteID { return b.sprite }
func (b *body) Scale() float64 { return b.scale }
func (b *body) HeightOffset() float64 { return b.height }
func (b *body) setPosition(p mathutil.Vec2) { b.pos = p }

// Monster is a hostile entity. Manager.Update drifts it toward the player.
type Monster struct {
	body
}

func NewMonster(pos mathutil.Vec2, sprite SpriteID) *Monster {
	return &Monster{body: newBody(pos, sprite)}
}

func (m *Monster) Kind() Kind { return KindMonster }

// Collectible is a pickup. It floats slightly smaller than a wall.
type Collectible struct {
	body
}

func NewCollectible(pos mathutil.Vec2, sprite SpriteID) *Collectible {
	c := &Collectible{body: newBody(pos, sprite)}
	c.scale = 0.5
	c.height = -0.25
	return c
}

func (c *Collectible) Kind() Kind { return KindCollectible }

// Map-spawned effects hover as small billboards.
const (
	effectScale = 0.6
	effectLift  = 0.2
)

// Effect is a short-lived visual such as a spark or a weapon flash. A zero
// lifetime never expires.
type Effect struct {
	body
	lifetime time.Duration
	age      time.Duration
}

func NewEffect(pos mathutil.Vec2, sprite SpriteID, lifetime time.Duration) *Effect {
	return &Effect{body: newBody(pos, sprite), lifetime: lifetime}
}

func (e *Effect) Kind() Kind { return KindEffect }

// WithScale sets the billboard scale and height offset.
func (e *Effect) WithScale(scale, heightOffset float64) *Effect {
	e.scale = scale
	e.height = heightOffset
	return e
}

func (e *Effect) advance(dt time.Duration) {
	e.age += dt
}

// Expired reports whether the effect outlived its lifetime.
func (e *Effect) Expired() bool {
	return e.lifetime > 0 && e.age >= e.lifetime
}
