// Package player turns per-tick input into camera movement.
package player

import (
	"math"
	"time"

	"labyrinth/internal/camera"
	"labyrinth/internal/collision"
	"labyrinth/internal/config"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// bobDecay is the fraction of the view bob kept per second while standing.
const bobDecay = 0.001

// Input is one tick of player intent. Forward and Strafe are in [-1, 1]
// (positive = ahead / to the right), Turn is in [-1, 1] scaled by the
// rotation speed, and Look is an extra rotation in radians (mouse).
type Input struct {
	Forward float64
	Strafe  float64
	Turn    float64
	Look    float64
	Sprint  bool
}

// Moving reports whether the input asks for translation.
func (in Input) Moving() bool {
	return in.Forward != 0 || in.Strafe != 0
}

// Settings tunes movement.
type Settings struct {
	MoveSpeed           float64 // cells per second
	RotationSpeed       float64 // radians per second
	SprintMultiplier    float64
	SprintBobMultiplier float64
	BobAmplitude        float64 // pixels
	BobFrequency        float64 // cycles per second
}

// SettingsFromConfig reads the player section.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		MoveSpeed:           cfg.Player.MoveSpeed,
		RotationSpeed:       cfg.GetRotSpeed(),
		SprintMultiplier:    cfg.Player.SprintMultiplier,
		SprintBobMultiplier: cfg.Player.SprintBobMultiplier,
		BobAmplitude:        cfg.Player.BobAmplitude,
		BobFrequency:        cfg.Player.BobFrequency,
	}
}

// Player owns the camera pose between frames.
type Player struct {
	pose     camera.Pose
	settings Settings
	coll     *collision.CollisionSystem
	phase    float64 // bob cycles
	bob      float64
	moved    float64 // total distance walked
}

// New places a player at pose inside grid.
func New(pose camera.Pose, grid world.GridView, radius float64, s Settings) *Player {
	pose.HorizonOffset = 0
	return &Player{
		pose:     pose,
		settings: s,
		coll:     collision.NewCollisionSystem(grid, radius),
	}
}

// Pose returns the camera pose for the next frame, view bob included.
func (p *Player) Pose() camera.Pose {
	pose := p.pose
	pose.HorizonOffset = p.bob
	return pose
}

// Position returns the player position.
func (p *Player) Position() mathutil.Vec2 {
	return p.pose.Position
}

// Distance returns how far the player has walked.
func (p *Player) Distance() float64 {
	return p.moved
}

// Collision exposes the collision system, e.g. for door checks.
func (p *Player) Collision() *collision.CollisionSystem {
	return p.coll
}

// Teleport moves the player without a collision check.
func (p *Player) Teleport(pos mathutil.Vec2) {
	p.pose.Position = pos
}

// Face turns the player to angle radians (0 = east, -pi/2 = north).
func (p *Player) Face(angle float64) {
	pos := p.pose.Position
	p.pose = p.pose.Rotate(angle - p.pose.Angle()).WithPosition(pos)
}

// Update advances the player by dt.
func (p *Player) Update(in Input, dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	if turn := in.Turn*p.settings.RotationSpeed*sec + in.Look; turn != 0 {
		pos := p.pose.Position
		p.pose = p.pose.Rotate(turn).WithPosition(pos)
	}

	speed := p.settings.MoveSpeed
	bobRate := p.settings.BobFrequency
	if in.Sprint {
		if p.settings.SprintMultiplier > 0 {
			speed *= p.settings.SprintMultiplier
		}
		if p.settings.SprintBobMultiplier > 0 {
			bobRate *= p.settings.SprintBobMultiplier
		}
	}

	step := mathutil.V(0, 0)
	if in.Moving() {
		dir := p.pose.Dir
		right := dir.Perp()
		step = dir.Scale(in.Forward).Add(right.Scale(in.Strafe))
		// diagonal input is no faster than straight input
		if l := step.Len(); l > 1 {
			step = step.Scale(1 / l)
		}
		step = step.Scale(speed * sec)
	}

	before := p.pose.Position
	p.pose.Position = p.coll.Slide(before, step)
	walked := p.pose.Position.Dist(before)
	p.moved += walked

	if walked > 0 {
		p.phase = math.Mod(p.phase+bobRate*sec, 1)
		p.bob = math.Sin(p.phase*2*math.Pi) * p.settings.BobAmplitude
		return
	}
	p.bob *= math.Pow(bobDecay, sec)
	if math.Abs(p.bob) < 0.01 {
		p.bob = 0
		p.phase = 0
	}
}
