package collision

import (
	"math"

	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// lineOfSightStep is the sampling interval of CheckLineOfSight in cells.
const lineOfSightStep = 0.1

// CollisionSystem answers movement queries against the wall grid. Cells
// outside the grid block.
type CollisionSystem struct {
	grid   world.GridView
	radius float64
}

// NewCollisionSystem creates a collision system for bodies of the given
// radius. The radius is capped just below half a cell so the eight probe
// points cannot straddle a wall cell.
func NewCollisionSystem(grid world.GridView, radius float64) *CollisionSystem {
	return &CollisionSystem{grid: grid, radius: mathutil.Clamp(radius, 0, 0.49)}
}

// Radius returns the probe radius in use.
func (cs *CollisionSystem) Radius() float64 {
	return cs.radius
}

// IsBlocked reports whether the point lies in a wall cell or off the grid.
func (cs *CollisionSystem) IsBlocked(p mathutil.Vec2) bool {
	x, y := p.Floor()
	cell, ok := cs.grid.CellAt(x, y)
	return !ok || cell.IsWall()
}

// CanMoveTo checks whether a body centered at pos fits between the walls.
func (cs *CollisionSystem) CanMoveTo(pos mathutil.Vec2) bool {
	for _, p := range NewBoundingBox(pos, cs.radius).ProbePoints() {
		if cs.IsBlocked(p) {
			return false
		}
	}
	return true
}

// Slide moves from pos by delta, resolving each axis separately so a body
// pressed against a wall glides along it instead of stopping.
func (cs *CollisionSystem) Slide(pos, delta mathutil.Vec2) mathutil.Vec2 {
	if next := pos.Add(delta); cs.CanMoveTo(next) {
		return next
	}
	if next := mathutil.V(pos.X+delta.X, pos.Y); delta.X != 0 && cs.CanMoveTo(next) {
		pos = next
	}
	if next := mathutil.V(pos.X, pos.Y+delta.Y); delta.Y != 0 && cs.CanMoveTo(next) {
		pos = next
	}
	return pos
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (cs *CollisionSystem) CheckLineOfSight(from, to mathutil.Vec2) bool {
	d := to.Sub(from)
	steps := int(math.Ceil(d.Len() / lineOfSightStep))
	for i := 0; i <= steps; i++ {
		t := 1.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		if cs.IsBlocked(from.Add(d.Scale(t))) {
			return false
		}
	}
	return true
}

// CellAhead returns the cell reach cells ahead of pos along dir.
func CellAhead(pos, dir mathutil.Vec2, reach float64) (int, int) {
	return pos.Add(dir.Normalize().Scale(reach)).Floor()
}
