package collision

import (
	"math"

	"labyrinth/internal/mathutil"
)

// BoundingBox represents a square collision boundary in cell units
type BoundingBox struct {
	Center mathutil.Vec2
	Half   float64 // half of the side length
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(center mathutil.Vec2, radius float64) BoundingBox {
	return BoundingBox{Center: center, Half: radius}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	return bb.Center.X - bb.Half, bb.Center.Y - bb.Half, bb.Center.X + bb.Half, bb.Center.Y + bb.Half
}

// ProbePoints returns the four corners and the four edge midpoints. Testing
// them against the grid is enough as long as Half stays below half a cell.
func (bb BoundingBox) ProbePoints() [8]mathutil.Vec2 {
	minX, minY, maxX, maxY := bb.GetBounds()
	cx, cy := bb.Center.X, bb.Center.Y
	return [8]mathutil.Vec2{
		{X: minX, Y: minY}, // Top-left
		{X: cx, Y: minY},
		{X: maxX, Y: minY}, // Top-right
		{X: maxX, Y: cy},
		{X: maxX, Y: maxY}, // Bottom-right
		{X: cx, Y: maxY},
		{X: minX, Y: maxY}, // Bottom-left
		{X: minX, Y: cy},
	}
}

// Intersects reports whether two boxes overlap
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return math.Abs(bb.Center.X-other.Center.X) < bb.Half+other.Half &&
		math.Abs(bb.Center.Y-other.Center.Y) < bb.Half+other.Half
}

// Contains reports whether the point lies inside the box
func (bb BoundingBox) Contains(p mathutil.Vec2) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Translate returns the box moved by d
func (bb BoundingBox) Translate(d mathutil.Vec2) BoundingBox {
	bb.Center = bb.Center.Add(d)
	return bb
}
