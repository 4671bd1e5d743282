package render

import (
	"math"

	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// MinDistance is the distance reported when the camera stands inside a wall
// cell; it also keeps projected heights finite.
const MinDistance = 1e-4

// noCross stands in for an infinite step length on an axis the ray never
// crosses.
const noCross = 1e30

// Side is the grid-line orientation a ray crossed to reach its wall.
type Side uint8

const (
	// SideX means a vertical grid line was crossed: an east or west face.
	SideX Side = iota
	// SideY means a horizontal grid line was crossed: a north or south face.
	SideY
)

// Face is the compass face of the wall cell that was struck.
type Face uint8

const (
	FaceNone Face = iota
	FaceNorth
	FaceSouth
	FaceEast
	FaceWest
)

func (f Face) String() string {
	return [...]string{"none", "north", "south", "east", "west"}[f]
}

// WallHit is the result of one ray traversal.
type WallHit struct {
	Hit          bool
	CellX, CellY int
	Side         Side
	Face         Face
	// Distance is the ray parameter t of the hit point origin + dir*t. For
	// camera rays (dir + plane*k) this is the perpendicular distance to the
	// camera plane.
	Distance float64
	// WallX is the texture column in [0, 1], oriented so that every face
	// reads left to right as seen from outside the cell.
	WallX   float64
	Texture world.TextureID
	// Inside is set when the origin was already in a wall cell.
	Inside bool
}

// CastRay walks the grid cell by cell (DDA) from origin along dir until it
// enters a wall cell, leaves the grid or passes maxDistance.
func CastRay(grid world.GridView, origin, dir mathutil.Vec2, maxDistance float64) WallHit {
	mapX, mapY := origin.Floor()
	width, height := grid.Dimensions()

	if c, ok := grid.CellAt(mapX, mapY); ok && c.IsWall() {
		return WallHit{
			Hit:      true,
			CellX:    mapX,
			CellY:    mapY,
			Side:     SideX,
			Distance: MinDistance,
			WallX:    origin.Y - math.Floor(origin.Y),
			Texture:  c.Wall,
			Inside:   true,
		}
	}
	startedInside := mapX >= 0 && mapY >= 0 && mapX < width && mapY < height

	deltaX, deltaY := noCross, noCross
	if dir.X != 0 {
		deltaX = math.Abs(1 / dir.X)
	}
	if dir.Y != 0 {
		deltaY = math.Abs(1 / dir.Y)
	}

	fracX := origin.X - float64(mapX)
	fracY := origin.Y - float64(mapY)

	var stepX, stepY int
	var sideDistX, sideDistY float64
	if dir.X < 0 {
		stepX = -1
		sideDistX = fracX * deltaX
	} else {
		stepX = 1
		sideDistX = (1 - fracX) * deltaX
	}
	if dir.Y < 0 {
		stepY = -1
		sideDistY = fracY * deltaY
	} else {
		stepY = 1
		sideDistY = (1 - fracY) * deltaY
	}

	// every step moves one cell, so this bounds the walk even for a camera
	// outside the grid looking in
	maxSteps := width + height + 2*int(math.Ceil(maxDistance)) + 4

	var side Side
	for steps := 0; steps < maxSteps; steps++ {
		var t float64
		if sideDistX < sideDistY {
			t = sideDistX
			sideDistX += deltaX
			mapX += stepX
			side = SideX
		} else {
			t = sideDistY
			sideDistY += deltaY
			mapY += stepY
			side = SideY
		}

		if t > maxDistance {
			return WallHit{}
		}

		c, ok := grid.CellAt(mapX, mapY)
		if !ok {
			// a ray that left a convex grid never re-enters it
			if startedInside {
				return WallHit{}
			}
			continue
		}
		if !c.IsWall() {
			continue
		}

		hit := WallHit{Hit: true, CellX: mapX, CellY: mapY, Side: side, Distance: math.Max(t, MinDistance), Texture: c.Wall}
		var wallX float64
		if side == SideX {
			wallX = origin.Y + t*dir.Y
		} else {
			wallX = origin.X + t*dir.X
		}
		wallX -= math.Floor(wallX)

		// y grows southwards, so faces seen looking west or south run
		// against the world axis and are flipped
		switch {
		case side == SideX && stepX > 0:
			hit.Face = FaceWest
		case side == SideX:
			hit.Face = FaceEast
			wallX = 1 - wallX
		case stepY > 0:
			hit.Face = FaceNorth
			wallX = 1 - wallX
		default:
			hit.Face = FaceSouth
		}
		hit.WallX = wallX
		return hit
	}
	return WallHit{}
}
