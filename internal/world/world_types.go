package world

import "errors"

// TextureID selects a texture in an atlas layer. Zero is the empty sentinel
// for walls and the default texture for floors and ceilings.
type TextureID int

const Empty TextureID = 0

// Cell is one tile of the grid. A cell with a non-empty Wall blocks rays and
// movement; Floor and Ceiling select the textures drawn for open cells.
type Cell struct {
	Wall    TextureID
	Floor   TextureID
	Ceiling TextureID
}

// IsWall reports whether the cell blocks rays.
func (c Cell) IsWall() bool {
	return c.Wall != Empty
}

// GridView is the read-only access the renderer needs. Implementations must be
// safe for concurrent reads for the duration of a render pass.
type GridView interface {
	CellAt(x, y int) (Cell, bool)
	Dimensions() (width, height int)
}

// SpawnKind tags an entity placement found in a map file.
type SpawnKind int

const (
	SpawnMonster SpawnKind = iota
	SpawnCollectible
	SpawnEffect
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnMonster:
		return "monster"
	case SpawnCollectible:
		return "collectible"
	case SpawnEffect:
		return "effect"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidDimensions = errors.New("world: invalid grid dimensions")
	ErrRaggedRows        = errors.New("world: rows have inconsistent width")
	ErrNoRows            = errors.New("world: map contains no rows")
	ErrOutOfBounds       = errors.New("world: cell out of bounds")
)
