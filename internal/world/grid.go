package world

import (
	"fmt"
	"sync/atomic"

	"labyrinth/internal/mathutil"
)

// Grid is a fixed-size tile map. Its dimensions never change after
// construction. Cells may be edited with SetCell/SetWall between frames, never
// while a render pass is reading the grid.
type Grid struct {
	width, height int
	cells         []Cell
	version       atomic.Uint64
}

// NewGrid builds a grid from a row-major cell slice.
func NewGrid(width, height int, cells []Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %dx%d grid needs %d cells, got %d",
			ErrInvalidDimensions, width, height, width*height, len(cells))
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, len(cells))}
	copy(g.cells, cells)
	return g, nil
}

// NewGridFromRows builds a grid from wall ids, one slice per row. Floors and
// ceilings default to texture 0.
func NewGridFromRows(rows [][]TextureID) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedRows, y+1, len(row), width)
		}
		for _, id := range row {
			cells = append(cells, Cell{Wall: id})
		}
	}
	return NewGrid(width, len(rows), cells)
}

// NewRoom returns a width x height grid whose border cells are walls of the
// given texture and whose interior is empty.
func NewRoom(width, height int, wall TextureID) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	cells := make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				cells[y*width+x].Wall = wall
			}
		}
	}
	return NewGrid(width, height, cells)
}

// CellAt returns the cell at (x, y); ok is false outside the grid.
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// Dimensions returns the grid size in cells.
func (g *Grid) Dimensions() (int, int) {
	return g.width, g.height
}

// IsWall reports whether the world coordinate lies in a wall. Coordinates
// outside the grid count as walls so movement can never leave the map.
func (g *Grid) IsWall(x, y float64) bool {
	c, ok := g.CellAt(mathutil.FloorDiv(x), mathutil.FloorDiv(y))
	return !ok || c.IsWall()
}

// SetCell replaces a cell and bumps the version.
func (g *Grid) SetCell(x, y int, c Cell) error {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	g.cells[y*g.width+x] = c
	g.version.Add(1)
	return nil
}

// SetWall changes only the wall texture of a cell (e.g. a door opening).
func (g *Grid) SetWall(x, y int, id TextureID) error {
	c, ok := g.CellAt(x, y)
	if !ok {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	c.Wall = id
	return g.SetCell(x, y, c)
}

// Version increases every time a cell changes. Caches keyed on it stay valid
// while it is unchanged.
func (g *Grid) Version() uint64 {
	return g.version.Load()
}

// CountWalls returns the number of wall cells.
func (g *Grid) CountWalls() int {
	n := 0
	for _, c := range g.cells {
		if c.IsWall() {
			n++
		}
	}
	return n
}
