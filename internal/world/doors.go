package world

import "fmt"

// DoorTexture is the wall id that marks a door in map files.
const DoorTexture TextureID = 9

// Doors remembers which cells of a grid are doors so an opened door (an
// empty cell) can be closed again.
type Doors struct {
	grid  *Grid
	id    TextureID
	cells map[[2]int]bool // true while open
}

// FindDoors collects every cell whose wall is id.
func FindDoors(g *Grid, id TextureID) *Doors {
	d := &Doors{grid: g, id: id, cells: make(map[[2]int]bool)}
	w, h := g.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, _ := g.CellAt(x, y); c.Wall == id {
				d.cells[[2]int{x, y}] = false
			}
		}
	}
	return d
}

// Len returns the number of doors.
func (d *Doors) Len() int {
	return len(d.cells)
}

// IsDoor reports whether (x, y) is a door cell.
func (d *Doors) IsDoor(x, y int) bool {
	_, ok := d.cells[[2]int{x, y}]
	return ok
}

// IsOpen reports whether the door at (x, y) is open.
func (d *Doors) IsOpen(x, y int) bool {
	return d.cells[[2]int{x, y}]
}

// Toggle opens a closed door or closes an open one. A door is not closed
// while occupied reports true for its cell. It returns the new state.
func (d *Doors) Toggle(x, y int, occupied func(x, y int) bool) (open bool, err error) {
	key := [2]int{x, y}
	open, ok := d.cells[key]
	if !ok {
		return false, fmt.Errorf("no door at (%d,%d)", x, y)
	}
	if open {
		if occupied != nil && occupied(x, y) {
			return true, nil
		}
		if err := d.grid.SetWall(x, y, d.id); err != nil {
			return true, err
		}
	} else if err := d.grid.SetWall(x, y, Empty); err != nil {
		return false, err
	}
	d.cells[key] = !open
	return !open, nil
}
