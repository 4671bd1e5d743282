package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"labyrinth/internal/camera"
	"labyrinth/internal/entity"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// entityMarkerRadius is the radius of entity discs in pixels.
const entityMarkerRadius = 2

// MinimapStyle is the palette and geometry of the overhead view.
type MinimapStyle struct {
	// Size is the target side in pixels when Scale is not positive.
	Size int
	// Scale is pixels per cell; <= 0 fits the grid into Size.
	Scale float64
	// Radius limits entity markers to this distance from the player; 0 shows all.
	Radius          float64
	PlayerDotRadius int
	DirectionLength int

	Background  color.RGBA
	WallDefault color.RGBA
	Walls       map[world.TextureID]color.RGBA
	Player      color.RGBA
	Entity      color.RGBA
	Collectible color.RGBA
}

// DefaultMinimapStyle is a grey-on-black palette.
func DefaultMinimapStyle() MinimapStyle {
	return MinimapStyle{
		Size:            150,
		PlayerDotRadius: 2,
		DirectionLength: 8,
		Background:      color.RGBA{A: 255},
		WallDefault:     color.RGBA{R: 127, G: 127, B: 127, A: 255},
		Player:          color.RGBA{G: 255, A: 255},
		Entity:          color.RGBA{R: 255, A: 255},
		Collectible:     color.RGBA{R: 255, G: 215, A: 255},
	}
}

func (st MinimapStyle) wallColor(id world.TextureID) color.RGBA {
	if c, ok := st.Walls[id]; ok {
		return c
	}
	return st.WallDefault
}

type minimapKey struct {
	grid    *world.Grid
	version uint64
	scale   float64
}

// MinimapRenderer draws the orthographic overhead view. The wall layer of a
// *world.Grid is cached and rebuilt when the grid's version changes; other
// grid implementations are redrawn every call.
type MinimapRenderer struct {
	style MinimapStyle

	mu     sync.Mutex
	key    minimapKey
	static *image.RGBA
}

func NewMinimapRenderer(style MinimapStyle) *MinimapRenderer {
	return &MinimapRenderer{style: style}
}

// Render returns a new image of the grid with entity markers, the player's
// heading line and the player dot, drawn in that order. A scale <= 0 uses
// the style's scale, and if that is unset too, fits the grid into Size.
// A nil grid gives a background-only square of Size pixels.
func (m *MinimapRenderer) Render(grid world.GridView, pose camera.Pose, entities entity.Snapshot, scale float64) *image.RGBA {
	if grid == nil {
		return m.blank()
	}
	gw, gh := grid.Dimensions()
	if scale <= 0 {
		scale = m.style.Scale
	}
	if scale <= 0 {
		scale = float64(m.style.Size) / float64(mathutil.IntMax(1, mathutil.IntMax(gw, gh)))
	}
	if scale <= 0 {
		scale = 1
	}

	static := m.wallLayer(grid, scale)
	img := image.NewRGBA(static.Bounds())
	copy(img.Pix, static.Pix)

	for _, it := range entities {
		if m.style.Radius > 0 && it.Position.Dist(pose.Position) > m.style.Radius {
			continue
		}
		c := m.style.Entity
		if it.Kind == entity.KindCollectible {
			c = m.style.Collectible
		}
		fillDisc(img, it.Position.Scale(scale), entityMarkerRadius, c)
	}

	center := pose.Position.Scale(scale)
	tip := center.Add(pose.Dir.Normalize().Scale(float64(m.style.DirectionLength)))
	drawLine(img, center, tip, m.style.Player)
	fillDisc(img, center, m.style.PlayerDotRadius, m.style.Player)
	return img
}

func (m *MinimapRenderer) blank() *image.RGBA {
	side := mathutil.IntMax(1, m.style.Size)
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(img, img.Bounds(), &image.Uniform{C: m.style.Background}, image.Point{}, xdraw.Src)
	return img
}

// wallLayer returns the background and wall cells, from cache when possible.
// The returned image must not be modified.
func (m *MinimapRenderer) wallLayer(grid world.GridView, scale float64) *image.RGBA {
	g, cacheable := grid.(*world.Grid)
	if !cacheable {
		return m.drawWalls(grid, scale)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := minimapKey{grid: g, version: g.Version(), scale: scale}
	if m.static != nil && m.key == key {
		return m.static
	}
	m.static = m.drawWalls(grid, scale)
	m.key = key
	return m.static
}

func (m *MinimapRenderer) drawWalls(grid world.GridView, scale float64) *image.RGBA {
	gw, gh := grid.Dimensions()
	w := int(math.Ceil(float64(gw) * scale))
	h := int(math.Ceil(float64(gh) * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), &image.Uniform{C: m.style.Background}, image.Point{}, xdraw.Src)

	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			cell, ok := grid.CellAt(x, y)
			if !ok || !cell.IsWall() {
				continue
			}
			r := image.Rect(
				int(float64(x)*scale), int(float64(y)*scale),
				int(float64(x+1)*scale), int(float64(y+1)*scale),
			)
			xdraw.Draw(img, r, &image.Uniform{C: m.style.wallColor(cell.Wall)}, image.Point{}, xdraw.Src)
		}
	}
	return img
}

// fillDisc paints the pixels whose centers lie within radius of center.
func fillDisc(img *image.RGBA, center mathutil.Vec2, radius int, c color.RGBA) {
	r := float64(radius) + 0.5
	cx, cy := center.Floor()
	for y := cy - radius - 1; y <= cy+radius+1; y++ {
		for x := cx - radius - 1; x <= cx+radius+1; x++ {
			p := mathutil.V(float64(x)+0.5, float64(y)+0.5)
			if p.DistSq(center) <= r*r {
				if (image.Point{X: x, Y: y}).In(img.Rect) {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

// drawLine walks from a to b one pixel at a time.
func drawLine(img *image.RGBA, a, b mathutil.Vec2, c color.RGBA) {
	d := b.Sub(a)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		steps = 1
	}
	inc := d.Scale(1 / float64(steps))
	p := a
	for i := 0; i <= steps; i++ {
		x, y := p.Floor()
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
		p = p.Add(inc)
	}
}
