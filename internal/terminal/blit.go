package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the upper pixel in the foreground, the lower in the
// background, so one cell shows two rows.
const halfBlock = '▀'

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blit draws img at cell (x0, y0), two pixel rows per cell, clipped to the
// screen.
func Blit(s tcell.Screen, img *image.RGBA, x0, y0 int) {
	sw, sh := s.Size()
	b := img.Bounds()
	for cy := 0; cy*2 < b.Dy(); cy++ {
		y := y0 + cy
		if y < 0 || y >= sh {
			continue
		}
		for cx := 0; cx < b.Dx(); cx++ {
			x := x0 + cx
			if x < 0 || x >= sw {
				continue
			}
			top := img.RGBAAt(b.Min.X+cx, b.Min.Y+cy*2)
			bottom := top
			if cy*2+1 < b.Dy() {
				bottom = img.RGBAAt(b.Min.X+cx, b.Min.Y+cy*2+1)
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			s.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

// PrintAt writes text on one row, clipped to the screen.
func PrintAt(s tcell.Screen, x, y int, text string, style tcell.Style) {
	sw, _ := s.Size()
	for _, r := range text {
		if x >= sw {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
