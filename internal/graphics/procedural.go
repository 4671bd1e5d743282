package graphics

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WallColors are the light and dark tones of the built-in wall textures.
var WallColors = map[int][2]string{
	1: {"#969696", "#646464"},
	2: {"#966464", "#643232"},
	3: {"#649664", "#326432"},
	4: {"#643264", "#320032"},
	5: {"#a0320a", "#7a0005"},
	9: {"#8b5a2b", "#5c3a1a"},
}

// RGBA converts a colorful color to an opaque color.RGBA.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// MustHex parses a "#rrggbb" literal and panics if it is malformed.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("graphics: bad hex color %q: %v", s, err))
	}
	return c
}

// Placeholder is a magenta and black checkerboard.
func Placeholder(size int) *Texture {
	return Checker(size, 4, color.RGBA{255, 0, 255, 255}, color.RGBA{0, 0, 0, 255})
}

// Checker returns a size x size checkerboard with cells x cells squares.
func Checker(size, cells int, a, b color.RGBA) *Texture {
	t := NewTexture(size, size)
	step := max(1, size/max(1, cells))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/step+y/step)%2 == 0 {
				t.Pix[y*size+x] = a
			} else {
				t.Pix[y*size+x] = b
			}
		}
	}
	return t
}

// Bricks draws a running-bond brick pattern. Each brick is shaded slightly
// differently by blending between the light and dark tones.
func Bricks(size int, light, dark colorful.Color) *Texture {
	t := NewTexture(size, size)
	rows := 4
	brickH := max(1, size/rows)
	brickW := max(1, size/2)
	mortar := RGBA(dark.BlendLab(colorful.Color{}, 0.5))
	for y := 0; y < size; y++ {
		row := y / brickH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			bx := (x + offset) / brickW
			if y%brickH == 0 || (x+offset)%brickW == 0 {
				t.Pix[y*size+x] = mortar
				continue
			}
			// deterministic per-brick variation
			h := math.Abs(math.Sin(float64(row*31+bx*17) * 12.9898))
			t.Pix[y*size+x] = RGBA(light.BlendLab(dark, 0.15+0.5*h))
		}
	}
	return t
}

// Disc returns a transparent texture with a shaded disc, used for monster and
// pickup billboards.
func Disc(size int, c colorful.Color) *Texture {
	t := NewTexture(size, size)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			d := math.Hypot(dx, dy) / r
			if d > 1 {
				continue
			}
			t.Pix[y*size+x] = RGBA(c.BlendLab(colorful.Color{}, 0.6*d))
		}
	}
	return t
}

// Diamond returns a transparent texture with a filled diamond.
func Diamond(size int, c colorful.Color) *Texture {
	t := NewTexture(size, size)
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := (math.Abs(float64(x)+0.5-half) + math.Abs(float64(y)+0.5-half)) / half
			if d > 1 {
				continue
			}
			t.Pix[y*size+x] = RGBA(c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.4*(1-d)))
		}
	}
	return t
}

// Sprite ids of the built-in atlas.
const (
	SpriteMonsterFirst = 0
	SpriteMonsterCount = 4
	SpriteCollectible  = 10
	SpriteEffect       = 20
)

// DefaultAtlas builds a complete procedural atlas so the renderer works
// without any asset files.
func DefaultAtlas(size int) *Atlas {
	a := NewAtlas(Placeholder(size))
	for id, tones := range WallColors {
		a.Set(LayerWall, id, Bricks(size, MustHex(tones[0]), MustHex(tones[1])))
	}

	a.Set(LayerFloor, 0, Checker(size, 2, RGBA(MustHex("#505050")), RGBA(MustHex("#3c3c3c"))))
	a.Set(LayerFloor, 1, Checker(size, 4, RGBA(MustHex("#5a4632")), RGBA(MustHex("#46321e"))))
	a.Set(LayerFloor, 2, Checker(size, 8, RGBA(MustHex("#2e4a2e")), RGBA(MustHex("#1e3a1e"))))
	a.Set(LayerCeiling, 0, Checker(size, 2, RGBA(MustHex("#28283c")), RGBA(MustHex("#1e1e32"))))
	a.Set(LayerCeiling, 1, Solid(size, size, RGBA(MustHex("#101020"))))

	for i := 0; i < SpriteMonsterCount; i++ {
		hue := float64(i) * 360 / SpriteMonsterCount
		a.Set(LayerSprite, SpriteMonsterFirst+i, Disc(size, colorful.Hsv(hue, 0.8, 0.9)))
	}
	a.Set(LayerSprite, SpriteCollectible, Diamond(size, MustHex("#ffd700")))
	a.Set(LayerSprite, SpriteEffect, Disc(size/2, MustHex("#80c0ff")))
	return a
}
