package graphics

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Texture is an opaque 2D pixel array of alpha-premultiplied colors. Pixels
// with alpha 0 are transparent.
type Texture struct {
	Width, Height int
	Pix           []color.RGBA
}

// NewTexture returns a fully transparent texture.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pix: make([]color.RGBA, width*height)}
}

// Solid returns a texture filled with one color.
func Solid(width, height int, c color.RGBA) *Texture {
	t := NewTexture(width, height)
	for i := range t.Pix {
		t.Pix[i] = c
	}
	return t
}

// FromImage copies any image into a texture.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := NewTexture(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			t.Pix[y*t.Width+x] = color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
	return t
}

// At returns the texel at (x, y); coordinates wrap around.
func (t *Texture) At(x, y int) color.RGBA {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Pix[y*t.Width+x]
}

// Set writes the texel at (x, y); out-of-range writes are ignored.
func (t *Texture) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pix[y*t.Width+x] = c
}

// Nearest samples at normalized coordinates; u and v repeat every 1.0.
func (t *Texture) Nearest(u, v float64) color.RGBA {
	return t.At(int(floor(u*float64(t.Width))), int(floor(v*float64(t.Height))))
}

// Bilinear samples at normalized coordinates, blending the four nearest
// texels. Coordinates repeat every 1.0.
func (t *Texture) Bilinear(u, v float64) color.RGBA {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0, y0 := floor(fx), floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	c00 := t.At(ix, iy)
	c10 := t.At(ix+1, iy)
	c01 := t.At(ix, iy+1)
	c11 := t.At(ix+1, iy+1)

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a) + (float64(b)-float64(a))*tx
		bot := float64(c) + (float64(d)-float64(c))*tx
		return uint8(top + (bot-top)*ty + 0.5)
	}
	return color.RGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

// Sample dispatches on the sampling mode.
func (t *Texture) Sample(mode Sampling, u, v float64) color.RGBA {
	if mode == SampleBilinear {
		return t.Bilinear(u, v)
	}
	return t.Nearest(u, v)
}

// ToImage copies the texture into an *image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for i, c := range t.Pix {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

// Sampling selects how textures are resampled on screen.
type Sampling int

const (
	SampleNearest Sampling = iota
	SampleBilinear
)

func (s Sampling) String() string {
	if s == SampleBilinear {
		return "bilinear"
	}
	return "nearest"
}

// ParseSampling accepts "nearest" or "bilinear".
func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return SampleNearest, nil
	case "bilinear", "smooth":
		return SampleBilinear, nil
	default:
		return SampleNearest, fmt.Errorf("unknown sampling mode %q", s)
	}
}

func floor(f float64) float64 {
	i := float64(int64(f))
	if f < i {
		return i - 1
	}
	return i
}
