package render

import (
	"bytes"
	"image"
	"image/color"
)

// Framebuffer is an RGBA pixel buffer, row-major, four bytes per pixel with
// premultiplied alpha. Its layout matches image.RGBA so it can be uploaded
// to a texture or encoded without copying.
type Framebuffer struct {
	Width, Height int
	Pix           []uint8
}

// DepthBuffer holds the perpendicular wall distance of every screen column.
type DepthBuffer []float64

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

func (fb *Framebuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 4
}

// Set writes a pixel; writes outside the buffer are dropped.
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := fb.offset(x, y)
	fb.Pix[i+0] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// At reads a pixel; outside the buffer it returns transparent black.
func (fb *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.RGBA{}
	}
	i := fb.offset(x, y)
	return color.RGBA{R: fb.Pix[i], G: fb.Pix[i+1], B: fb.Pix[i+2], A: fb.Pix[i+3]}
}

// blend composites a premultiplied color over the pixel.
func (fb *Framebuffer) blend(x, y int, c color.RGBA) {
	if c.A == 255 {
		fb.Set(x, y, c)
		return
	}
	i := fb.offset(x, y)
	inv := 255 - uint32(c.A)
	fb.Pix[i+0] = c.R + uint8(uint32(fb.Pix[i+0])*inv/255)
	fb.Pix[i+1] = c.G + uint8(uint32(fb.Pix[i+1])*inv/255)
	fb.Pix[i+2] = c.B + uint8(uint32(fb.Pix[i+2])*inv/255)
	fb.Pix[i+3] = c.A + uint8(uint32(fb.Pix[i+3])*inv/255)
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c color.RGBA) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(fb.Pix); filled *= 2 {
		copy(fb.Pix[filled:], fb.Pix[:filled])
	}
}

// Image returns an image.RGBA sharing the pixel memory.
func (fb *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{Pix: fb.Pix, Stride: fb.Width * 4, Rect: image.Rect(0, 0, fb.Width, fb.Height)}
}

// Clone returns an independent copy.
func (fb *Framebuffer) Clone() *Framebuffer {
	c := &Framebuffer{Width: fb.Width, Height: fb.Height, Pix: make([]uint8, len(fb.Pix))}
	copy(c.Pix, fb.Pix)
	return c
}

// Equal reports whether both buffers hold identical pixels.
func (fb *Framebuffer) Equal(o *Framebuffer) bool {
	return fb.Width == o.Width && fb.Height == o.Height && bytes.Equal(fb.Pix, o.Pix)
}

// Count returns how many pixels equal c.
func (fb *Framebuffer) Count(c color.RGBA) int {
	n := 0
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] == c.R && fb.Pix[i+1] == c.G && fb.Pix[i+2] == c.B && fb.Pix[i+3] == c.A {
			n++
		}
	}
	return n
}
