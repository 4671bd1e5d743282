package render

import (
	"fmt"
	"image/color"
	"math"

	"labyrinth/internal/mathutil"
)

// Falloff selects the distance attenuation curve.
type Falloff int

const (
	FalloffNone Falloff = iota
	FalloffLinear
	FalloffInverseSquare
)

func (f Falloff) String() string {
	switch f {
	case FalloffLinear:
		return "linear"
	case FalloffInverseSquare:
		return "inverse_square"
	default:
		return "none"
	}
}

// ParseFalloff accepts none, linear or inverse_square.
func ParseFalloff(s string) (Falloff, error) {
	switch s {
	case "", "none":
		return FalloffNone, nil
	case "linear":
		return FalloffLinear, nil
	case "inverse_square":
		return FalloffInverseSquare, nil
	default:
		return FalloffNone, fmt.Errorf("unknown falloff %q", s)
	}
}

// Lighting is the shading model shared by walls, floors and sprites.
type Lighting struct {
	Falloff   Falloff
	Intensity float64
	Ambient   float64

	Vignette          bool
	VignetteIntensity float64
	VignetteRadius    float64
}

// Attenuation returns the light multiplier at distance d, clamped to
// [Ambient, 1].
func (l Lighting) Attenuation(d, maxDistance float64) float64 {
	var f float64
	switch l.Falloff {
	case FalloffLinear:
		f = 1 - d/maxDistance
	case FalloffInverseSquare:
		f = l.Intensity / (d*d + 0.1)
	default:
		f = 1
	}
	return mathutil.Clamp(f, l.Ambient, 1)
}

// VignetteMask precomputes the per-pixel vignette multiplier for a screen
// size, row-major. It returns nil when the vignette is disabled.
func (l Lighting) VignetteMask(width, height int) []float32 {
	if !l.Vignette || l.VignetteIntensity == 0 {
		return nil
	}
	mask := make([]float32, width*height)
	r2 := l.VignetteRadius * l.VignetteRadius
	denom := 1.414 - l.VignetteRadius + 0.001
	hw, hh := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		ny := (float64(y) - hh) / hh
		for x := 0; x < width; x++ {
			nx := (float64(x) - hw) / hw
			m := 1.0
			if d2 := nx*nx + ny*ny; d2 > r2 {
				fall := math.Min(1, (math.Sqrt(d2)-l.VignetteRadius)/denom)
				m = 1 - fall*l.VignetteIntensity
			}
			mask[y*width+x] = float32(m)
		}
	}
	return mask
}

// Glitch maps monster proximity to a corruption intensity.
type Glitch struct {
	Enabled       bool
	StartDistance float64
	MaxDistance   float64
	MaxIntensity  float64 // percent
}

// Intensity returns 0 beyond StartDistance, rising linearly to
// MaxIntensity/100 at MaxDistance.
func (g Glitch) Intensity(closest float64) float64 {
	if !g.Enabled || math.IsInf(closest, 1) || closest >= g.StartDistance {
		return 0
	}
	span := g.StartDistance - g.MaxDistance
	if span <= 0 {
		return g.MaxIntensity / 100
	}
	t := mathutil.Clamp((g.StartDistance-closest)/span, 0, 1)
	return t * g.MaxIntensity / 100
}

// shade scales a premultiplied color by m. Inside [0, 1] the channels are
// scaled; outside they wrap modulo 256, which is what a corruption factor
// beyond 1 looks like. Wrapped channels never exceed alpha, so the result
// stays a valid premultiplied color.
func shade(c color.RGBA, m float64) color.RGBA {
	if m >= 0 && m <= 1 {
		return color.RGBA{
			R: uint8(float64(c.R) * m),
			G: uint8(float64(c.G) * m),
			B: uint8(float64(c.B) * m),
			A: c.A,
		}
	}
	return color.RGBA{R: wrap(c.R, m, c.A), G: wrap(c.G, m, c.A), B: wrap(c.B, m, c.A), A: c.A}
}

func wrap(v uint8, m float64, alpha uint8) uint8 {
	i := int(float64(v)*m) % 256
	if i < 0 {
		i += 256
	}
	return uint8(min(i, int(alpha)))
}
