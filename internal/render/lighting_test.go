package render

import (
	"image/color"
	"math"
	"testing"
)

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name  string
		light Lighting
		d     float64
		want  float64
	}{
		{"none", Lighting{Falloff: FalloffNone}, 25, 1},
		{"linear halfway", Lighting{Falloff: FalloffLinear}, 16, 0.5},
		{"linear clamped to ambient", Lighting{Falloff: FalloffLinear, Ambient: 0.2}, 30, 0.2},
		{"inverse square near is clamped to 1", Lighting{Falloff: FalloffInverseSquare, Intensity: 6}, 0.5, 1},
		{"inverse square", Lighting{Falloff: FalloffInverseSquare, Intensity: 6}, 3, 6 / 9.1},
		{"inverse square far", Lighting{Falloff: FalloffInverseSquare, Intensity: 6, Ambient: 0.12}, 20, 0.12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.light.Attenuation(tt.d, 32); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Attenuation(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParseFalloff(t *testing.T) {
	for _, s := range []string{"none", "linear", "inverse_square"} {
		f, err := ParseFalloff(s)
		if err != nil || f.String() != s {
			t.Errorf("ParseFalloff(%q) = %v, %v", s, f, err)
		}
	}
	if _, err := ParseFalloff("cubic"); err == nil {
		t.Error("expected an error for cubic")
	}
}

func TestGlitchIntensity(t *testing.T) {
	g := Glitch{Enabled: true, StartDistance: 5, MaxDistance: 1, MaxIntensity: 20}
	tests := []struct {
		d, want float64
	}{
		{math.Inf(1), 0},
		{8, 0},
		{5, 0},
		{3, 0.1},
		{1, 0.2},
		{0.2, 0.2},
	}
	for _, tt := range tests {
		if got := g.Intensity(tt.d); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Intensity(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}

	g.Enabled = false
	if got := g.Intensity(1); got != 0 {
		t.Errorf("disabled glitch = %v", got)
	}
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := shade(c, 1); got != c {
		t.Errorf("shade(1) = %v", got)
	}
	if got, want := shade(c, 0.5), (color.RGBA{R: 100, G: 50, B: 25, A: 255}); got != want {
		t.Errorf("shade(0.5) = %v, want %v", got, want)
	}
	// beyond [0,1] channels wrap instead of saturating
	if got, want := shade(c, 1.5), (color.RGBA{R: 44, G: 150, B: 75, A: 255}); got != want {
		t.Errorf("shade(1.5) = %v, want %v", got, want)
	}
	if got := shade(c, -0.5); got.A != 255 {
		t.Errorf("shade(-0.5) changed alpha: %v", got)
	}

	// a translucent pixel keeps every wrapped channel within its alpha
	half := color.RGBA{R: 100, G: 120, B: 20, A: 128}
	for _, m := range []float64{1.5, 2.3, -0.7} {
		got := shade(half, m)
		if got.R > got.A || got.G > got.A || got.B > got.A || got.A != 128 {
			t.Errorf("shade(%v) = %v, not premultiplied", m, got)
		}
	}
	if got, want := shade(half, 1.5), (color.RGBA{R: 128, G: 128, B: 30, A: 128}); got != want {
		t.Errorf("shade(1.5) = %v, want %v", got, want)
	}

	fb := NewFramebuffer(1, 1)
	fb.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fb.blend(0, 0, shade(half, 1.5))
	if got := fb.At(0, 0); got.R < 128 || got.G < 128 {
		t.Errorf("blend over white wrapped around: %v", got)
	}
}

func TestVignetteMask(t *testing.T) {
	off := Lighting{}
	if off.VignetteMask(8, 8) != nil {
		t.Error("disabled vignette should have no mask")
	}

	l := Lighting{Vignette: true, VignetteIntensity: 0.8, VignetteRadius: 0.6}
	const w, h = 40, 20
	mask := l.VignetteMask(w, h)
	if len(mask) != w*h {
		t.Fatalf("mask len = %d", len(mask))
	}
	if c := mask[(h/2)*w+w/2]; c != 1 {
		t.Errorf("center = %v, want 1", c)
	}
	corner := mask[0]
	if !(corner < 1 && corner >= 0.2-1e-6) {
		t.Errorf("corner = %v, want in [0.2, 1)", corner)
	}
	t.Logf("corner multiplier %.3f", corner)
}
