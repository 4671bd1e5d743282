package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a hex color ("#rrggbb") in yaml.
type Color struct {
	colorful.Color
}

// Hex builds a Color from a literal and panics on malformed input. Meant for
// defaults.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("config: bad color literal %q: %v", s, err))
	}
	return Color{c}
}

// ToRGBA returns the opaque 8-bit color.
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("line %d: color %q: %w", value.Line, s, err)
	}
	c.Color = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}
