package render

import (
	"errors"
	"fmt"
	"image/color"

	"labyrinth/internal/config"
	"labyrinth/internal/graphics"
	"labyrinth/internal/world"
)

var ErrInvalidResolution = errors.New("render: resolution must be positive")

var ErrInvalidSettings = errors.New("render: invalid settings")

// Settings are the renderer's inputs that do not change between frames.
type Settings struct {
	Width, Height int
	MaxDistance   float64
	// WallHeight scales projected wall and sprite heights.
	WallHeight float64
	// WallRayDivisor casts one ray per this many columns.
	WallRayDivisor int
	// FloorRayDivisor samples one floor texel per this many pixels of a row.
	FloorRayDivisor int
	Sampling        graphics.Sampling
	SideShade       float64
	SpriteScale     float64
	VoidColor       color.RGBA
	Lighting        Lighting
	Glitch          Glitch
}

// DefaultSettings returns flat-lit settings for a width x height buffer.
func DefaultSettings(width, height int) Settings {
	return Settings{
		Width:           width,
		Height:          height,
		MaxDistance:     32,
		WallHeight:      1,
		WallRayDivisor:  1,
		FloorRayDivisor: 1,
		Sampling:        graphics.SampleNearest,
		SideShade:       0.7,
		SpriteScale:     1,
		VoidColor:       color.RGBA{A: 255},
		Lighting:        Lighting{Falloff: FalloffNone, Ambient: 0},
	}
}

// SettingsFromConfig translates the render-related configuration.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	w, h := cfg.GetRenderSize()
	sampling, err := graphics.ParseSampling(cfg.Render.Sampling)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	falloff, err := ParseFalloff(cfg.Lighting.Falloff)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s := Settings{
		Width:           w,
		Height:          h,
		MaxDistance:     cfg.GetViewDistance(),
		WallHeight:      cfg.Render.WallHeightFactor,
		WallRayDivisor:  cfg.Render.WallRayDivisor,
		FloorRayDivisor: cfg.Render.FloorRayDivisor,
		Sampling:        sampling,
		SideShade:       cfg.Render.SideShade,
		SpriteScale:     cfg.Render.SpriteScale,
		VoidColor:       cfg.Render.VoidColor.ToRGBA(),
		Lighting: Lighting{
			Falloff:           falloff,
			Intensity:         cfg.Lighting.Intensity,
			Ambient:           cfg.Lighting.Ambient,
			Vignette:          cfg.Lighting.Vignette.Enabled,
			VignetteIntensity: cfg.Lighting.Vignette.Intensity,
			VignetteRadius:    cfg.Lighting.Vignette.Radius,
		},
		Glitch: Glitch{
			Enabled:       cfg.Lighting.Glitch.Enabled,
			StartDistance: cfg.Lighting.Glitch.StartDistance,
			MaxDistance:   cfg.Lighting.Glitch.MaxDistance,
			MaxIntensity:  cfg.Lighting.Glitch.MaxIntensity,
		},
	}
	return s, s.Validate()
}

// Validate rejects settings that cannot produce a frame.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, s.Width, s.Height)
	}
	switch {
	case !(s.MaxDistance > 0):
		return fmt.Errorf("%w: max distance %v", ErrInvalidSettings, s.MaxDistance)
	case !(s.WallHeight > 0):
		return fmt.Errorf("%w: wall height %v", ErrInvalidSettings, s.WallHeight)
	case s.WallRayDivisor < 1 || s.FloorRayDivisor < 1:
		return fmt.Errorf("%w: ray divisors %d/%d", ErrInvalidSettings, s.WallRayDivisor, s.FloorRayDivisor)
	case !(s.SpriteScale > 0):
		return fmt.Errorf("%w: sprite scale %v", ErrInvalidSettings, s.SpriteScale)
	}
	return nil
}

// MinimapStyleFromConfig builds the minimap palette and geometry.
func MinimapStyleFromConfig(cfg *config.Config) MinimapStyle {
	mc := cfg.Minimap
	walls := make(map[world.TextureID]color.RGBA, len(mc.Colors.Walls))
	for id, c := range mc.Colors.Walls {
		walls[world.TextureID(id)] = c.ToRGBA()
	}
	return MinimapStyle{
		Size:            mc.Size,
		Scale:           mc.Scale,
		Radius:          mc.Radius,
		PlayerDotRadius: mc.PlayerDotRadius,
		DirectionLength: mc.DirectionLineLength,
		Background:      mc.Colors.Background.ToRGBA(),
		WallDefault:     mc.Colors.WallDefault.ToRGBA(),
		Walls:           walls,
		Player:          mc.Colors.Player.ToRGBA(),
		Entity:          mc.Colors.Entity.ToRGBA(),
		Collectible:     mc.Colors.Collectible.ToRGBA(),
	}
}
