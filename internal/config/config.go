package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Player   PlayerConfig   `yaml:"player"`
	Monsters MonsterConfig  `yaml:"monsters"`
	Render   RenderConfig   `yaml:"render"`
	Lighting LightingConfig `yaml:"lighting"`
	Minimap  MinimapConfig  `yaml:"minimap"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	RenderScale  int    `yaml:"render_scale"` // framebuffer = screen / render_scale
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
	ShowStats    bool   `yaml:"show_stats"`
}

type CameraConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // degrees
	ViewDistance float64 `yaml:"view_distance"` // maximum ray length in cells
}

type PlayerConfig struct {
	MoveSpeed           float64 `yaml:"move_speed"`     // cells per second
	RotationSpeed       float64 `yaml:"rotation_speed"` // degrees per second
	MouseSensitivity    float64 `yaml:"mouse_sensitivity"`
	CollisionRadius     float64 `yaml:"collision_radius"`
	BobAmplitude        float64 `yaml:"bob_amplitude"` // pixels
	BobFrequency        float64 `yaml:"bob_frequency"` // cycles per second
	SprintMultiplier    float64 `yaml:"sprint_multiplier"`
	SprintBobMultiplier float64 `yaml:"sprint_bob_multiplier"`
	CollectRadius       float64 `yaml:"collect_radius"`
}

// MonsterConfig controls how monsters close in on the player.
type MonsterConfig struct {
	MoveSpeed    float64 `yaml:"move_speed"`    // cells per second, 0 = stand still
	StopDistance float64 `yaml:"stop_distance"` // cells from the player
	Radius       float64 `yaml:"radius"`        // wall probe radius
}

type RenderConfig struct {
	WallHeightFactor float64 `yaml:"wall_height_factor"`
	WallRayDivisor   int     `yaml:"wall_ray_divisor"`
	FloorRayDivisor  int     `yaml:"floor_ray_divisor"`
	Sampling         string  `yaml:"sampling"` // nearest | bilinear
	SideShade        float64 `yaml:"side_shade"`
	SpriteScale      float64 `yaml:"sprite_scale"`
	VoidColor        Color   `yaml:"void_color"`
	Workers          int     `yaml:"workers"` // 0 = one per CPU
}

type LightingConfig struct {
	Falloff   string         `yaml:"falloff"` // none | linear | inverse_square
	Intensity float64        `yaml:"intensity"`
	Ambient   float64        `yaml:"ambient"`
	Vignette  VignetteConfig `yaml:"vignette"`
	Glitch    GlitchConfig   `yaml:"glitch"`
}

type VignetteConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Intensity float64 `yaml:"intensity"`
	Radius    float64 `yaml:"radius"`
}

// GlitchConfig drives the corruption effect from the nearest monster.
type GlitchConfig struct {
	Enabled       bool    `yaml:"enabled"`
	StartDistance float64 `yaml:"start_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	MaxIntensity  float64 `yaml:"max_intensity"` // percent
}

type MinimapConfig struct {
	Enabled             bool          `yaml:"enabled"`
	Size                int           `yaml:"size"`
	Margin              int           `yaml:"margin"`
	Scale               float64       `yaml:"scale"`  // pixels per cell, 0 = fit size
	Radius              float64       `yaml:"radius"` // entity visibility, 0 = all
	PlayerDotRadius     int           `yaml:"player_dot_radius"`
	DirectionLineLength int           `yaml:"direction_line_length"`
	Colors              MinimapColors `yaml:"colors"`
}

type MinimapColors struct {
	Background  Color         `yaml:"background"`
	WallDefault Color         `yaml:"wall_default"`
	Walls       map[int]Color `yaml:"walls"`
	Player      Color         `yaml:"player"`
	Entity      Color         `yaml:"entity"`
	Collectible Color         `yaml:"collectible"`
}

type AssetsConfig struct {
	MapFile     string `yaml:"map_file"`
	TextureDir  string `yaml:"texture_dir"`
	TextureSize int    `yaml:"texture_size"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// LoadConfig reads a yaml file over the defaults and validates the result.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, filename); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Helper functions for easy access to commonly used values

// GetRenderSize returns the framebuffer resolution.
func (c *Config) GetRenderSize() (int, int) {
	scale := max(1, c.Display.RenderScale)
	return c.Display.ScreenWidth / scale, c.Display.ScreenHeight / scale
}

// GetFOVRadians returns the field of view in radians.
func (c *Config) GetFOVRadians() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

// GetRotSpeed returns the turn rate in radians per second.
func (c *Config) GetRotSpeed() float64 {
	return c.Player.RotationSpeed * math.Pi / 180
}

func (c *Config) GetViewDistance() float64 {
	return c.Camera.ViewDistance
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	w, h := c.GetRenderSize()
	check(w > 0 && h > 0, "render resolution %dx%d", w, h)
	check(c.Display.RenderScale >= 0, "display.render_scale %d", c.Display.RenderScale)
	check(c.Camera.FieldOfView > 0 && c.Camera.FieldOfView < 180, "camera.field_of_view %v", c.Camera.FieldOfView)
	check(c.Camera.ViewDistance > 0, "camera.view_distance %v", c.Camera.ViewDistance)
	check(c.Render.WallHeightFactor > 0, "render.wall_height_factor %v", c.Render.WallHeightFactor)
	check(c.Render.WallRayDivisor >= 1, "render.wall_ray_divisor %d", c.Render.WallRayDivisor)
	check(c.Render.FloorRayDivisor >= 1, "render.floor_ray_divisor %d", c.Render.FloorRayDivisor)
	check(c.Render.SideShade >= 0 && c.Render.SideShade <= 1, "render.side_shade %v", c.Render.SideShade)
	check(c.Render.SpriteScale > 0, "render.sprite_scale %v", c.Render.SpriteScale)
	check(c.Render.Workers >= 0, "render.workers %d", c.Render.Workers)
	check(oneOf(c.Render.Sampling, "nearest", "bilinear"), "render.sampling %q", c.Render.Sampling)
	check(oneOf(c.Lighting.Falloff, "none", "linear", "inverse_square"), "lighting.falloff %q", c.Lighting.Falloff)
	check(c.Lighting.Ambient >= 0 && c.Lighting.Ambient <= 1, "lighting.ambient %v", c.Lighting.Ambient)
	check(c.Lighting.Intensity >= 0, "lighting.intensity %v", c.Lighting.Intensity)
	check(c.Lighting.Vignette.Radius >= 0 && c.Lighting.Vignette.Radius < 1.414, "lighting.vignette.radius %v", c.Lighting.Vignette.Radius)
	check(c.Lighting.Glitch.StartDistance > c.Lighting.Glitch.MaxDistance || !c.Lighting.Glitch.Enabled,
		"lighting.glitch start_distance %v must exceed max_distance %v", c.Lighting.Glitch.StartDistance, c.Lighting.Glitch.MaxDistance)
	check(c.Minimap.Size > 0 || !c.Minimap.Enabled, "minimap.size %d", c.Minimap.Size)
	check(c.Minimap.Scale >= 0, "minimap.scale %v", c.Minimap.Scale)
	check(c.Assets.TextureSize > 0, "assets.texture_size %d", c.Assets.TextureSize)
	check(c.Player.CollisionRadius >= 0 && c.Player.CollisionRadius < 0.5, "player.collision_radius %v", c.Player.CollisionRadius)
	check(c.Monsters.MoveSpeed >= 0, "monsters.move_speed %v", c.Monsters.MoveSpeed)
	check(c.Monsters.StopDistance >= 0, "monsters.stop_distance %v", c.Monsters.StopDistance)
	check(c.Monsters.Radius >= 0 && c.Monsters.Radius < 0.5, "monsters.radius %v", c.Monsters.Radius)

	return errors.Join(errs...)
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
