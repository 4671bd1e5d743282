package config

// Default returns a configuration that runs without any config file.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 720,
			RenderScale:  2,
			WindowTitle:  "Labyrinth",
			Resizable:    true,
			TPS:          60,
		},
		Camera: CameraConfig{
			FieldOfView:  66,
			ViewDistance: 32,
		},
		Player: PlayerConfig{
			MoveSpeed:           3,
			RotationSpeed:       120,
			MouseSensitivity:    0.2,
			CollisionRadius:     0.2,
			BobAmplitude:        4,
			BobFrequency:        1.6,
			SprintMultiplier:    1.5,
			SprintBobMultiplier: 2,
			CollectRadius:       0.5,
		},
		Monsters: MonsterConfig{
			MoveSpeed:    0.6,
			StopDistance: 0.6,
			Radius:       0.25,
		},
		Render: RenderConfig{
			WallHeightFactor: 1,
			WallRayDivisor:   1,
			FloorRayDivisor:  1,
			Sampling:         "nearest",
			SideShade:        0.7,
			SpriteScale:      1,
			VoidColor:        Hex("#000000"),
		},
		Lighting: LightingConfig{
			Falloff:   "inverse_square",
			Intensity: 6,
			Ambient:   0.12,
			Vignette: VignetteConfig{
				Enabled:   true,
				Intensity: 0.8,
				Radius:    0.6,
			},
			Glitch: GlitchConfig{
				Enabled:       true,
				StartDistance: 5,
				MaxDistance:   0,
				MaxIntensity:  20,
			},
		},
		Minimap: MinimapConfig{
			Enabled:             true,
			Size:                150,
			Margin:              10,
			PlayerDotRadius:     3,
			DirectionLineLength: 10,
			Colors: MinimapColors{
				Background:  Hex("#000000"),
				WallDefault: Hex("#646464"),
				Walls: map[int]Color{
					1: Hex("#646464"),
					2: Hex("#643232"),
					3: Hex("#326432"),
					4: Hex("#320032"),
					5: Hex("#7a0005"),
					9: Hex("#8b5a2b"),
				},
				Player:      Hex("#ff0000"),
				Entity:      Hex("#ff6464"),
				Collectible: Hex("#ffd700"),
			},
		},
		Assets: AssetsConfig{
			MapFile:     "assets/maps/level1.txt",
			TextureDir:  "assets/textures",
			TextureSize: 64,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
