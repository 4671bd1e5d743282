package config

import (
	"flag"
	"fmt"
	"os"
)

// Flags are the command-line overrides shared by every executable.
type Flags struct {
	Config   string
	Map      string
	Debug    bool
	Width    int
	Height   int
	FOV      float64
	Sampling string
	LogFile  string
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Map, "map", "", "Path to map file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging and stats overlay")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.Float64Var(&f.FOV, "fov", 0, "Field of view in degrees")
	fs.StringVar(&f.Sampling, "sampling", "", "Texture sampling: nearest or bilinear")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file as well")
	return f
}

// Load builds the configuration with priority defaults < file < flags. When
// no -config flag is given, ./config.yaml is used if it exists.
func Load(name string, args []string) (*Config, *Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	cfg, err := flags.Resolve()
	return cfg, flags, err
}

// Resolve applies defaults, the config file and the flags, then validates.
func (f *Flags) Resolve() (*Config, error) {
	cfg := Default()

	path := f.Config
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *Config) {
	if f.Map != "" {
		cfg.Assets.MapFile = f.Map
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Display.ShowStats = true
	}
	if f.Width > 0 {
		cfg.Display.ScreenWidth = f.Width
	}
	if f.Height > 0 {
		cfg.Display.ScreenHeight = f.Height
	}
	if f.FOV > 0 {
		cfg.Camera.FieldOfView = f.FOV
	}
	if f.Sampling != "" {
		cfg.Render.Sampling = f.Sampling
	}
	if f.LogFile != "" {
		cfg.Logging.File = f.LogFile
	}
}
