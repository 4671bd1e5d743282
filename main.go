package main

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"labyrinth/internal/config"
	"labyrinth/internal/game"
	"labyrinth/internal/logger"
	"labyrinth/internal/scene"
)

func main() {
	ensureRuntimeCWD()

	cfg, flags, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		// logging is not configured yet
		logger.InitStdout("info", "")
		logger.Fatal("configuration", zap.Error(err))
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Console: os.Stdout,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})
	defer logger.Sync()
	log.Info("starting", zap.String("config", flags.Config), zap.String("map", cfg.Assets.MapFile))

	sc, err := scene.Load(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("loading scene", zap.Error(err))
	}
	defer sc.Close()

	if err := game.Run(cfg, sc, log.Named("game")); err != nil {
		log.Error("game stopped", zap.Error(err))
	}
}

// ensureRuntimeCWD switches to the executable's directory when started from
// elsewhere, so relative asset paths resolve.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
