// Command termview walks a map in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"labyrinth/internal/config"
	"labyrinth/internal/logger"
	"labyrinth/internal/scene"
	"labyrinth/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "termview:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.Load("termview", os.Args[1:])
	if err != nil {
		return err
	}

	// the screen owns stdout, so logs only go to the file when one is set
	log := logger.Init(logger.Options{
		Level: cfg.Logging.Level,
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sc, err := scene.Load(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sc.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	log.Info("terminal viewer started", zap.String("map", sc.Map.Name))
	return terminal.New(screen, sc, cfg, log.Named("terminal")).Run(ctx)
}
