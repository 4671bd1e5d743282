// Command snapshot renders one frame and the minimap of a map to PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"labyrinth/internal/camera"
	"labyrinth/internal/config"
	"labyrinth/internal/logger"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/render"
	"labyrinth/internal/scene"
)

type options struct {
	x, y       float64
	angle      float64 // degrees
	out        string
	minimapOut string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	var opts options
	fs.Float64Var(&opts.x, "x", math.NaN(), "Camera x in cells (default: map start)")
	fs.Float64Var(&opts.y, "y", math.NaN(), "Camera y in cells (default: map start)")
	fs.Float64Var(&opts.angle, "angle", 0, "Facing in degrees, 0 = east, -90 = north")
	fs.StringVar(&opts.out, "out", "frame.png", "Output file for the 3D view")
	fs.StringVar(&opts.minimapOut, "minimap-out", "minimap.png", "Output file for the minimap, empty to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := flags.Resolve()
	if err != nil {
		return err
	}
	log := logger.InitStdout(cfg.Logging.Level, cfg.Logging.File)
	defer logger.Sync()

	ctx := context.Background()
	sc, err := scene.Load(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sc.Close()

	if !math.IsNaN(opts.x) && !math.IsNaN(opts.y) {
		sc.Player.Teleport(mathutil.V(opts.x, opts.y))
	}
	sc.Player.Face(camera.Degrees(opts.angle))

	frame := sc.Frame()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st := sc.Renderer.Settings()
		fb := render.NewFramebuffer(st.Width, st.Height)
		if err := sc.Renderer.RenderInto(ctx, fb, make(render.DepthBuffer, st.Width), frame); err != nil {
			return err
		}
		return writePNG(opts.out, fb.Image())
	})
	if opts.minimapOut != "" {
		g.Go(func() error {
			img := sc.Renderer.RenderMinimap(frame.Grid, frame.Pose, frame.Entities, cfg.Minimap.Scale)
			return writePNG(opts.minimapOut, img)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	st := sc.Monitor.Snapshot()
	log.Info("snapshot written",
		zap.String("frame", opts.out),
		zap.String("minimap", opts.minimapOut),
		zap.Float64("x", frame.Pose.Position.X),
		zap.Float64("y", frame.Pose.Position.Y),
		zap.Duration("render", st.AvgFrame),
		zap.Uint64("sprites_drawn", st.SpritesDrawn),
	)
	log.Debug("render stats", zap.Any("stats", sc.Monitor.GetDetailedStats()))
	return nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
