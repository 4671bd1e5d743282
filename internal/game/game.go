// Package game presents a scene in an ebiten window.
package game

import (
	"context"
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"labyrinth/internal/config"
	"labyrinth/internal/game/keytracker"
	"labyrinth/internal/render"
	"labyrinth/internal/scene"
)

var minimapBorder = color.RGBA{R: 40, G: 40, B: 40, A: 220}

// Game implements ebiten.Game around a scene.
type Game struct {
	cfg   *config.Config
	log   *zap.Logger
	scene *scene.Scene

	keys  *keytracker.Tracker
	mouse mouseLook

	fb      *render.Framebuffer
	depth   render.DepthBuffer
	view    *ebiten.Image
	minimap *ebiten.Image

	showMinimap bool
	showStats   bool
	renderErr   bool
	perf        perfWatch
}

// New builds a game for sc. The framebuffer has the renderer's resolution
// and is scaled to the window when drawn.
func New(cfg *config.Config, sc *scene.Scene, log *zap.Logger) *Game {
	s := sc.Renderer.Settings()
	return &Game{
		cfg:         cfg,
		log:         log,
		scene:       sc,
		keys:        keytracker.New(),
		fb:          render.NewFramebuffer(s.Width, s.Height),
		depth:       make(render.DepthBuffer, s.Width),
		view:        ebiten.NewImage(s.Width, s.Height),
		showMinimap: cfg.Minimap.Enabled,
		showStats:   cfg.Display.ShowStats,
	}
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func Run(cfg *config.Config, sc *scene.Scene, log *zap.Logger) error {
	ebiten.SetWindowSize(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	err := ebiten.RunGame(New(cfg, sc, log))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	if g.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyF) {
		g.showStats = !g.showStats
	}
	if g.keys.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.ToggleDoor()
	}

	cx, _ := ebiten.CursorPosition()
	in := readInput(ebiten.IsKeyPressed, g.mouse.delta(cx), g.cfg.Player.MouseSensitivity)
	g.scene.Tick(in, time.Second/time.Duration(ebiten.TPS()))

	g.perf.check(g.log, g.scene.Monitor)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	f, err := g.scene.RenderInto(context.Background(), g.fb, g.depth)
	if err != nil && !g.renderErr {
		g.renderErr = true
		g.log.Error("render failed", zap.Error(err))
	}
	g.view.WritePixels(g.fb.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(g.fb.Width), float64(sh)/float64(g.fb.Height))
	screen.DrawImage(g.view, op)

	if g.showMinimap && f.Grid != nil {
		img := g.scene.Renderer.RenderMinimap(f.Grid, f.Pose, f.Entities, g.cfg.Minimap.Scale)
		g.drawMinimap(screen, img)
	}
	g.drawHUD(screen)
}

func (g *Game) drawMinimap(screen *ebiten.Image, img *image.RGBA) {
	b := img.Bounds()
	if g.minimap == nil || g.minimap.Bounds().Size() != b.Size() {
		if g.minimap != nil {
			g.minimap.Deallocate()
		}
		g.minimap = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.minimap.WritePixels(img.Pix)

	margin := g.cfg.Minimap.Margin
	x := screen.Bounds().Dx() - b.Dx() - margin
	y := margin
	vector.DrawFilledRect(screen, float32(x-2), float32(y-2), float32(b.Dx()+4), float32(b.Dy()+4), minimapBorder, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(g.minimap, op)
}

// Layout keeps the configured window size as the logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.Display.ScreenWidth, g.cfg.Display.ScreenHeight
}
