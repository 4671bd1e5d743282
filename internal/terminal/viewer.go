// Package terminal presents a scene in a terminal with half-block cells.
package terminal

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"labyrinth/internal/config"
	"labyrinth/internal/player"
	"labyrinth/internal/render"
	"labyrinth/internal/scene"
)

const (
	// keyHold is how long a key press keeps acting; terminals send no
	// release events, only repeats.
	keyHold = 180 * time.Millisecond

	frameInterval = 33 * time.Millisecond
	hudRows       = 1
)

type action int

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actTurnLeft
	actTurnRight
	actCount
)

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// Viewer drives a scene from terminal events.
type Viewer struct {
	screen tcell.Screen
	scene  *scene.Scene
	cfg    *config.Config
	log    *zap.Logger

	held        [actCount]time.Time // expiry per action
	sprintUntil time.Time
	showMinimap bool
	quit        bool

	fb    *render.Framebuffer
	depth render.DepthBuffer
}

// New returns a viewer for an initialized screen.
func New(screen tcell.Screen, sc *scene.Scene, cfg *config.Config, log *zap.Logger) *Viewer {
	return &Viewer{
		screen:      screen,
		scene:       sc,
		cfg:         cfg,
		log:         log,
		showMinimap: cfg.Minimap.Enabled,
	}
}

// Run processes events and redraws until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	if err := v.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			v.HandleEvent(ev, time.Now())
			if v.quit {
				return nil
			}
		case now := <-ticker.C:
			v.Step(now, now.Sub(last))
			last = now
			if err := v.Draw(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies one terminal event at time now.
func (v *Viewer) HandleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		v.handleKey(ev, now)
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey, now time.Time) {
	hold := func(a action) { v.held[a] = now.Add(keyHold) }
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.quit = true
	case tcell.KeyUp:
		hold(actForward)
	case tcell.KeyDown:
		hold(actBack)
	case tcell.KeyLeft:
		hold(actTurnLeft)
	case tcell.KeyRight:
		hold(actTurnRight)
	case tcell.KeyRune:
		r := ev.Rune()
		// shifted letters sprint
		if r >= 'A' && r <= 'Z' {
			v.sprintUntil = now.Add(keyHold)
			r += 'a' - 'A'
		}
		switch r {
		case 'w':
			hold(actForward)
		case 's':
			hold(actBack)
		case 'a':
			hold(actLeft)
		case 'd':
			hold(actRight)
		case 'q':
			hold(actTurnLeft)
		case 'e':
			hold(actTurnRight)
		case 'm':
			v.showMinimap = !v.showMinimap
		case ' ':
			v.scene.ToggleDoor()
		}
	}
}

// Input returns the player input active at now.
func (v *Viewer) Input(now time.Time) player.Input {
	on := func(a action) float64 {
		if now.Before(v.held[a]) {
			return 1
		}
		return 0
	}
	return player.Input{
		Forward: on(actForward) - on(actBack),
		Strafe:  on(actRight) - on(actLeft),
		Turn:    on(actTurnRight) - on(actTurnLeft),
		Sprint:  now.Before(v.sprintUntil),
	}
}

// Step advances the scene by dt using the keys held at now.
func (v *Viewer) Step(now time.Time, dt time.Duration) {
	v.scene.Tick(v.Input(now), dt)
}

// Draw renders the scene at the current terminal size and shows it.
func (v *Viewer) Draw() error {
	cols, rows := v.screen.Size()
	w, h := cols, (rows-hudRows)*2
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := v.ensureBuffers(w, h); err != nil {
		return err
	}

	f, err := v.scene.RenderInto(context.Background(), v.fb, v.depth)
	if err != nil {
		return err
	}
	v.screen.Clear()
	Blit(v.screen, v.fb.Image(), 0, 0)

	if v.showMinimap {
		v.drawMinimap(f, cols, rows-hudRows)
	}
	v.drawHUD(cols, rows)
	v.screen.Show()
	return nil
}

func (v *Viewer) ensureBuffers(w, h int) error {
	if v.fb != nil && v.fb.Width == w && v.fb.Height == h {
		return nil
	}
	if err := v.scene.Resize(w, h); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", w, h, err)
	}
	v.fb = render.NewFramebuffer(w, h)
	v.depth = make(render.DepthBuffer, w)
	v.log.Debug("terminal resized", zap.Int("width", w), zap.Int("height", h))
	return nil
}

// drawMinimap fits the map into a third of the view width in the top-right
// corner.
func (v *Viewer) drawMinimap(f render.Frame, cols, rows int) {
	gw, gh := f.Grid.Dimensions()
	scale := math.Min(float64(cols/3)/float64(gw), float64(rows*2)/float64(gh))
	if scale < 1 {
		scale = 1
	}
	img := v.scene.Renderer.RenderMinimap(f.Grid, f.Pose, f.Entities, scale)
	Blit(v.screen, img, cols-img.Bounds().Dx(), 0)
}

func (v *Viewer) drawHUD(cols, rows int) {
	line := fmt.Sprintf(" WASD/arrows move  QE turn  Space door  M map  Esc quit | collected %d | walked %.0f | %.0f fps ",
		v.scene.Collected(), v.scene.Player.Distance(), v.scene.Monitor.Snapshot().FPS)
	for x := 0; x < cols; x++ {
		v.screen.SetContent(x, rows-1, ' ', nil, hudStyle)
	}
	PrintAt(v.screen, 0, rows-1, line, hudStyle)
}
