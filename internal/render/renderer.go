package render

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"labyrinth/internal/camera"
	"labyrinth/internal/entity"
	"labyrinth/internal/graphics"
	"labyrinth/internal/logger"
	"labyrinth/internal/threading/core"
	"labyrinth/internal/threading/monitoring"
	"labyrinth/internal/world"
)

// Frame is everything one render pass reads. Grid and Entities are lent for
// the duration of the call and never modified.
type Frame struct {
	Pose     camera.Pose
	Grid     world.GridView
	Entities entity.Snapshot
	// Glitch is the corruption intensity; the frame is multiplied by 1-Glitch.
	Glitch float64
}

// Renderer turns a pose, a grid and an entity snapshot into pixels. One
// Renderer may be used from several goroutines as long as each call gets its
// own buffers.
type Renderer struct {
	settings Settings
	atlas    *graphics.Atlas
	pool     *core.WorkerPool
	ownsPool bool
	monitor  *monitoring.PerformanceMonitor
	log      *zap.Logger
	minimap  *MinimapRenderer

	vignette []float32

	warned      sync.Map // textureKey -> struct{}
	invalidPose atomic.Bool
}

type textureKey struct {
	layer graphics.Layer
	id    int
}

// Option configures a Renderer.
type Option func(*Renderer)

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithWorkerPool shares a started pool; the renderer will not stop it.
func WithWorkerPool(p *core.WorkerPool) Option {
	return func(r *Renderer) { r.pool = p }
}

func WithMonitor(m *monitoring.PerformanceMonitor) Option {
	return func(r *Renderer) { r.monitor = m }
}

func WithMinimapStyle(st MinimapStyle) Option {
	return func(r *Renderer) { r.minimap = NewMinimapRenderer(st) }
}

// NewRenderer validates the settings and prepares the per-size lookup
// tables. A nil atlas renders every texture as the placeholder.
func NewRenderer(settings Settings, atlas *graphics.Atlas, opts ...Option) (*Renderer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{settings: settings, atlas: atlas}
	for _, opt := range opts {
		opt(r)
	}
	if r.atlas == nil {
		r.atlas = graphics.NewAtlas(nil)
	}
	if r.log == nil {
		r.log = logger.Named("render")
	}
	if r.pool == nil {
		r.pool = core.CreateDefaultWorkerPool()
		r.ownsPool = true
	}
	if r.minimap == nil {
		r.minimap = NewMinimapRenderer(DefaultMinimapStyle())
	}
	r.vignette = settings.Lighting.VignetteMask(settings.Width, settings.Height)

	r.log.Info("renderer ready",
		zap.Int("width", settings.Width),
		zap.Int("height", settings.Height),
		zap.Float64("max_distance", settings.MaxDistance),
		zap.Stringer("falloff", settings.Lighting.Falloff),
		zap.Stringer("sampling", settings.Sampling),
		zap.Int("workers", r.pool.NumWorkers()),
	)
	return r, nil
}

// Settings returns the settings the renderer was built with.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Minimap returns the minimap renderer, e.g. to invalidate its cache.
func (r *Renderer) Minimap() *MinimapRenderer {
	return r.minimap
}

// Close stops the worker pool if the renderer created it.
func (r *Renderer) Close() {
	if r.ownsPool {
		r.pool.Stop()
	}
}

// RenderFrame renders one frame, deriving the glitch intensity from the
// nearest monster in the snapshot.
func (r *Renderer) RenderFrame(pose camera.Pose, grid world.GridView, entities entity.Snapshot) *Framebuffer {
	return r.Render(Frame{
		Pose:     pose,
		Grid:     grid,
		Entities: entities,
		Glitch:   r.settings.Glitch.Intensity(closestMonster(pose, entities)),
	})
}

// Render draws a complete frame into a new buffer.
func (r *Renderer) Render(f Frame) *Framebuffer {
	fb := NewFramebuffer(r.settings.Width, r.settings.Height)
	depth := make(DepthBuffer, r.settings.Width)
	// buffers are sized from the settings, so this cannot fail
	_ = r.RenderInto(context.Background(), fb, depth, f)
	return fb
}

// RenderInto draws a complete frame into caller-owned buffers, which must
// match the configured resolution. The pipeline is void fill, floor and
// ceiling rows, wall columns, then sprites; the wall pass finishes before
// any sprite reads the depth buffer. An invalid pose or a nil grid yields a
// void frame.
func (r *Renderer) RenderInto(ctx context.Context, fb *Framebuffer, depth DepthBuffer, f Frame) error {
	if err := r.checkBuffers(fb, depth); err != nil {
		return err
	}

	var frame *monitoring.FrameTimer
	if r.monitor != nil {
		frame = r.monitor.StartFrame()
		defer frame.EndFrame()
	}

	fb.Fill(r.settings.VoidColor)
	if !r.usable(f) {
		for i := range depth {
			depth[i] = r.settings.MaxDistance
		}
		return nil
	}

	fs := r.newFrameState(f.Pose, f.Grid, f.Glitch)
	var rays, drawn, culled int
	r.stage(monitoring.StageFloor, func() { r.drawFloorCeiling(ctx, fb, &fs) })
	r.stage(monitoring.StageWalls, func() { rays = r.drawWalls(ctx, fb, depth, &fs) })
	r.stage(monitoring.StageSprites, func() {
		drawn, culled = r.compositeSprites(ctx, fb, depth, &fs, f.Entities)
	})
	if r.monitor != nil {
		r.monitor.RecordCounts(rays, drawn, culled)
	}
	return ctx.Err()
}

// RenderWalls runs the raycaster alone and returns the frame with its depth
// buffer, ready for Composite.
func (r *Renderer) RenderWalls(pose camera.Pose, grid world.GridView) (*Framebuffer, DepthBuffer) {
	fb := NewFramebuffer(r.settings.Width, r.settings.Height)
	depth := make(DepthBuffer, r.settings.Width)
	_ = r.RenderInto(context.Background(), fb, depth, Frame{Pose: pose, Grid: grid})
	return fb, depth
}

// Composite draws entities over a frame produced by RenderWalls, in place,
// and returns fb. Buffers that do not match the resolution are returned
// untouched.
func (r *Renderer) Composite(fb *Framebuffer, depth DepthBuffer, entities entity.Snapshot, pose camera.Pose) *Framebuffer {
	if err := r.checkBuffers(fb, depth); err != nil {
		r.log.Warn("composite skipped", zap.Error(err))
		return fb
	}
	if pose.Validate() != nil {
		return fb
	}
	r.composite(context.Background(), fb, depth, pose, entities, 0)
	return fb
}

// RenderMinimap draws the overhead view; it does not touch the 3D buffers.
// A nil grid gives a background-only image.
func (r *Renderer) RenderMinimap(grid world.GridView, pose camera.Pose, entities entity.Snapshot, scale float64) *image.RGBA {
	if r.monitor != nil {
		defer r.monitor.StartStage(monitoring.StageMinimap).End()
	}
	return r.minimap.Render(grid, pose, entities, scale)
}

func (r *Renderer) checkBuffers(fb *Framebuffer, depth DepthBuffer) error {
	s := r.settings
	if fb == nil || fb.Width != s.Width || fb.Height != s.Height || len(fb.Pix) != s.Width*s.Height*4 {
		return fmt.Errorf("%w: framebuffer does not match %dx%d", ErrInvalidResolution, s.Width, s.Height)
	}
	if len(depth) != s.Width {
		return fmt.Errorf("%w: depth buffer has %d columns, want %d", ErrInvalidResolution, len(depth), s.Width)
	}
	return nil
}

// usable reports whether the frame can be ray cast, logging the first bad
// pose only.
func (r *Renderer) usable(f Frame) bool {
	if f.Grid == nil {
		return false
	}
	if err := f.Pose.Validate(); err != nil {
		if r.invalidPose.CompareAndSwap(false, true) {
			r.log.Warn("invalid camera pose, rendering void frame", zap.Error(err))
		}
		return false
	}
	return true
}

func (r *Renderer) stage(s monitoring.Stage, fn func()) {
	if r.monitor == nil {
		fn()
		return
	}
	r.monitor.ProfiledFunction(s, fn)
}

// texture resolves an atlas id, falling back to the placeholder and warning
// once per missing id.
func (r *Renderer) texture(layer graphics.Layer, id int) *graphics.Texture {
	if t, ok := r.atlas.Lookup(layer, id); ok {
		return t
	}
	if _, seen := r.warned.LoadOrStore(textureKey{layer, id}, struct{}{}); !seen {
		r.log.Warn("missing texture, using placeholder", zap.Stringer("layer", layer), zap.Int("id", id))
	}
	return r.atlas.Placeholder()
}

func closestMonster(pose camera.Pose, entities entity.Snapshot) float64 {
	closest := math.Inf(1)
	for _, it := range entities {
		if it.Kind != entity.KindMonster {
			continue
		}
		closest = math.Min(closest, it.Position.Dist(pose.Position))
	}
	return closest
}
