// Package scene wires a loaded map, its entities, the player and a renderer
// into one unit the front ends drive tick by tick.
package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"labyrinth/internal/camera"
	"labyrinth/internal/collision"
	"labyrinth/internal/config"
	"labyrinth/internal/entity"
	"labyrinth/internal/graphics"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/player"
	"labyrinth/internal/render"
	"labyrinth/internal/threading/core"
	"labyrinth/internal/threading/monitoring"
	"labyrinth/internal/world"
)

// doorReach is how far ahead of the player a door can be toggled.
const doorReach = 1.0

var ErrNoStart = errors.New("scene: map has no open cell to start in")

// DefaultSprites maps spawns onto the procedural sprite ids.
func DefaultSprites() entity.SpriteSet {
	monsters := make([]entity.SpriteID, graphics.SpriteMonsterCount)
	for i := range monsters {
		monsters[i] = entity.SpriteID(graphics.SpriteMonsterFirst + i)
	}
	return entity.SpriteSet{
		Monsters:     monsters,
		Collectibles: []entity.SpriteID{graphics.SpriteCollectible},
		Effects:      []entity.SpriteID{graphics.SpriteEffect},
	}
}

// Scene is the live world state plus the renderer that draws it.
type Scene struct {
	cfg *config.Config
	log *zap.Logger

	Map      *world.MapData
	Doors    *world.Doors
	Entities *entity.Manager
	Player   *player.Player
	Renderer *render.Renderer
	Monitor  *monitoring.PerformanceMonitor

	monsters  *collision.CollisionSystem
	atlas     *graphics.Atlas
	opts      []render.Option
	pool      *core.WorkerPool
	collected int
}

// Load reads the configured map and textures and builds a scene.
func Load(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Scene, error) {
	md, err := world.LoadMap(cfg.Assets.MapFile)
	if err != nil {
		return nil, err
	}

	atlas := graphics.DefaultAtlas(cfg.Assets.TextureSize)
	if dir := cfg.Assets.TextureDir; dir != "" {
		n, err := graphics.LoadDir(ctx, dir, cfg.Assets.TextureSize, atlas)
		if err != nil {
			return nil, fmt.Errorf("textures: %w", err)
		}
		log.Info("textures loaded", zap.String("dir", dir), zap.Int("count", n))
	}
	return New(md, atlas, cfg, log)
}

// New builds a scene around an already parsed map.
func New(md *world.MapData, atlas *graphics.Atlas, cfg *config.Config, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	settings, err := render.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	start, ok := startPosition(md)
	if !ok {
		return nil, ErrNoStart
	}
	pose, err := camera.FromAngle(start, 0, cfg.GetFOVRadians())
	if err != nil {
		return nil, err
	}

	// zero workers means one per CPU
	pool := core.NewWorkerPool(cfg.Render.Workers)
	pool.Start()

	monitor := monitoring.NewPerformanceMonitor()
	// alert when the frame rate halves; 0 keeps the memory limit
	monitor.SetThresholds(float64(cfg.Display.TPS)/2, 0)
	opts := []render.Option{
		render.WithLogger(log.Named("render")),
		render.WithWorkerPool(pool),
		render.WithMonitor(monitor),
		render.WithMinimapStyle(render.MinimapStyleFromConfig(cfg)),
	}
	r, err := render.NewRenderer(settings, atlas, opts...)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	entities := entity.NewManager()
	spawned := entities.LoadSpawns(md.Spawns, DefaultSprites())

	s := &Scene{
		cfg:      cfg,
		log:      log,
		Map:      md,
		Doors:    world.FindDoors(md.Grid, world.DoorTexture),
		Entities: entities,
		Player:   player.New(pose, md.Grid, cfg.Player.CollisionRadius, player.SettingsFromConfig(cfg)),
		Renderer: r,
		Monitor:  monitor,
		monsters: collision.NewCollisionSystem(md.Grid, cfg.Monsters.Radius),
		atlas:    atlas,
		opts:     opts,
		pool:     pool,
	}
	w, h := md.Grid.Dimensions()
	log.Info("map loaded",
		zap.String("name", md.Name),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("walls", md.Grid.CountWalls()),
		zap.Int("doors", s.Doors.Len()),
		zap.Int("entities", spawned),
		zap.Int("monsters", len(md.SpawnsOf(world.SpawnMonster))),
	)
	return s, nil
}

// startPosition is the map's start marker, else the first open cell.
func startPosition(md *world.MapData) (mathutil.Vec2, bool) {
	if md.HasStart {
		return md.Start, true
	}
	w, h := md.Grid.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c, _ := md.Grid.CellAt(x, y); !c.IsWall() {
				return cellCenter(x, y), true
			}
		}
	}
	return mathutil.Vec2{}, false
}

func cellCenter(x, y int) mathutil.Vec2 {
	return mathutil.V(float64(x)+0.5, float64(y)+0.5)
}

// Tick advances entities and the player by dt and picks up collectibles.
// Monsters close in on where the player stood at the start of the tick.
func (s *Scene) Tick(in player.Input, dt time.Duration) {
	s.Entities.Update(dt, entity.Drift{
		Target:       s.Player.Position(),
		Speed:        s.cfg.Monsters.MoveSpeed,
		StopDistance: s.cfg.Monsters.StopDistance,
		Slide:        s.monsters.Slide,
		Sees:         s.monsters.CheckLineOfSight,
	})
	s.Player.Update(in, dt)
	if n := s.Entities.CollectWithin(s.Player.Position(), s.cfg.Player.CollectRadius); n > 0 {
		s.collected += n
		s.log.Debug("collected", zap.Int("count", n), zap.Int("total", s.collected))
	}
}

// Collected returns how many collectibles the player picked up.
func (s *Scene) Collected() int {
	return s.collected
}

// PoolJobs is how many render jobs the worker pool has run.
func (s *Scene) PoolJobs() uint64 {
	return s.pool.Completed()
}

// ToggleDoor opens or closes the door right in front of the player. A door
// the player or an entity stands in stays open.
func (s *Scene) ToggleDoor() (toggled, open bool) {
	pose := s.Player.Pose()
	x, y := collision.CellAhead(pose.Position, pose.Dir, doorReach)
	if !s.Doors.IsDoor(x, y) {
		return false, false
	}
	was := s.Doors.IsOpen(x, y)
	open, err := s.Doors.Toggle(x, y, s.occupied)
	if err != nil {
		s.log.Warn("door toggle failed", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
		return false, was
	}
	if open != was {
		s.log.Debug("door", zap.Int("x", x), zap.Int("y", y), zap.Bool("open", open))
	}
	return open != was, open
}

func (s *Scene) occupied(x, y int) bool {
	cell := collision.NewBoundingBox(cellCenter(x, y), 0.5)
	body := collision.NewBoundingBox(s.Player.Position(), s.Player.Collision().Radius())
	if cell.Intersects(body) {
		return true
	}
	for _, it := range s.Entities.VisibleEntities(s.Player.Position()) {
		if cell.Contains(it.Position) {
			return true
		}
	}
	return false
}

// Frame captures everything the renderer needs for one frame.
func (s *Scene) Frame() render.Frame {
	pose := s.Player.Pose()
	glitch := s.Renderer.Settings().Glitch
	return render.Frame{
		Pose:     pose,
		Grid:     s.Map.Grid,
		Entities: s.Entities.VisibleEntities(pose.Position),
		Glitch:   glitch.Intensity(s.Entities.ClosestDistance(entity.KindMonster, pose.Position)),
	}
}

// RenderInto draws the current frame into caller-owned buffers.
func (s *Scene) RenderInto(ctx context.Context, fb *render.Framebuffer, depth render.DepthBuffer) (render.Frame, error) {
	f := s.Frame()
	return f, s.Renderer.RenderInto(ctx, fb, depth, f)
}

// Resize swaps in a renderer for a new framebuffer resolution. The worker
// pool and monitor are kept.
func (s *Scene) Resize(width, height int) error {
	settings := s.Renderer.Settings()
	if settings.Width == width && settings.Height == height {
		return nil
	}
	settings.Width, settings.Height = width, height
	r, err := render.NewRenderer(settings, s.atlas, s.opts...)
	if err != nil {
		return err
	}
	s.Renderer.Close()
	s.Renderer = r
	// timings from the old resolution no longer apply
	s.Monitor.Reset()
	return nil
}

// Close releases the render workers.
func (s *Scene) Close() {
	s.Renderer.Close()
	s.pool.Stop()
}
