package render

import (
	"context"
	"math"

	"labyrinth/internal/camera"
	"labyrinth/internal/graphics"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

// rowChunk and columnChunk are the smallest pieces of work handed to a worker.
const (
	rowChunk    = 8
	columnChunk = 16
)

// frameState is what every pass of one frame shares. It is built once per
// frame and only read by the workers.
type frameState struct {
	pose    camera.Pose
	grid    world.GridView
	horizon float64
	// light is the frame-wide multiplier (glitch); per-pixel lighting is
	// applied on top of it.
	light float64
}

func (r *Renderer) newFrameState(pose camera.Pose, grid world.GridView, glitch float64) frameState {
	return frameState{
		pose:    pose,
		grid:    grid,
		horizon: float64(r.settings.Height)/2 + pose.HorizonOffset,
		light:   1 - glitch,
	}
}

// lit combines distance attenuation, the frame multiplier and the vignette
// at pixel (x, y).
func (r *Renderer) lit(fs *frameState, x, y int, distance float64) float64 {
	m := r.settings.Lighting.Attenuation(distance, r.settings.MaxDistance) * fs.light
	if r.vignette != nil {
		m *= float64(r.vignette[y*r.settings.Width+x])
	}
	return m
}

// drawFloorCeiling fills every row above and below the horizon with the
// textures of the world cells the row's ray lands on. Rows beyond the max
// distance and points outside the grid keep the void color.
func (r *Renderer) drawFloorCeiling(ctx context.Context, fb *Framebuffer, fs *frameState) {
	s := &r.settings
	posZ := 0.5 * float64(s.Height) * s.WallHeight
	rayLeft := fs.pose.Ray(-1)
	rayRight := fs.pose.Ray(1)
	span := rayRight.Sub(rayLeft)
	k := s.FloorRayDivisor

	r.pool.ParallelRange(ctx, 0, s.Height, rowChunk, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			p := float64(y) + 0.5 - fs.horizon
			if p == 0 {
				continue
			}
			rowDistance := posZ / math.Abs(p)
			if rowDistance > s.MaxDistance {
				continue
			}
			layer := graphics.LayerFloor
			if p < 0 {
				layer = graphics.LayerCeiling
			}

			origin := fs.pose.Position.Add(rayLeft.Scale(rowDistance))
			step := span.Scale(rowDistance / float64(s.Width))

			for x := 0; x < s.Width; x += k {
				point := origin.Add(step.Scale(float64(x)))
				cx, cy := point.Floor()
				cell, ok := fs.grid.CellAt(cx, cy)
				if !ok {
					continue
				}
				id := cell.Floor
				if layer == graphics.LayerCeiling {
					id = cell.Ceiling
				}
				tex := r.texture(layer, int(id))
				c := tex.Sample(s.Sampling, point.X-float64(cx), point.Y-float64(cy))

				end := mathutil.IntMin(x+k, s.Width)
				for px := x; px < end; px++ {
					fb.Set(px, y, shade(c, r.lit(fs, px, y, rowDistance)))
				}
			}
		}
	})
}

// drawWalls casts one ray per WallRayDivisor columns, paints the textured
// wall slice over the floor pass and records the column depths.
func (r *Renderer) drawWalls(ctx context.Context, fb *Framebuffer, depth DepthBuffer, fs *frameState) int {
	s := &r.settings
	k := s.WallRayDivisor
	rays := (s.Width + k - 1) / k

	r.pool.ParallelRange(ctx, 0, rays, columnChunk/k+1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x0 := i * k
			x1 := mathutil.IntMin(x0+k, s.Width)
			hit := CastRay(fs.grid, fs.pose.Position, fs.pose.ColumnRay(x0, s.Width), s.MaxDistance)
			if !hit.Hit {
				for x := x0; x < x1; x++ {
					depth[x] = s.MaxDistance
				}
				continue
			}
			for x := x0; x < x1; x++ {
				depth[x] = hit.Distance
				r.drawWallSlice(fb, fs, x, hit)
			}
		}
	})
	return rays
}

// drawWallSlice stretches one texture column over the projected wall height.
// Texture rows are derived from the unclamped slice so walls taller than the
// screen keep their proportions.
func (r *Renderer) drawWallSlice(fb *Framebuffer, fs *frameState, x int, hit WallHit) {
	s := &r.settings
	lineHeight := float64(s.Height) * s.WallHeight / hit.Distance
	top := fs.horizon - lineHeight/2
	start := mathutil.ClampInt(int(math.Ceil(top-0.5)), 0, s.Height)
	end := mathutil.ClampInt(int(math.Ceil(top+lineHeight-0.5)), 0, s.Height)
	if start >= end {
		return
	}

	tex := r.texture(graphics.LayerWall, int(hit.Texture))
	light := 1.0
	if hit.Side == SideY {
		light = s.SideShade
	}
	for y := start; y < end; y++ {
		v := (float64(y) + 0.5 - top) / lineHeight
		c := tex.Sample(s.Sampling, hit.WallX, v)
		if c.A == 0 {
			continue
		}
		fb.blend(x, y, shade(c, light*r.lit(fs, x, y, hit.Distance)))
	}
}
