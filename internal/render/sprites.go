package render

import (
	"context"
	"math"
	"sort"

	"labyrinth/internal/camera"
	"labyrinth/internal/entity"
	"labyrinth/internal/graphics"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/threading/core"
)

// parallelProjectMin is the snapshot size from which projection is spread
// over goroutines.
const parallelProjectMin = 64

// billboard is an entity projected to screen space.
type billboard struct {
	id    entity.ID
	tex   *graphics.Texture
	depth float64 // camera-space forward distance
	// left/top are the unclamped screen rectangle of the sprite
	left, top     float64
	width, height float64
	x0, x1        int // clamped columns [x0, x1)
	y0, y1        int // clamped rows [y0, y1)
	visible       bool
}

// project places one snapshot item on screen. Items behind the camera plane
// or entirely off screen are returned invisible.
func (r *Renderer) project(fs *frameState, it entity.Item) billboard {
	s := &r.settings
	lateral, depth := fs.pose.ToCamera(it.Position)
	if !(depth > MinDistance) {
		return billboard{id: it.ID}
	}

	tex := r.texture(graphics.LayerSprite, int(it.Sprite))
	scale := it.Scale
	if scale <= 0 {
		scale = 1
	}
	unit := float64(s.Height) * s.WallHeight / depth
	height := unit * scale * s.SpriteScale
	width := height * float64(tex.Width) / float64(tex.Height)

	centerX := float64(s.Width) / 2 * (1 + lateral/depth)
	centerY := fs.horizon - it.HeightOffset*unit

	b := billboard{
		id:     it.ID,
		tex:    tex,
		depth:  depth,
		left:   centerX - width/2,
		top:    centerY - height/2,
		width:  width,
		height: height,
	}
	b.x0 = mathutil.ClampInt(int(math.Ceil(b.left-0.5)), 0, s.Width)
	b.x1 = mathutil.ClampInt(int(math.Ceil(b.left+width-0.5)), 0, s.Width)
	b.y0 = mathutil.ClampInt(int(math.Ceil(b.top-0.5)), 0, s.Height)
	b.y1 = mathutil.ClampInt(int(math.Ceil(b.top+height-0.5)), 0, s.Height)
	b.visible = b.x0 < b.x1 && b.y0 < b.y1
	return b
}

// compositeSprites projects the snapshot, orders it far to near and draws
// it column range by column range. Each worker owns its columns, so sprites
// overlap correctly without locking. It returns how many sprites were
// projected on screen and how many were rejected.
func (r *Renderer) compositeSprites(ctx context.Context, fb *Framebuffer, depth DepthBuffer, fs *frameState, items entity.Snapshot) (drawn, culled int) {
	if len(items) == 0 {
		return 0, 0
	}

	projected := core.ParallelMap(ctx, r.pool, items, parallelProjectMin, func(it entity.Item) billboard {
		return r.project(fs, it)
	})

	visible := projected[:0]
	for _, b := range projected {
		if b.visible {
			visible = append(visible, b)
		}
	}
	culled = len(items) - len(visible)
	if len(visible) == 0 {
		return 0, culled
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].depth != visible[j].depth {
			return visible[i].depth > visible[j].depth
		}
		return visible[i].id < visible[j].id
	})

	r.pool.ParallelRange(ctx, 0, r.settings.Width, columnChunk, func(lo, hi int) {
		for i := range visible {
			r.drawBillboard(fb, depth, fs, &visible[i], lo, hi)
		}
	})
	return len(visible), culled
}

// drawBillboard draws the part of b that falls in columns [lo, hi). A column
// is drawn only when the sprite is strictly nearer than the wall there.
func (r *Renderer) drawBillboard(fb *Framebuffer, depth DepthBuffer, fs *frameState, b *billboard, lo, hi int) {
	s := &r.settings
	x1 := mathutil.IntMin(b.x1, hi)
	for x := mathutil.IntMax(b.x0, lo); x < x1; x++ {
		if !(b.depth < depth[x]) {
			continue
		}
		u := (float64(x) + 0.5 - b.left) / b.width
		for y := b.y0; y < b.y1; y++ {
			v := (float64(y) + 0.5 - b.top) / b.height
			c := b.tex.Sample(s.Sampling, u, v)
			if c.A == 0 {
				continue
			}
			fb.blend(x, y, shade(c, r.lit(fs, x, y, b.depth)))
		}
	}
}

// composite runs the sprite pass against an existing frame.
func (r *Renderer) composite(ctx context.Context, fb *Framebuffer, depth DepthBuffer, pose camera.Pose, items entity.Snapshot, glitch float64) (drawn, culled int) {
	fs := r.newFrameState(pose, nil, glitch)
	return r.compositeSprites(ctx, fb, depth, &fs, items)
}
