package graphics

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var textureExts = map[string]bool{".png": true, ".bmp": true, ".jpg": true, ".jpeg": true}

// LoadDir fills atlas from dir. Each layer has a subdirectory named after it
// (walls, floors, ceilings, sprites) holding files named "<id>.<ext>".
// Every image is resampled to size x size. Missing subdirectories are
// skipped. It returns the number of textures loaded.
func LoadDir(ctx context.Context, dir string, size int, atlas *Atlas) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("texture size must be positive, got %d", size)
	}

	type job struct {
		layer Layer
		id    int
		path  string
	}
	var jobs []job
	for l := Layer(0); l < layerCount; l++ {
		entries, err := os.ReadDir(filepath.Join(dir, l.String()))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", l, err)
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || !textureExts[ext] {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
			if err != nil {
				continue
			}
			jobs = append(jobs, job{layer: l, id: id, path: filepath.Join(dir, l.String(), e.Name())})
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := loadTexture(j.path, size, j.layer == LayerSprite)
			if err != nil {
				return err
			}
			mu.Lock()
			atlas.Set(j.layer, j.id, tex)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(jobs), nil
}

func loadTexture(path string, size int, hardEdges bool) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Resample(src, size, hardEdges), nil
}

// Resample scales img to a size x size texture. hardEdges keeps alpha
// boundaries crisp, which billboards need for their transparency mask.
func Resample(img image.Image, size int, hardEdges bool) *Texture {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	var scaler xdraw.Interpolator = xdraw.CatmullRom
	if hardEdges {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}
