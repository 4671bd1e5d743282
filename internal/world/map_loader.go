package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"labyrinth/internal/mathutil"
)

// Spawn is an entity placement read from a map file, at the cell center.
type Spawn struct {
	Kind     SpawnKind
	Position mathutil.Vec2
}

// MapData contains the loaded map information
type MapData struct {
	Name     string
	Grid     *Grid
	Start    mathutil.Vec2
	HasStart bool
	Spawns   []Spawn
}

// SpawnsOf returns the spawns of one kind in file order.
func (md *MapData) SpawnsOf(kind SpawnKind) []Spawn {
	var out []Spawn
	for _, s := range md.Spawns {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// LoadMap loads a map from the specified file path. Floor and ceiling texture
// layers are read from "<name>_floor<ext>" and "<name>_ceiling<ext>" next to
// it when present.
func LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	md, err := ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	md.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))

	for _, layer := range []struct {
		suffix string
		apply  func(*Cell, TextureID)
	}{
		{"_floor", func(c *Cell, id TextureID) { c.Floor = id }},
		{"_ceiling", func(c *Cell, id TextureID) { c.Ceiling = id }},
	} {
		if err := applyLayerFile(md.Grid, sidecarPath(mapPath, layer.suffix), layer.apply); err != nil {
			return nil, err
		}
	}
	return md, nil
}

func sidecarPath(mapPath, suffix string) string {
	ext := filepath.Ext(mapPath)
	return strings.TrimSuffix(mapPath, ext) + suffix + ext
}

// ParseMap reads the wall layer. Digits are wall texture ids, 'P' marks the
// player start, 'M', 'C' and 'E' mark monster, collectible and effect spawns;
// every other character is an empty cell. Blank lines and lines starting with
// '#' are skipped.
func ParseMap(r io.Reader) (*MapData, error) {
	md := &MapData{}
	var rows [][]TextureID

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		y := len(rows)
		row := make([]TextureID, 0, len(line))
		for x, char := range []rune(line) {
			center := mathutil.V(float64(x)+0.5, float64(y)+0.5)
			switch {
			case char >= '0' && char <= '9':
				row = append(row, TextureID(char-'0'))
				continue
			case char == 'P' || char == 'p':
				md.Start = center
				md.HasStart = true
			case char == 'M' || char == 'm':
				md.Spawns = append(md.Spawns, Spawn{Kind: SpawnMonster, Position: center})
			case char == 'C' || char == 'c':
				md.Spawns = append(md.Spawns, Spawn{Kind: SpawnCollectible, Position: center})
			case char == 'E' || char == 'e':
				md.Spawns = append(md.Spawns, Spawn{Kind: SpawnEffect, Position: center})
			}
			row = append(row, Empty)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}

	grid, err := NewGridFromRows(rows)
	if err != nil {
		return nil, err
	}
	md.Grid = grid
	return md, nil
}

// ParseLayer reads a digit-per-cell texture layer and checks it against the
// expected dimensions.
func ParseLayer(r io.Reader, width, height int) ([][]TextureID, error) {
	var rows [][]TextureID
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		row := make([]TextureID, 0, len(line))
		for _, char := range line {
			if char >= '0' && char <= '9' {
				row = append(row, TextureID(char-'0'))
			}
		}
		if len(row) != width {
			return nil, fmt.Errorf("%w: layer row %d has %d cells, expected %d", ErrRaggedRows, len(rows)+1, len(row), width)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading layer: %w", err)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("%w: layer has %d rows, expected %d", ErrInvalidDimensions, len(rows), height)
	}
	return rows, nil
}

func applyLayerFile(g *Grid, path string, apply func(*Cell, TextureID)) error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open layer %s: %w", path, err)
	}
	defer file.Close()

	w, h := g.Dimensions()
	rows, err := ParseLayer(file, w, h)
	if err != nil {
		return fmt.Errorf("layer %s: %w", path, err)
	}
	for y, row := range rows {
		for x, id := range row {
			c, _ := g.CellAt(x, y)
			apply(&c, id)
			g.cells[y*w+x] = c
		}
	}
	return nil
}
