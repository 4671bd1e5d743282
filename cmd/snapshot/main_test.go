package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const snapshotMap = `11111
1P0C1
10001
11111
`

func TestRunWritesPNGs(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "room.txt")
	if err := os.WriteFile(mapPath, []byte(snapshotMap), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := `display:
  screen_width: 80
  screen_height: 60
  render_scale: 1
assets:
  texture_dir: ""
  texture_size: 8
minimap:
  size: 40
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "frame.png")
	mini := filepath.Join(dir, "mini.png")
	err := run([]string{
		"-config", cfgPath,
		"-map", mapPath,
		"-angle", "90",
		"-out", out,
		"-minimap-out", mini,
	})
	if err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string][2]int{out: {80, 60}, mini: {40, 32}} {
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != want[0] || b.Dy() != want[1] {
			t.Errorf("%s is %v, want %dx%d", filepath.Base(path), b, want[0], want[1])
		}
	}
}
