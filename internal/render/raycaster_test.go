package render

import (
	"math"
	"testing"

	"labyrinth/internal/camera"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

const eps = 1e-9

// mockGrid implements world.GridView for testing
type mockGrid struct {
	width, height int
	walls         map[[2]int]world.TextureID
}

func newMockGrid(width, height int) *mockGrid {
	return &mockGrid{width: width, height: height, walls: make(map[[2]int]world.TextureID)}
}

func (m *mockGrid) CellAt(x, y int) (world.Cell, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return world.Cell{}, false
	}
	return world.Cell{Wall: m.walls[[2]int{x, y}]}, true
}

func (m *mockGrid) Dimensions() (int, int) {
	return m.width, m.height
}

func (m *mockGrid) setWall(x, y int, id world.TextureID) {
	m.walls[[2]int{x, y}] = id
}

func mustRoom(t *testing.T, w, h int) *world.Grid {
	t.Helper()
	g, err := world.NewRoom(w, h, 1)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	return g
}

func TestCastRay_RingRoomIsSymmetric(t *testing.T) {
	grid := mustRoom(t, 10, 10)
	center := mathutil.V(5, 5)

	tests := []struct {
		name string
		dir  mathutil.Vec2
		face Face
		side Side
		cell [2]int
	}{
		{"east", mathutil.V(1, 0), FaceWest, SideX, [2]int{9, 5}},
		{"west", mathutil.V(-1, 0), FaceEast, SideX, [2]int{0, 5}},
		{"south", mathutil.V(0, 1), FaceNorth, SideY, [2]int{5, 9}},
		{"north", mathutil.V(0, -1), FaceSouth, SideY, [2]int{5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := CastRay(grid, center, tt.dir, 32)
			if !hit.Hit {
				t.Fatal("expected a hit")
			}
			// the ring's inner faces are one cell short of half the grid
			if math.Abs(hit.Distance-4) > eps {
				t.Errorf("distance = %v, want 4", hit.Distance)
			}
			if hit.Face != tt.face || hit.Side != tt.side {
				t.Errorf("face/side = %v/%v, want %v/%v", hit.Face, hit.Side, tt.face, tt.side)
			}
			if [2]int{hit.CellX, hit.CellY} != tt.cell {
				t.Errorf("cell = (%d,%d), want %v", hit.CellX, hit.CellY, tt.cell)
			}
			if hit.Texture != 1 {
				t.Errorf("texture = %d, want 1", hit.Texture)
			}
		})
	}
}

func TestCastRay_PerpendicularDistanceAcrossScreen(t *testing.T) {
	grid := mustRoom(t, 10, 10)
	pose, err := camera.FromAngle(mathutil.V(5, 5), 0, camera.Degrees(66))
	if err != nil {
		t.Fatal(err)
	}

	const width = 120
	for x := 0; x < width; x++ {
		hit := CastRay(grid, pose.Position, pose.ColumnRay(x, width), 32)
		if !hit.Hit {
			t.Fatalf("column %d: no hit", x)
		}
		if math.Abs(hit.Distance-4) > 1e-9 {
			t.Errorf("column %d: distance = %v, want 4 (no fisheye)", x, hit.Distance)
		}
	}
}

func TestCastRay_CorridorDepthIsMonotonic(t *testing.T) {
	// a straight east-west corridor with a blocking wall at different depths
	var prev float64
	for _, end := range []int{3, 5, 8, 12} {
		grid := newMockGrid(20, 3)
		for x := 0; x < 20; x++ {
			grid.setWall(x, 0, 1)
			grid.setWall(x, 2, 1)
		}
		grid.setWall(end, 1, 2)

		hit := CastRay(grid, mathutil.V(0.5, 1.5), mathutil.V(1, 0), 32)
		if !hit.Hit || hit.Texture != 2 {
			t.Fatalf("end %d: hit = %+v", end, hit)
		}
		want := float64(end) - 0.5
		if math.Abs(hit.Distance-want) > eps {
			t.Errorf("end %d: distance = %v, want %v", end, hit.Distance, want)
		}
		if hit.Distance <= prev {
			t.Errorf("end %d: distance %v not greater than nearer wall %v", end, hit.Distance, prev)
		}
		prev = hit.Distance
	}
}

func TestCastRay_AxisAlignedRaysNeverDivideByZero(t *testing.T) {
	grid := mustRoom(t, 6, 6)
	for _, dir := range []mathutil.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		hit := CastRay(grid, mathutil.V(2.25, 3.75), dir, 32)
		if !hit.Hit || math.IsNaN(hit.Distance) || math.IsInf(hit.Distance, 0) {
			t.Errorf("dir %v: hit = %+v", dir, hit)
		}
	}
}

func TestCastRay_Diagonal(t *testing.T) {
	grid := newMockGrid(10, 10)
	grid.setWall(4, 4, 3)

	hit := CastRay(grid, mathutil.V(1.5, 1.5), mathutil.V(1, 1), 32)
	if !hit.Hit || hit.CellX != 4 || hit.CellY != 4 {
		t.Fatalf("hit = %+v, want cell (4,4)", hit)
	}
	if math.Abs(hit.Distance-2.5) > eps {
		t.Errorf("distance = %v, want 2.5", hit.Distance)
	}
}

func TestCastRay_LeavesGrid(t *testing.T) {
	grid := newMockGrid(5, 5)
	hit := CastRay(grid, mathutil.V(2.5, 2.5), mathutil.V(0.6, 0.8), 32)
	if hit.Hit {
		t.Errorf("expected no hit in an open grid, got %+v", hit)
	}
}

func TestCastRay_MaxDistanceCutoff(t *testing.T) {
	grid := newMockGrid(100, 3)
	grid.setWall(90, 1, 1)

	if hit := CastRay(grid, mathutil.V(0.5, 1.5), mathutil.V(1, 0), 10); hit.Hit {
		t.Errorf("wall at 89.5 reported within max distance 10: %+v", hit)
	}
	if hit := CastRay(grid, mathutil.V(0.5, 1.5), mathutil.V(1, 0), 100); !hit.Hit {
		t.Error("wall at 89.5 not reported within max distance 100")
	}
}

func TestCastRay_OutsideGridLookingIn(t *testing.T) {
	grid := mustRoom(t, 5, 5)
	hit := CastRay(grid, mathutil.V(-3.5, 2.5), mathutil.V(1, 0), 32)
	if !hit.Hit || hit.CellX != 0 {
		t.Fatalf("hit = %+v, want the west ring wall", hit)
	}
	if math.Abs(hit.Distance-3.5) > eps {
		t.Errorf("distance = %v, want 3.5", hit.Distance)
	}
}

func TestCastRay_InsideWall(t *testing.T) {
	grid := mustRoom(t, 5, 5)
	hit := CastRay(grid, mathutil.V(0.5, 2.25), mathutil.V(1, 0), 32)
	if !hit.Hit || !hit.Inside {
		t.Fatalf("hit = %+v, want an inside hit", hit)
	}
	if hit.Distance != MinDistance {
		t.Errorf("distance = %v, want %v", hit.Distance, MinDistance)
	}
	if math.Abs(hit.WallX-0.25) > eps {
		t.Errorf("wallX = %v, want 0.25", hit.WallX)
	}
}

// Texture columns run left to right as seen by the viewer on every face:
// a point on the viewer's left maps to a smaller WallX than one on the right.
func TestCastRay_TextureOrientationPerFace(t *testing.T) {
	grid := mustRoom(t, 10, 10)
	fov := camera.Degrees(60)

	for _, angle := range []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2} {
		pose, err := camera.FromAngle(mathutil.V(5.5, 5.5), angle, fov)
		if err != nil {
			t.Fatal(err)
		}
		left := CastRay(grid, pose.Position, pose.Ray(-0.15), 32)
		right := CastRay(grid, pose.Position, pose.Ray(0.15), 32)
		if left.CellX != right.CellX || left.CellY != right.CellY {
			t.Fatalf("angle %v: rays hit different cells", angle)
		}
		if !(left.WallX < right.WallX) {
			t.Errorf("angle %v (%v face): left wallX %v >= right wallX %v",
				angle, left.Face, left.WallX, right.WallX)
		}
		t.Logf("angle %.2f face %v: wallX %.3f .. %.3f", angle, left.Face, left.WallX, right.WallX)
	}
}
