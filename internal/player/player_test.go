package player

import (
	"math"
	"testing"
	"time"

	"labyrinth/internal/camera"
	"labyrinth/internal/mathutil"
	"labyrinth/internal/world"
)

var testSettings = Settings{
	MoveSpeed:           2,
	RotationSpeed:       math.Pi / 2,
	SprintMultiplier:    2,
	SprintBobMultiplier: 1.5,
	BobAmplitude:        4,
	BobFrequency:        1,
}

func newTestPlayer(t *testing.T, x, y, angle float64) *Player {
	t.Helper()
	grid, err := world.NewRoom(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	pose, err := camera.FromAngle(mathutil.V(x, y), angle, camera.Degrees(66))
	if err != nil {
		t.Fatal(err)
	}
	return New(pose, grid, 0.2, testSettings)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMoveForwardAndStrafe(t *testing.T) {
	p := newTestPlayer(t, 3.5, 3.5, 0)

	p.Update(Input{Forward: 1}, 500*time.Millisecond)
	if pos := p.Position(); !near(pos.X, 4.5) || !near(pos.Y, 3.5) {
		t.Errorf("after forward = %v, want (4.5, 3.5)", pos)
	}

	// facing east, right is south
	p.Update(Input{Strafe: 1}, 250*time.Millisecond)
	if pos := p.Position(); !near(pos.X, 4.5) || !near(pos.Y, 4) {
		t.Errorf("after strafe = %v, want (4.5, 4)", pos)
	}
}

func TestSprintAndDiagonalSpeed(t *testing.T) {
	p := newTestPlayer(t, 2.5, 2.5, 0)
	p.Update(Input{Forward: 1, Sprint: true}, 250*time.Millisecond)
	if pos := p.Position(); !near(pos.X, 3.5) {
		t.Errorf("sprint x = %v, want 3.5", pos.X)
	}

	p = newTestPlayer(t, 3.5, 3.5, 0)
	p.Update(Input{Forward: 1, Strafe: 1}, 500*time.Millisecond)
	if d := p.Distance(); !near(d, 1) {
		t.Errorf("diagonal distance = %v, want 1", d)
	}
}

func TestTurnKeepsPlaneOrthogonal(t *testing.T) {
	p := newTestPlayer(t, 3.5, 3.5, 0)
	p.Update(Input{Turn: 1}, time.Second)

	pose := p.Pose()
	if !near(pose.Dir.X, 0) || !near(pose.Dir.Y, 1) {
		t.Errorf("dir after a quarter turn = %v, want south", pose.Dir)
	}
	if err := pose.Validate(); err != nil {
		t.Errorf("pose after turn: %v", err)
	}
	if fov := pose.FOV(); math.Abs(fov-camera.Degrees(66)) > 1e-9 {
		t.Errorf("fov drifted to %v", fov)
	}

	p.Update(Input{Look: -math.Pi / 2}, time.Millisecond)
	if d := p.Pose().Dir; !near(d.X, 1) || !near(d.Y, 0) {
		t.Errorf("dir after look = %v, want east", d)
	}
}

func TestSlidesAlongWall(t *testing.T) {
	p := newTestPlayer(t, 6.5, 3.5, math.Pi/4)
	for i := 0; i < 30; i++ {
		p.Update(Input{Forward: 1}, 50*time.Millisecond)
	}
	pos := p.Position()
	if pos.X > 7-0.2+1e-9 {
		t.Errorf("walked into the east wall: %v", pos)
	}
	if pos.Y <= 3.5 {
		t.Errorf("did not slide south along the wall: %v", pos)
	}
}

func TestViewBob(t *testing.T) {
	p := newTestPlayer(t, 3.5, 3.5, 0)
	if b := p.Pose().HorizonOffset; b != 0 {
		t.Fatalf("bob at rest = %v", b)
	}

	p.Update(Input{Forward: 1}, 250*time.Millisecond)
	if b := p.Pose().HorizonOffset; !near(b, 4) {
		t.Errorf("bob after a quarter cycle = %v, want 4", b)
	}

	for i := 0; i < 20; i++ {
		p.Update(Input{}, 100*time.Millisecond)
	}
	if b := p.Pose().HorizonOffset; b != 0 {
		t.Errorf("bob did not settle: %v", b)
	}
}

func TestBlockedMoveDoesNotBob(t *testing.T) {
	p := newTestPlayer(t, 1.3, 1.3, math.Pi*5/4)
	p.Update(Input{Forward: 1}, 100*time.Millisecond)
	if p.Distance() != 0 {
		t.Fatalf("moved %v into the corner", p.Distance())
	}
	if b := p.Pose().HorizonOffset; b != 0 {
		t.Errorf("bob = %v without moving", b)
	}
}

func TestFace(t *testing.T) {
	p := newTestPlayer(t, 3.5, 3.5, 0.3)
	p.Face(-math.Pi / 2)
	if d := p.Pose().Dir; !near(d.X, 0) || !near(d.Y, -1) {
		t.Errorf("dir = %v, want north", d)
	}
	if pos := p.Position(); pos != mathutil.V(3.5, 3.5) {
		t.Errorf("Face moved the player to %v", pos)
	}
}
