package camera

import (
	"errors"
	"fmt"
	"math"

	"labyrinth/internal/mathutil"
)

var (
	ErrZeroDirection = errors.New("camera: direction vector is zero or not finite")
	ErrZeroPlane     = errors.New("camera: camera plane vector is zero or not finite")
	ErrNotOrthogonal = errors.New("camera: direction and camera plane are not orthogonal")
	ErrInvalidFOV    = errors.New("camera: field of view must be in (0, 180) degrees")
)

// orthoTolerance bounds |cos| of the angle between direction and plane.
const orthoTolerance = 1e-6

// Pose is the camera state for one frame. Dir is a unit vector; Plane is
// perpendicular to it and its length is tan(fov/2). HorizonOffset shifts the
// horizon row in pixels (view bob).
type Pose struct {
	Position      mathutil.Vec2
	Dir           mathutil.Vec2
	Plane         mathutil.Vec2
	HorizonOffset float64
}

// Source hands out the pose for the next frame.
type Source interface {
	Pose() Pose
}

// NewPose validates and normalizes a pose. A non-unit direction is normalized
// and the plane is scaled by the same factor so the field of view is kept.
func NewPose(position, dir, plane mathutil.Vec2) (Pose, error) {
	if !finite(dir) || dir.IsZero() {
		return Pose{}, ErrZeroDirection
	}
	if !finite(plane) || plane.IsZero() {
		return Pose{}, ErrZeroPlane
	}
	dl, pl := dir.Len(), plane.Len()
	if math.Abs(dir.Dot(plane))/(dl*pl) > orthoTolerance {
		return Pose{}, fmt.Errorf("%w: dir=%v plane=%v", ErrNotOrthogonal, dir, plane)
	}
	return Pose{
		Position: position,
		Dir:      dir.Scale(1 / dl),
		Plane:    plane.Scale(1 / dl),
	}, nil
}

// FromAngle builds a pose facing angle radians (0 = east, -pi/2 = north) with
// the given horizontal field of view in radians.
func FromAngle(position mathutil.Vec2, angle, fov float64) (Pose, error) {
	if !(fov > 0 && fov < math.Pi) {
		return Pose{}, fmt.Errorf("%w: %v rad", ErrInvalidFOV, fov)
	}
	dir := mathutil.V(math.Cos(angle), math.Sin(angle))
	return NewPose(position, dir, dir.Perp().Scale(math.Tan(fov/2)))
}

// Degrees converts degrees to radians.
func Degrees(d float64) float64 {
	return d * math.Pi / 180
}

// Angle returns the facing angle in radians.
func (p Pose) Angle() float64 {
	return p.Dir.Angle()
}

// FOV returns the horizontal field of view in radians.
func (p Pose) FOV() float64 {
	return 2 * math.Atan(p.Plane.Len())
}

// Rotate turns direction and plane together.
func (p Pose) Rotate(delta float64) Pose {
	p.Dir = p.Dir.Rotate(delta)
	p.Plane = p.Plane.Rotate(delta)
	return p
}

// WithPosition returns the pose moved to pos.
func (p Pose) WithPosition(pos mathutil.Vec2) Pose {
	p.Position = pos
	return p
}

// Ray returns the ray direction for a normalized screen offset in [-1, 1].
func (p Pose) Ray(cameraX float64) mathutil.Vec2 {
	return p.Dir.Add(p.Plane.Scale(cameraX))
}

// ColumnRay returns the ray through screen column x of a width-column screen.
func (p Pose) ColumnRay(x, width int) mathutil.Vec2 {
	return p.Ray(2*float64(x)/float64(width) - 1)
}

// ToCamera transforms a world point into camera space: lateral is measured
// along the plane (in plane units, so lateral/depth in [-1, 1] is on screen),
// depth along the view direction.
func (p Pose) ToCamera(world mathutil.Vec2) (lateral, depth float64) {
	d := world.Sub(p.Position)
	invDet := 1.0 / (p.Plane.X*p.Dir.Y - p.Dir.X*p.Plane.Y)
	lateral = invDet * (p.Dir.Y*d.X - p.Dir.X*d.Y)
	depth = invDet * (-p.Plane.Y*d.X + p.Plane.X*d.Y)
	return lateral, depth
}

// Validate rechecks the invariants, e.g. after a pose was assembled by hand.
func (p Pose) Validate() error {
	_, err := NewPose(p.Position, p.Dir, p.Plane)
	return err
}

func finite(v mathutil.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
