package mathutil

import "math"

// Vec2 is a continuous 2D world coordinate or direction. The world is y-down:
// north is -Y, east is +X.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }
func (v Vec2) Floor() (int, int) { return FloorDiv(v.X), FloorDiv(v.Y) }

// Normalize returns the unit vector in v's direction, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate rotates v by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
