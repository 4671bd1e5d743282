package camera

import (
	"errors"
	"math"
	"testing"

	"labyrinth/internal/mathutil"
)

const eps = 1e-9

func TestNewPose_RejectsDegenerateVectors(t *testing.T) {
	tests := []struct {
		name       string
		dir, plane mathutil.Vec2
		want       error
	}{
		{"zero direction", mathutil.V(0, 0), mathutil.V(0, 0.66), ErrZeroDirection},
		{"zero plane", mathutil.V(1, 0), mathutil.V(0, 0), ErrZeroPlane},
		{"nan direction", mathutil.V(math.NaN(), 0), mathutil.V(0, 1), ErrZeroDirection},
		{"skewed plane", mathutil.V(1, 0), mathutil.V(0.2, 0.66), ErrNotOrthogonal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPose(mathutil.V(1, 1), tt.dir, tt.plane); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewPose_NormalizesDirection(t *testing.T) {
	p, err := NewPose(mathutil.V(0, 0), mathutil.V(2, 0), mathutil.V(0, 1.32))
	if err != nil {
		t.Fatalf("NewPose: %v", err)
	}
	if math.Abs(p.Dir.Len()-1) > eps {
		t.Errorf("|dir| = %v, want 1", p.Dir.Len())
	}
	if math.Abs(p.Plane.Len()-0.66) > eps {
		t.Errorf("|plane| = %v, want 0.66", p.Plane.Len())
	}
}

func TestFromAngle(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		wantDir   mathutil.Vec2
		wantRight mathutil.Vec2
	}{
		{"east", 0, mathutil.V(1, 0), mathutil.V(0, 1)},
		{"north", -math.Pi / 2, mathutil.V(0, -1), mathutil.V(1, 0)},
		{"west", math.Pi, mathutil.V(-1, 0), mathutil.V(0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromAngle(mathutil.V(5, 5), tt.angle, Degrees(90))
			if err != nil {
				t.Fatalf("FromAngle: %v", err)
			}
			if p.Dir.Dist(tt.wantDir) > eps {
				t.Errorf("dir = %+v, want %+v", p.Dir, tt.wantDir)
			}
			// fov 90 gives a plane of length 1 pointing to the viewer's right
			if p.Plane.Dist(tt.wantRight) > eps {
				t.Errorf("plane = %+v, want %+v", p.Plane, tt.wantRight)
			}
			if math.Abs(p.FOV()-math.Pi/2) > eps {
				t.Errorf("FOV = %v", p.FOV())
			}
		})
	}

	if _, err := FromAngle(mathutil.V(0, 0), 0, 0); !errors.Is(err, ErrInvalidFOV) {
		t.Errorf("zero fov err = %v", err)
	}
}

func TestRotateKeepsOrthogonality(t *testing.T) {
	p, _ := FromAngle(mathutil.V(0, 0), 0, Degrees(66))
	for i := 0; i < 1000; i++ {
		p = p.Rotate(0.0137)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("pose invalid after rotation: %v", err)
	}
	if math.Abs(p.Dir.Dot(p.Plane)) > 1e-9 {
		t.Errorf("dir . plane = %v", p.Dir.Dot(p.Plane))
	}
}

func TestColumnRayEdges(t *testing.T) {
	p, _ := FromAngle(mathutil.V(0, 0), 0, Degrees(90))
	if r := p.ColumnRay(0, 100); r.Dist(mathutil.V(1, -1)) > eps {
		t.Errorf("left ray = %+v", r)
	}
	if r := p.ColumnRay(50, 100); r.Dist(mathutil.V(1, 0)) > eps {
		t.Errorf("center ray = %+v", r)
	}
}

func TestToCamera(t *testing.T) {
	p, _ := FromAngle(mathutil.V(2, 2), 0, Degrees(90))
	tests := []struct {
		name       string
		world      mathutil.Vec2
		lat, depth float64
	}{
		{"ahead", mathutil.V(5, 2), 0, 3},
		{"ahead right", mathutil.V(4, 3), 1, 2},
		{"behind", mathutil.V(0, 2), 0, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, depth := p.ToCamera(tt.world)
			if math.Abs(lat-tt.lat) > eps || math.Abs(depth-tt.depth) > eps {
				t.Errorf("ToCamera = (%v,%v), want (%v,%v)", lat, depth, tt.lat, tt.depth)
			}
		})
	}
}
