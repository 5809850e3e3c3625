package cube

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func near(a, b Point3D) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// rotateAxes rotates p about X, then Y, then Z, one matrix at a time.
func rotateAxes(p Point3D, ax, ay, az float64) Point3D {
	sinX, cosX := math.Sincos(ax)
	sinY, cosY := math.Sincos(ay)
	sinZ, cosZ := math.Sincos(az)

	p.Y, p.Z = p.Y*cosX-p.Z*sinX, p.Y*sinX+p.Z*cosX
	p.X, p.Z = p.X*cosY+p.Z*sinY, -p.X*sinY+p.Z*cosY
	p.X, p.Y = p.X*cosZ-p.Y*sinZ, p.X*sinZ+p.Y*cosZ
	return p
}

var rotations = []Rotation{
	{0, 0, 0},
	{0.02, 0.05, 0.01},
	{math.Pi / 2, 0, 0},
	{0, math.Pi / 3, 0},
	{0, 0, -math.Pi / 4},
	{1.3, -2.7, 0.4},
	{40.1, 100.5, -7.25},
}

var points = []Point3D{
	{0, 0, 0},
	{20, 0, 0},
	{0, -20, 0},
	{-20, 20, -20},
	{3.2, -7.6, 19.2},
}

func TestSpinMatchesStepwiseRotation(t *testing.T) {
	for _, r := range rotations {
		for _, p := range points {
			got := p.Spin(r)
			want := rotateAxes(p, -r.X, -r.Y, -r.Z)
			if !near(got, want) {
				t.Errorf("Spin(%v, %v) = %v, want %v", p, r, got, want)
			}
		}
	}
}

func TestSpinMatchesAxisRotations(t *testing.T) {
	for _, r := range rotations {
		rx := r3.NewRotation(-r.X, r3.Vec{X: 1})
		ry := r3.NewRotation(-r.Y, r3.Vec{Y: 1})
		rz := r3.NewRotation(-r.Z, r3.Vec{Z: 1})
		for _, p := range points {
			v := rz.Rotate(ry.Rotate(rx.Rotate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})))
			want := Point3D{v.X, v.Y, v.Z}
			if got := p.Spin(r); !near(got, want) {
				t.Errorf("Spin(%v, %v) = %v, want %v", p, r, got, want)
			}
		}
	}
}

func TestSpinPreservesLength(t *testing.T) {
	for _, r := range rotations {
		for _, p := range points {
			q := p.Spin(r)
			l1 := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
			l2 := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z)
			if math.Abs(l1-l2) > eps {
				t.Errorf("length changed from %f to %f for %v at %v", l1, l2, p, r)
			}
		}
	}
}

func TestProjectDeterministic(t *testing.T) {
	g := DefaultGeometry()
	for _, r := range rotations {
		for _, p := range points {
			c1, r1, o1 := Project(p, r, g)
			c2, r2, o2 := Project(p, r, g)
			if c1 != c2 || r1 != r2 || o1 != o2 {
				t.Errorf("Project(%v, %v) not deterministic: (%d,%d,%f) vs (%d,%d,%f)",
					p, r, c1, r1, o1, c2, r2, o2)
			}
		}
	}
}

func TestProjectAtRest(t *testing.T) {
	g := Geometry{Width: 60, Height: 60, Distance: 100, Scale: 40}

	tests := []struct {
		name     string
		p        Point3D
		col, row int
		ooz      float64
	}{
		{"origin", Point3D{0, 0, 0}, 30, 30, 1.0 / 100},
		{"front face", Point3D{-10.4, -9.6, -20}, 19, 25, 1.0 / 80},
		{"right face", Point3D{20, 0.6, -15}, 48, 30, 1.0 / 85},
		{"back top", Point3D{0.5, 20, 20}, 30, 36, 1.0 / 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ooz := Project(tt.p, Rotation{}, g)
			if col != tt.col || row != tt.row {
				t.Errorf("cell = (%d, %d), want (%d, %d)", col, row, tt.col, tt.row)
			}
			if math.Abs(ooz-tt.ooz) > eps {
				t.Errorf("ooz = %f, want %f", ooz, tt.ooz)
			}
		})
	}
}

func TestProjectCloserHasLargerInverseDepth(t *testing.T) {
	g := DefaultGeometry()
	_, _, closer := Project(Point3D{0, 0, -20}, Rotation{}, g)
	_, _, farther := Project(Point3D{0, 0, 20}, Rotation{}, g)
	if closer <= farther {
		t.Errorf("expected closer point to have larger ooz, got closer=%f farther=%f", closer, farther)
	}
}

func TestRotationAdd(t *testing.T) {
	r := Rotation{1, 2, 3}.Add(DefaultDeltas)
	want := Rotation{1.02, 2.05, 3.01}
	if math.Abs(r.X-want.X) > eps || math.Abs(r.Y-want.Y) > eps || math.Abs(r.Z-want.Z) > eps {
		t.Errorf("Add = %v, want %v", r, want)
	}
}
