// =======================
// cube/types.go
// =======================

package cube

const (
	DefaultWidth    = 80
	DefaultHeight   = 40
	DefaultSize     = 20.0
	DefaultStep     = 0.8
	DefaultDistance = 100.0
	DefaultScale    = 40.0

	Background = ' '
)

// Rotation holds the three cube angles in radians.
type Rotation struct{ X, Y, Z float64 }

// Add returns r advanced by d.
func (r Rotation) Add(d Rotation) Rotation {
	return Rotation{X: r.X + d.X, Y: r.Y + d.Y, Z: r.Z + d.Z}
}

// DefaultDeltas is the per-tick rotation advance.
var DefaultDeltas = Rotation{X: 0.02, Y: 0.05, Z: 0.01}

// Geometry fixes the grid, the cube and the camera for one renderer.
type Geometry struct {
	Width, Height int
	Size          float64 // half-extent of the cube
	Step          float64 // sample spacing across a face
	Distance      float64 // camera offset added to rotated z
	Scale         float64 // object-to-screen scale
	Deltas        Rotation
}

// DefaultGeometry returns the stock cube.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Size:     DefaultSize,
		Step:     DefaultStep,
		Distance: DefaultDistance,
		Scale:    DefaultScale,
		Deltas:   DefaultDeltas,
	}
}

// Cells is the length of the frame and depth buffers.
func (g Geometry) Cells() int { return g.Width * g.Height }

// Face is one side of the cube: a parametrisation of the two free
// axes u, v onto a point, tagged with the glyph drawn for it.
type Face struct {
	Glyph rune
	Point func(u, v, s float64) Point3D
}

// Faces in draw order. Earlier faces win ties in the depth test.
var Faces = [6]Face{
	{'@', func(u, v, s float64) Point3D { return Point3D{u, v, -s} }},
	{'$', func(u, v, s float64) Point3D { return Point3D{s, v, u} }},
	{'%', func(u, v, s float64) Point3D { return Point3D{-s, v, -u} }},
	{'#', func(u, v, s float64) Point3D { return Point3D{-u, v, s} }},
	{'*', func(u, v, s float64) Point3D { return Point3D{u, -s, -v} }},
	{'+', func(u, v, s float64) Point3D { return Point3D{u, s, v} }},
}

// Stats counts what happened to the samples of the last tick.
type Stats struct {
	Samples   int
	Discarded int // outside the grid
	Occluded  int // lost the depth test
	Written   int
}
