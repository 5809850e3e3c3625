// =======================
// cube/point3d.go
// =======================

package cube

import "math"

// Point3D holds a 3D coordinate.
type Point3D struct{ X, Y, Z float64 }

// Spin applies the fused cube rotation for r: the X, Y then Z axis
// rotations by -r.X, -r.Y and -r.Z, written out as one formula per axis.
func (p Point3D) Spin(r Rotation) Point3D {
	sinA, cosA := math.Sincos(r.X)
	sinB, cosB := math.Sincos(r.Y)
	sinC, cosC := math.Sincos(r.Z)
	i, j, k := p.X, p.Y, p.Z

	return Point3D{
		X: j*sinA*sinB*cosC - k*cosA*sinB*cosC + j*cosA*sinC + k*sinA*sinC + i*cosB*cosC,
		Y: j*cosA*cosC + k*sinA*cosC - j*sinA*sinB*sinC + k*cosA*sinB*sinC - i*cosB*sinC,
		Z: k*cosA*cosB - j*sinA*cosB + i*sinB,
	}
}

// Project rotates p by r and maps it onto the grid of g. The returned
// cell may lie outside the grid; ooz is the inverse camera depth, larger
// meaning closer.
func Project(p Point3D, r Rotation, g Geometry) (col, row int, ooz float64) {
	q := p.Spin(r)
	ooz = 1 / (q.Z + g.Distance)

	col = int(math.Floor(float64(g.Width)/2 + g.Scale*ooz*q.X*2))
	row = int(math.Floor(float64(g.Height)/2 + g.Scale*ooz*q.Y))
	return col, row, ooz
}
