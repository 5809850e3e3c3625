// =======================
// cube/renderer.go
// =======================

package cube

// Renderer rasterizes the cube into a reusable canvas. It keeps no
// rotation of its own: callers pass the angles in and get the next ones
// back.
type Renderer struct {
	geo    Geometry
	canvas *Canvas
	stats  Stats
}

// NewRenderer allocates the buffers for g once.
func NewRenderer(g Geometry) *Renderer {
	return &Renderer{
		geo:    g,
		canvas: NewCanvas(g.Width, g.Height),
	}
}

// Geometry returns the renderer's fixed geometry.
func (r *Renderer) Geometry() Geometry { return r.geo }

// Canvas exposes the buffers written by the last tick.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Stats returns the sample counters of the last tick.
func (r *Renderer) Stats() Stats { return r.stats }

// Tick renders one frame at rot and returns the rotation for the next
// tick together with the serialized frame.
func (r *Renderer) Tick(rot Rotation) (Rotation, string) {
	r.canvas.Clear()
	r.stats = Stats{}

	s, step := r.geo.Size, r.geo.Step
	for _, f := range Faces {
		for i := 0; -s+float64(i)*step < s; i++ {
			u := -s + float64(i)*step
			for j := 0; -s+float64(j)*step < s; j++ {
				r.sample(f.Point(u, -s+float64(j)*step, s), rot, f.Glyph)
			}
		}
	}

	return rot.Add(r.geo.Deltas), r.canvas.String()
}

func (r *Renderer) sample(p Point3D, rot Rotation, glyph rune) {
	col, row, ooz := Project(p, rot, r.geo)
	idx := col + row*r.geo.Width

	r.stats.Samples++
	inside, written := r.canvas.Plot(idx, ooz, glyph)
	switch {
	case !inside:
		r.stats.Discarded++
	case !written:
		r.stats.Occluded++
	default:
		r.stats.Written++
	}
}
