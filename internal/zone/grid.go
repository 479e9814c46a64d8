package zone

import "github.com/banshee-data/guv.calcs/internal/geometry"

// Range is a closed interval along one axis.
type Range struct {
	Min, Max float64
}

// Grid is the immutable sample layout of a zone. Coordinates are always 3D
// and ordered x-major: for a volume the sample at axis indices (i, j, k)
// sits at (i*ny+j)*nz+k; for a plane at i*ny+j.
type Grid struct {
	xs, ys, zs []float64
	planar     bool
	coords     geometry.Points
}

// axisPoints samples [lo, hi] with step s. The count is truncated, so any
// leftover extent shorter than one step is dropped. With offset the points
// sit at cell centres, otherwise they span the bounds inclusively.
func axisPoints(lo, hi, s float64, offset bool) []float64 {
	n := int((hi - lo) / s)
	if offset {
		return linspace(lo+s/2, hi-s/2, n)
	}
	return linspace(lo, hi, n)
}

// linspace returns n evenly spaced values from start to stop inclusive. One
// value yields [start]; the last value is exactly stop.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	out[0] = start
	if n == 1 {
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func newPlaneGrid(x, y Range, height, xs, ys float64, offset bool) *Grid {
	g := &Grid{
		xs:     axisPoints(x.Min, x.Max, xs, offset),
		ys:     axisPoints(y.Min, y.Max, ys, offset),
		zs:     []float64{height},
		planar: true,
	}
	g.coords = product(g.xs, g.ys, g.zs)
	return g
}

func newVolumeGrid(x, y, z Range, xs, ys, zs float64, offset bool) *Grid {
	g := &Grid{
		xs: axisPoints(x.Min, x.Max, xs, offset),
		ys: axisPoints(y.Min, y.Max, ys, offset),
		zs: axisPoints(z.Min, z.Max, zs, offset),
	}
	g.coords = product(g.xs, g.ys, g.zs)
	return g
}

func product(xs, ys, zs []float64) geometry.Points {
	p := geometry.NewPoints(len(xs) * len(ys) * len(zs))
	n := 0
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				p.X[n], p.Y[n], p.Z[n] = x, y, z
				n++
			}
		}
	}
	return p
}

// Planar reports whether the grid holds a single height.
func (g *Grid) Planar() bool { return g.planar }

// Shape returns the per-axis counts: (nx, ny) for a plane, (nx, ny, nz) for
// a volume.
func (g *Grid) Shape() []int {
	if g.planar {
		return []int{len(g.xs), len(g.ys)}
	}
	return []int{len(g.xs), len(g.ys), len(g.zs)}
}

// Len returns the number of samples.
func (g *Grid) Len() int { return g.coords.Len() }

// XPoints returns a copy of the x axis samples.
func (g *Grid) XPoints() []float64 { return append([]float64(nil), g.xs...) }

// YPoints returns a copy of the y axis samples.
func (g *Grid) YPoints() []float64 { return append([]float64(nil), g.ys...) }

// ZPoints returns a copy of the z axis samples; a plane has just its height.
func (g *Grid) ZPoints() []float64 { return append([]float64(nil), g.zs...) }

// Coords returns a copy of every sample coordinate in grid order.
func (g *Grid) Coords() geometry.Points {
	return geometry.Points{
		X: append([]float64(nil), g.coords.X...),
		Y: append([]float64(nil), g.coords.Y...),
		Z: append([]float64(nil), g.coords.Z...),
	}
}
