package geometry

import "math"

// Vec3 is a point or direction in room coordinates (metres).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v multiplied by k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite reports whether every component is neither NaN nor ±Inf.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Points is a 3×N point set stored column-wise, one slice per axis.
// All three slices always have the same length.
type Points struct {
	X, Y, Z []float64
}

// NewPoints allocates a zeroed point set of length n.
func NewPoints(n int) Points {
	return Points{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
}

// PointsFromVecs packs a slice of vectors into a Points value.
func PointsFromVecs(vs []Vec3) Points {
	p := NewPoints(len(vs))
	for i, v := range vs {
		p.X[i], p.Y[i], p.Z[i] = v.X, v.Y, v.Z
	}
	return p
}

// Len returns the number of points.
func (p Points) Len() int { return len(p.X) }

// At returns point i.
func (p Points) At(i int) Vec3 {
	return Vec3{X: p.X[i], Y: p.Y[i], Z: p.Z[i]}
}

// Translate returns a new point set with d added to every point.
func (p Points) Translate(d Vec3) Points {
	out := NewPoints(p.Len())
	for i := range p.X {
		out.X[i] = p.X[i] + d.X
		out.Y[i] = p.Y[i] + d.Y
		out.Z[i] = p.Z[i] + d.Z
	}
	return out
}

// Polar is shorthand for ToPolar(p.X, p.Y, p.Z).
func (p Points) Polar() (theta, phi, r []float64) {
	return ToPolar(p.X, p.Y, p.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
