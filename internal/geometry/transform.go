package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationTolerance is the tolerance for checking rotation matrix validity.
const RotationTolerance = 1e-9

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// ToPolar converts Cartesian offsets into lamp-frame spherical coordinates.
// theta is the zenith angle in degrees measured from −Z, phi is
// atan2(x, y) in degrees wrapped to [0, 360), and r is the radial distance.
//
// A zero-length offset yields theta = 0, phi = 0, r = 0. Callers dividing
// by r² get a non-finite value there, which is theirs to mask.
func ToPolar(x, y, z []float64) (theta, phi, r []float64) {
	n := len(x)
	if len(y) != n || len(z) != n {
		panic(fmt.Sprintf("geometry: ToPolar length mismatch x=%d y=%d z=%d", len(x), len(y), len(z)))
	}

	theta = make([]float64, n)
	phi = make([]float64, n)
	r = make([]float64, n)
	for i := range x {
		r[i] = math.Sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
		if r[i] > 0 {
			cos := -z[i] / r[i]
			// rounding can push |cos| a hair past 1
			cos = math.Max(-1, math.Min(1, cos))
			theta[i] = Degrees(math.Acos(cos))
		}
		p := Degrees(math.Atan2(x[i], y[i]))
		if p < 0 {
			p += 360
		}
		phi[i] = p
	}
	return theta, phi, r
}

// SphericalToCartesian converts radius r and angles (degrees) into
// Cartesian coordinates with z = r·cos(theta), i.e. theta measured from +Z.
// Lamp photometric angles map through theta = 180 − photometric theta.
func SphericalToCartesian(r, thetaDeg, phiDeg float64) (x, y, z float64) {
	thetaRad := Radians(thetaDeg)
	phiRad := Radians(phiDeg)

	sinTheta := math.Sin(thetaRad)
	x = r * sinTheta * math.Sin(phiRad)
	y = r * sinTheta * math.Cos(phiRad)
	z = r * math.Cos(thetaRad)
	return
}

// ToCartesian is the elementwise form of SphericalToCartesian.
func ToCartesian(theta, phi, r []float64) Points {
	n := len(theta)
	if len(phi) != n || len(r) != n {
		panic(fmt.Sprintf("geometry: ToCartesian length mismatch theta=%d phi=%d r=%d", len(theta), len(phi), len(r)))
	}
	p := NewPoints(n)
	for i := range theta {
		p.X[i], p.Y[i], p.Z[i] = SphericalToCartesian(r[i], theta[i], phi[i])
	}
	return p
}

// RotationMatrix returns R = Rz(yaw)·Ry(pitch)·Rx(roll) for angles in
// degrees. Applied to a column vector, roll acts first and yaw last.
func RotationMatrix(roll, pitch, yaw float64) *mat.Dense {
	cr, sr := math.Cos(Radians(roll)), math.Sin(Radians(roll))
	cp, sp := math.Cos(Radians(pitch)), math.Sin(Radians(pitch))
	cy, sy := math.Cos(Radians(yaw)), math.Sin(Radians(yaw))

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cr, -sr,
		0, sr, cr,
	})
	ry := mat.NewDense(3, 3, []float64{
		cp, 0, sp,
		0, 1, 0,
		-sp, 0, cp,
	})
	rz := mat.NewDense(3, 3, []float64{
		cy, -sy, 0,
		sy, cy, 0,
		0, 0, 1,
	})

	var zy, zyx mat.Dense
	zy.Mul(rz, ry)
	zyx.Mul(&zy, rx)
	return &zyx
}

// Attitude rotates every point by RotationMatrix(roll, pitch, yaw) and
// returns the result. The input is not modified. An empty point set is
// returned as an empty point set.
func Attitude(p Points, roll, pitch, yaw float64) Points {
	n := p.Len()
	if n == 0 {
		return NewPoints(0)
	}

	data := make([]float64, 0, 3*n)
	data = append(data, p.X...)
	data = append(data, p.Y...)
	data = append(data, p.Z...)
	src := mat.NewDense(3, n, data)

	var dst mat.Dense
	dst.Mul(RotationMatrix(roll, pitch, yaw), src)

	return Points{
		X: mat.Row(nil, 0, &dst),
		Y: mat.Row(nil, 1, &dst),
		Z: mat.Row(nil, 2, &dst),
	}
}

// IsValidRotation checks that m is a proper 3×3 rotation: orthonormal
// columns and determinant ≈ 1 (no reflection).
func IsValidRotation(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != 3 || c != 3 {
		return false
	}
	if math.Abs(mat.Det(m)-1.0) > RotationTolerance {
		return false
	}

	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	identity := mat.NewDiagDense(3, []float64{1, 1, 1})
	return mat.EqualApprox(&mtm, identity, RotationTolerance)
}
