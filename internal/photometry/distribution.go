// Package photometry provides in-memory angular intensity distributions for
// lamps. Distributions are queried in the lamp frame: theta is the zenith
// angle from the photometric axis and phi the azimuth, both in degrees.
//
// Reading photometric files is left to callers; this package only holds the
// numbers and interpolates them.
package photometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidTable is returned when a tabulated distribution is malformed.
var ErrInvalidTable = errors.New("invalid intensity table")

// Distribution returns radiant intensity at a lamp-frame direction.
type Distribution interface {
	Intensity(theta, phi float64) float64
}

// Isotropic emits the same intensity in every direction.
type Isotropic struct {
	Value float64
}

// Intensity implements Distribution.
func (d Isotropic) Intensity(theta, phi float64) float64 {
	return d.Value
}

// Table is a distribution sampled on a (phi, theta) grid and interpolated
// bilinearly between samples.
type Table struct {
	thetas []float64
	phis   []float64
	values [][]float64 // [phi][theta]
}

// NewTable validates and copies a tabulated distribution. values must have
// one row per phi and one column per theta. Both axes must be strictly
// increasing; thetas must lie in [0, 180] and phis in [0, 360].
//
// A single phi row describes an axially symmetric lamp. Otherwise phi wraps:
// directions past the last phi interpolate towards the first phi + 360.
func NewTable(thetas, phis []float64, values [][]float64) (*Table, error) {
	if len(thetas) == 0 {
		return nil, fmt.Errorf("%w: no theta samples", ErrInvalidTable)
	}
	if len(phis) == 0 {
		return nil, fmt.Errorf("%w: no phi samples", ErrInvalidTable)
	}
	if err := checkAxis("theta", thetas, 0, 180); err != nil {
		return nil, err
	}
	if err := checkAxis("phi", phis, 0, 360); err != nil {
		return nil, err
	}
	if len(values) != len(phis) {
		return nil, fmt.Errorf("%w: %d value rows for %d phi samples", ErrInvalidTable, len(values), len(phis))
	}

	t := &Table{
		thetas: append([]float64(nil), thetas...),
		phis:   append([]float64(nil), phis...),
		values: make([][]float64, len(values)),
	}
	for i, row := range values {
		if len(row) != len(thetas) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d theta samples", ErrInvalidTable, i, len(row), len(thetas))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value at phi=%g theta=%g", ErrInvalidTable, phis[i], thetas[j])
			}
		}
		t.values[i] = append([]float64(nil), row...)
	}
	return t, nil
}

func checkAxis(name string, axis []float64, lo, hi float64) error {
	for i, v := range axis {
		if math.IsNaN(v) || v < lo || v > hi {
			return fmt.Errorf("%w: %s[%d]=%g outside [%g, %g]", ErrInvalidTable, name, i, v, lo, hi)
		}
		if i > 0 && v <= axis[i-1] {
			return fmt.Errorf("%w: %s samples must be strictly increasing at index %d", ErrInvalidTable, name, i)
		}
	}
	return nil
}

// Thetas returns a copy of the theta axis.
func (t *Table) Thetas() []float64 { return append([]float64(nil), t.thetas...) }

// Phis returns a copy of the phi axis.
func (t *Table) Phis() []float64 { return append([]float64(nil), t.phis...) }

// Max returns the largest tabulated intensity.
func (t *Table) Max() float64 {
	m := math.Inf(-1)
	for _, row := range t.values {
		for _, v := range row {
			m = math.Max(m, v)
		}
	}
	return m
}

// Intensity implements Distribution. theta is clamped to the tabulated
// range; phi is wrapped into [0, 360).
func (t *Table) Intensity(theta, phi float64) float64 {
	if len(t.phis) == 1 {
		return t.alongTheta(0, theta)
	}

	phi = math.Mod(phi, 360)
	if phi < 0 {
		phi += 360
	}

	first, last := t.phis[0], t.phis[len(t.phis)-1]
	var lo, hi int
	var frac float64
	switch {
	case phi >= first && phi <= last:
		lo, frac = bracket(t.phis, phi)
		hi = lo + 1
		if hi == len(t.phis) {
			hi = lo
		}
	default:
		// between the last sample and the first one a turn later
		lo, hi = len(t.phis)-1, 0
		if phi < first {
			phi += 360
		}
		span := first + 360 - last
		if span > 0 {
			frac = (phi - last) / span
		}
	}

	a := t.alongTheta(lo, theta)
	b := t.alongTheta(hi, theta)
	return a + (b-a)*frac
}

func (t *Table) alongTheta(row int, theta float64) float64 {
	vals := t.values[row]
	if len(vals) == 1 {
		return vals[0]
	}
	i, frac := bracket(t.thetas, theta)
	if i == len(vals)-1 {
		return vals[i]
	}
	return vals[i] + (vals[i+1]-vals[i])*frac
}

// bracket returns the index i of the sample at or below v and the fraction
// of the way from axis[i] to axis[i+1]. v is clamped to the axis range.
func bracket(axis []float64, v float64) (int, float64) {
	n := len(axis)
	if v <= axis[0] || n == 1 {
		return 0, 0
	}
	if v >= axis[n-1] {
		return n - 1, 0
	}
	i := sort.SearchFloat64s(axis, v)
	// axis[i-1] < v <= axis[i]
	if axis[i] == v {
		return i, 0
	}
	i--
	return i, (v - axis[i]) / (axis[i+1] - axis[i])
}
