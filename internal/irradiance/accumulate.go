package irradiance

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/units"
)

// FOVCutoffDegrees is the zenith angle below which samples are discarded
// when field-of-view filtering is on.
const FOVCutoffDegrees = 50.0

var (
	// ErrConflictingProjection marks options asking for vertical and
	// horizontal projection at once.
	ErrConflictingProjection = errors.New("vertical and horizontal projection both enabled")
	// ErrNilSource is returned when the source map holds a nil entry.
	ErrNilSource = errors.New("nil source")
)

// Source is a positioned, oriented emitter that can be sampled by direction.
// Angles are degrees; Intensity takes lamp-frame zenith and azimuth.
type Source interface {
	Position() geometry.Vec3
	Heading() float64
	Bank() float64
	Angle() float64
	IntensityUnits() string
	Intensity(theta, phi float64) float64
}

// Options selects the per-sample filtering and projection.
type Options struct {
	FOV        bool `json:"fov80,omitempty" yaml:"fov80,omitempty"`
	Vertical   bool `json:"vert,omitempty" yaml:"vert,omitempty"`
	Horizontal bool `json:"horiz,omitempty" yaml:"horiz,omitempty"`
}

// Validate reports ErrConflictingProjection when both projections are on.
// The combination still computes (as the product of both factors); callers
// decide whether to warn or refuse.
func (o Options) Validate() error {
	if o.Vertical && o.Horizontal {
		return ErrConflictingProjection
	}
	return nil
}

// Contribution computes one source's irradiance, in µW/cm², at every
// coordinate. Coordinates and source position share the same linear unit
// (metres).
func Contribution(coords geometry.Points, src Source, opts Options) ([]float64, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	factor, err := units.IntensityToIrradiance(src.IntensityUnits())
	if err != nil {
		return nil, err
	}

	rel := coords.Translate(src.Position().Scale(-1))
	theta0, _, _ := rel.Polar()

	// undo heading, then bank, then spin; order matters
	rel = geometry.Attitude(rel, 0, 0, -src.Heading())
	rel = geometry.Attitude(rel, 0, -src.Bank(), 0)
	rel = geometry.Attitude(rel, 0, 0, -src.Angle())
	theta, phi, r := rel.Polar()

	values := make([]float64, coords.Len())
	for i := range values {
		v := src.Intensity(theta[i], phi[i]) / (r[i] * r[i])
		if opts.FOV && !insideFOV(theta0[i]) {
			v = 0
		}
		if opts.Vertical {
			v *= math.Sin(geometry.Radians(theta0[i]))
		}
		if opts.Horizontal {
			v *= math.Cos(geometry.Radians(theta0[i]))
		}
		values[i] = v * factor
	}
	return values, nil
}

// insideFOV reports whether a sample at zenith angle theta0 survives the
// field-of-view cutoff. The boundary itself is kept.
func insideFOV(theta0 float64) bool {
	return theta0 >= FOVCutoffDegrees
}

// Accumulate sums the contributions of all sources at every coordinate.
// Sources are evaluated concurrently; any error aborts the whole
// computation. An empty source map yields zeros.
func Accumulate(coords geometry.Points, sources map[string]Source, opts Options) ([]float64, error) {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	contributions := make([][]float64, len(ids))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		g.Go(func() error {
			values, err := Contribution(coords, sources[id], opts)
			if err != nil {
				return fmt.Errorf("source %q: %w", id, err)
			}
			contributions[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make([]float64, coords.Len())
	for _, values := range contributions {
		floats.Add(total, values)
	}
	return total, nil
}
