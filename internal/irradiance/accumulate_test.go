package irradiance

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/lamp"
	"github.com/banshee-data/guv.calcs/internal/photometry"
	"github.com/banshee-data/guv.calcs/internal/units"
)

// testSource is a Source with fixed orientation and a pluggable intensity.
type testSource struct {
	pos                  geometry.Vec3
	heading, bank, angle float64
	unitTag              string
	intensity            func(theta, phi float64) float64
}

func (s *testSource) Position() geometry.Vec3 { return s.pos }
func (s *testSource) Heading() float64        { return s.heading }
func (s *testSource) Bank() float64           { return s.bank }
func (s *testSource) Angle() float64          { return s.angle }
func (s *testSource) IntensityUnits() string  { return s.unitTag }
func (s *testSource) Intensity(theta, phi float64) float64 {
	return s.intensity(theta, phi)
}

func isotropic(pos geometry.Vec3, value float64) *testSource {
	return &testSource{
		pos:       pos,
		unitTag:   units.MilliwattsPerSteradian,
		intensity: func(float64, float64) float64 { return value },
	}
}

func ptr[T any](v T) *T { return &v }

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestContribution_InverseSquare(t *testing.T) {
	const intensity = 10.0
	src := isotropic(geometry.Vec3{}, intensity)

	directions := []geometry.Vec3{
		{X: 0, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0.6, Y: 0, Z: 0.8},
	}
	for _, r := range []float64{1, 2, 5} {
		vs := make([]geometry.Vec3, len(directions))
		for i, d := range directions {
			vs[i] = d.Scale(r)
		}

		got, err := Contribution(geometry.PointsFromVecs(vs), src, Options{})
		require.NoError(t, err)
		for i, v := range got {
			// 0.1 converts mW/sr at metres into µW/cm²
			assert.InDelta(t, intensity/(r*r), v/0.1, 1e-12, "r=%v sample %d", r, i)
		}
	}
}

func TestContribution_UsesSourceFrameForLookup(t *testing.T) {
	// peaked distribution: 100 on axis, falling to zero at 10 degrees
	tbl, err := photometry.NewTable([]float64{0, 10, 180}, []float64{0}, [][]float64{{100, 0, 0}})
	require.NoError(t, err)

	l, err := lamp.New(lamp.Config{ID: "l", Z: ptr(2.0), AimX: ptr(1.0), AimZ: ptr(1.0), Angle: ptr(25.0)}, tbl)
	require.NoError(t, err)

	coords := geometry.PointsFromVecs([]geometry.Vec3{
		{X: 2, Y: 0, Z: 0}, // on the tilted axis
		{X: 0, Y: 0, Z: 0}, // straight below, 45 degrees off axis
	})
	got, err := Contribution(coords, l, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 100.0/8*0.1, got[0], 1e-9)
	assert.InDelta(t, 0, got[1], 1e-12)
}

func TestInsideFOV_Boundary(t *testing.T) {
	assert.False(t, insideFOV(0))
	assert.False(t, insideFOV(49.999999))
	assert.True(t, insideFOV(50))
	assert.True(t, insideFOV(50.000001))
	assert.True(t, insideFOV(90))
	assert.True(t, insideFOV(180))
}

// samplesAtZenith returns points at unit distance below the origin at the
// given zenith angles, measured from straight down.
func samplesAtZenith(angles []float64) geometry.Points {
	vs := make([]geometry.Vec3, len(angles))
	for i, a := range angles {
		rad := geometry.Radians(a)
		vs[i] = geometry.Vec3{Y: math.Sin(rad), Z: -math.Cos(rad)}
	}
	return geometry.PointsFromVecs(vs)
}

func TestContribution_FOV(t *testing.T) {
	angles := []float64{0, 30, 49.9, 50.1, 60, 85, 120}
	coords := samplesAtZenith(angles)

	for _, bank := range []float64{0, -30, -60} {
		src := isotropic(geometry.Vec3{}, 1)
		src.bank = bank
		src.heading = 90

		plain, err := Contribution(coords, src, Options{})
		require.NoError(t, err)
		filtered, err := Contribution(coords, src, Options{FOV: true})
		require.NoError(t, err)

		for i, a := range angles {
			if a < FOVCutoffDegrees {
				assert.Equal(t, 0.0, filtered[i], "bank=%v angle=%v", bank, a)
			} else {
				assert.InDelta(t, plain[i], filtered[i], 1e-12, "bank=%v angle=%v", bank, a)
				assert.NotZero(t, filtered[i])
			}
		}
	}
}

func TestContribution_FOVUsesRoomFrameAngle(t *testing.T) {
	// lamp tilted 60 degrees towards +y; a sample straight below is 60
	// degrees off the lamp axis but 0 degrees from nadir
	tbl, err := photometry.NewTable([]float64{0, 90, 180}, []float64{0}, [][]float64{{1, 1, 0}})
	require.NoError(t, err)
	src := &testSource{unitTag: units.MilliwattsPerSteradian, heading: 90, bank: -60, intensity: tbl.Intensity}

	coords := samplesAtZenith([]float64{0, 60})
	got, err := Contribution(coords, src, Options{FOV: true})
	require.NoError(t, err)

	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 0.1, got[1], 1e-9)
}

func TestContribution_Projection(t *testing.T) {
	coords := samplesAtZenith([]float64{0, 30, 45, 90})
	src := isotropic(geometry.Vec3{}, 1)

	plain, err := Contribution(coords, src, Options{})
	require.NoError(t, err)
	vert, err := Contribution(coords, src, Options{Vertical: true})
	require.NoError(t, err)
	horiz, err := Contribution(coords, src, Options{Horizontal: true})
	require.NoError(t, err)
	both, err := Contribution(coords, src, Options{Vertical: true, Horizontal: true})
	require.NoError(t, err)

	for i, a := range []float64{0, 30, 45, 90} {
		s, c := math.Sin(geometry.Radians(a)), math.Cos(geometry.Radians(a))
		assert.InDelta(t, plain[i]*s, vert[i], 1e-9, "vert %v", a)
		assert.InDelta(t, plain[i]*c, horiz[i], 1e-9, "horiz %v", a)
		assert.InDelta(t, plain[i]*s*c, both[i], 1e-9, "both %v", a)
	}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{FOV: true, Vertical: true}.Validate())
	assert.NoError(t, Options{Horizontal: true}.Validate())
	assert.ErrorIs(t, Options{Vertical: true, Horizontal: true}.Validate(), ErrConflictingProjection)
}

func TestAccumulate_UnknownUnitsAbort(t *testing.T) {
	coords := samplesAtZenith([]float64{0, 10})
	bad := isotropic(geometry.Vec3{Z: 1}, 1)
	bad.unitTag = "W/sr"

	sources := map[string]Source{
		"good": isotropic(geometry.Vec3{Z: 2}, 1),
		"bad":  bad,
	}
	got, err := Accumulate(coords, sources, Options{})
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Nil(t, got)
}

func TestAccumulate_NilSource(t *testing.T) {
	_, err := Accumulate(samplesAtZenith([]float64{0}), map[string]Source{"x": nil}, Options{})
	assert.ErrorIs(t, err, ErrNilSource)
}

func TestAccumulate_NoSources(t *testing.T) {
	got, err := Accumulate(samplesAtZenith([]float64{0, 10, 20}), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, got)
}

func TestAccumulate_NoCoords(t *testing.T) {
	got, err := Accumulate(geometry.NewPoints(0), map[string]Source{"a": isotropic(geometry.Vec3{}, 1)}, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAccumulate_Commutative(t *testing.T) {
	coords := geometry.PointsFromVecs([]geometry.Vec3{
		{X: 0.5, Y: 0.5, Z: 0},
		{X: 1.7, Y: 2.2, Z: 1},
		{X: 3, Y: 0.1, Z: 1.9},
	})
	a := isotropic(geometry.Vec3{X: 1, Y: 1, Z: 2.5}, 3)
	a.heading, a.bank, a.angle = 30, -20, 10
	b := isotropic(geometry.Vec3{X: 2, Y: 0.5, Z: 2.7}, 7)
	b.intensity = func(theta, phi float64) float64 { return 7 * math.Cos(geometry.Radians(theta)/2) }
	b.bank = -45

	ab, err := Accumulate(coords, map[string]Source{"a": a, "b": b}, Options{Vertical: true})
	require.NoError(t, err)
	ba, err := Accumulate(coords, map[string]Source{"a": b, "b": a}, Options{Vertical: true})
	require.NoError(t, err)

	if diff := cmp.Diff(ab, ba, approx); diff != "" {
		t.Errorf("A+B vs B+A mismatch (-ab +ba):\n%s", diff)
	}

	ca, err := Contribution(coords, a, Options{Vertical: true})
	require.NoError(t, err)
	cb, err := Contribution(coords, b, Options{Vertical: true})
	require.NoError(t, err)
	for i := range ab {
		assert.InDelta(t, ca[i]+cb[i], ab[i], 1e-12)
	}
}

func TestAccumulate_SampleAtSourceIsNonFinite(t *testing.T) {
	pos := geometry.Vec3{X: 1, Y: 1, Z: 2}
	coords := geometry.PointsFromVecs([]geometry.Vec3{pos, {X: 1, Y: 1, Z: 1}})

	got, err := Accumulate(coords, map[string]Source{"a": isotropic(pos, 5)}, Options{})
	require.NoError(t, err)
	assert.True(t, math.IsInf(got[0], 1))
	assert.InDelta(t, 0.5, got[1], 1e-12)

	dark, err := Accumulate(coords, map[string]Source{"a": isotropic(pos, 0)}, Options{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(dark[0]))
}
