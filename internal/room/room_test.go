package room

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/lamp"
	"github.com/banshee-data/guv.calcs/internal/monitoring"
	"github.com/banshee-data/guv.calcs/internal/photometry"
	"github.com/banshee-data/guv.calcs/internal/units"
	"github.com/banshee-data/guv.calcs/internal/zone"
)

func ptr[T any](v T) *T { return &v }

// captureLogs redirects monitoring.Warnf for the duration of the test.
func captureLogs(t *testing.T) *[]string {
	t.Helper()
	var (
		mu   sync.Mutex
		msgs []string
	)
	original := monitoring.Warnf
	monitoring.SetWarnLogger(func(format string, v ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		msgs = append(msgs, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Warnf = original })
	return &msgs
}

func newLamp(t *testing.T, id string, x, y, z, intensity float64) *lamp.Lamp {
	t.Helper()
	l, err := lamp.New(lamp.Config{ID: id, X: &x, Y: &y, Z: &z}, photometry.Isotropic{Value: intensity})
	require.NoError(t, err)
	return l
}

func TestNew(t *testing.T) {
	r, err := New([3]float64{6, 4, 2.7}, units.Meters)
	require.NoError(t, err)
	assert.Equal(t, geometry.Vec3{X: 6, Y: 4, Z: 2.7}, r.Dimensions())
	assert.Equal(t, units.Meters, r.Units())
	assert.InDelta(t, 64.8, r.Volume(), 1e-12)
	assert.Empty(t, r.LampIDs())
	assert.Empty(t, r.ZoneIDs())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		dims  [3]float64
		units string
	}{
		{"zero dimension", [3]float64{6, 0, 2.7}, units.Meters},
		{"negative dimension", [3]float64{-1, 4, 2.7}, units.Feet},
		{"NaN dimension", [3]float64{6, 4, math.NaN()}, units.Meters},
		{"unknown units", [3]float64{6, 4, 2.7}, "furlongs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dims, tt.units)
			assert.ErrorIs(t, err, ErrInvalidRoom)
		})
	}
}

func TestAddRemoveLookup(t *testing.T) {
	r, err := New([3]float64{6, 4, 2.7}, units.Meters)
	require.NoError(t, err)

	r.AddLamp(newLamp(t, "b", 1, 1, 2.5, 1))
	r.AddLamp(newLamp(t, "a", 2, 2, 2.5, 1))
	p, err := zone.NewPlane(zone.PlaneConfig{ID: "floor"})
	require.NoError(t, err)
	r.AddZone(p)

	assert.Equal(t, []string{"a", "b"}, r.LampIDs())
	assert.Equal(t, []string{"floor"}, r.ZoneIDs())

	l, ok := r.Lamp("a")
	require.True(t, ok)
	assert.Equal(t, 2.0, l.Position().X)
	z, ok := r.Zone("floor")
	require.True(t, ok)
	assert.Same(t, p, z)

	_, ok = r.Lamp("missing")
	assert.False(t, ok)

	assert.True(t, r.RemoveLamp("a"))
	assert.False(t, r.RemoveLamp("a"))
	assert.True(t, r.RemoveZone("floor"))
	assert.False(t, r.RemoveZone("floor"))
	assert.Equal(t, []string{"b"}, r.LampIDs())
	assert.Empty(t, r.ZoneIDs())
}

func TestOutOfBoundsWarns_SurvivesWarnLevel(t *testing.T) {
	logf, warnf := monitoring.Logf, monitoring.Warnf
	t.Cleanup(func() {
		monitoring.Logf = logf
		monitoring.Warnf = warnf
	})

	var buf bytes.Buffer
	monitoring.Init("warn", &buf, "")
	r, err := New([3]float64{1, 1, 1}, units.Meters)
	require.NoError(t, err)
	r.AddLamp(newLamp(t, "far", 5, 5, 5, 1))
	monitoring.Sync()

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "lamp far")
}

func TestOutOfBoundsWarns(t *testing.T) {
	logs := captureLogs(t)
	r, err := New([3]float64{6, 4, 2.7}, units.Meters)
	require.NoError(t, err)

	r.AddLamp(newLamp(t, "inside", 3, 2, 2.7, 1))
	assert.Empty(t, *logs)

	r.AddLamp(newLamp(t, "outside", 3, 2, 3.5, 1))
	require.Len(t, *logs, 1)
	assert.Contains(t, (*logs)[0], "lamp outside")

	big, err := zone.NewVolume(zone.VolumeConfig{ID: "big", X2: ptr(10.0)})
	require.NoError(t, err)
	r.AddZone(big)
	require.Len(t, *logs, 2)
	assert.Contains(t, (*logs)[1], "zone big")

	_, ok := r.Zone("big")
	assert.True(t, ok, "out-of-bounds zones are kept")

	require.NoError(t, r.SetDimensions([3]float64{12, 4, 4}))
	assert.Len(t, *logs, 2, "everything fits after resizing")
}

func TestSources_OnlyEnabled(t *testing.T) {
	r, err := New([3]float64{6, 4, 2.7}, units.Meters)
	require.NoError(t, err)
	on := newLamp(t, "on", 1, 1, 2.5, 1)
	off := newLamp(t, "off", 2, 2, 2.5, 1)
	off.SetEnabled(false)
	r.AddLamp(on)
	r.AddLamp(off)

	sources := r.Sources()
	assert.Len(t, sources, 1)
	assert.Contains(t, sources, "on")
}

func TestOrientAndTiltLamp(t *testing.T) {
	r, err := New([3]float64{6, 4, 3}, units.Meters)
	require.NoError(t, err)
	r.AddLamp(newLamp(t, "l", 3, 2, 3, 1))

	require.NoError(t, r.TiltLamp("l", -90))
	require.NoError(t, r.OrientLamp("l", 0))

	l, _ := r.Lamp("l")
	aim := l.AimPoint()
	assert.InDelta(t, 6, aim.X, 1e-9, "aim point lands on the +x wall")
	assert.InDelta(t, 2, aim.Y, 1e-9)
	assert.InDelta(t, 3, aim.Z, 1e-9)

	assert.ErrorIs(t, r.OrientLamp("missing", 10), ErrNotFound)
	assert.ErrorIs(t, r.TiltLamp("missing", 10), ErrNotFound)
}

func TestCalculate_AllZones(t *testing.T) {
	r, err := New([3]float64{2, 2, 2}, units.Meters)
	require.NoError(t, err)
	r.AddLamp(newLamp(t, "a", 0.5, 0.5, 2, 10))
	r.AddLamp(newLamp(t, "b", 1.5, 1.5, 2, 10))

	floor, err := zone.NewPlane(zone.PlaneConfig{ID: "floor", X2: ptr(2.0), Y2: ptr(2.0), Height: ptr(0.0), XSpacing: ptr(1.0), YSpacing: ptr(1.0)})
	require.NoError(t, err)
	air, err := zone.NewVolume(zone.VolumeConfig{ID: "air", X2: ptr(2.0), Y2: ptr(2.0), Z2: ptr(2.0), XSpacing: ptr(1.0), YSpacing: ptr(1.0), ZSpacing: ptr(1.0), Dose: ptr(true)})
	require.NoError(t, err)
	r.AddZone(floor)
	r.AddZone(air)

	require.NoError(t, r.Calculate())
	require.NotNil(t, floor.Values())
	require.NotNil(t, air.Values())

	// floor sample under lamp a: a at distance 2, b at distance sqrt(6)
	v, ok := floor.Values().At(0, 0)
	require.True(t, ok)
	assert.InDelta(t, (10.0/4+10.0/6)*0.1, v, 1e-12)

	assert.Equal(t, units.MillijoulesPerCm2, air.Values().Units())
	assert.Equal(t, []int{2, 2, 2}, air.Values().Shape())

	f, err := r.CalculateZone("floor")
	require.NoError(t, err)
	assert.Equal(t, floor.Values(), f)

	_, err = r.CalculateZone("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalculate_PropagatesErrors(t *testing.T) {
	r, err := New([3]float64{2, 2, 2}, units.Meters)
	require.NoError(t, err)
	bad, err := lamp.New(lamp.Config{ID: "bad", Z: ptr(2.0), IntensityUnits: ptr("W/sr")}, photometry.Isotropic{Value: 1})
	require.NoError(t, err)
	r.AddLamp(bad)

	p, err := zone.NewPlane(zone.PlaneConfig{ID: "floor", X2: ptr(2.0), Y2: ptr(2.0), XSpacing: ptr(1.0), YSpacing: ptr(1.0)})
	require.NoError(t, err)
	r.AddZone(p)

	assert.ErrorIs(t, r.Calculate(), units.ErrUnknownUnit)
}

func TestCalculate_NoLampsWarns(t *testing.T) {
	logs := captureLogs(t)
	r, err := New([3]float64{2, 2, 2}, units.Meters)
	require.NoError(t, err)
	p, err := zone.NewPlane(zone.PlaneConfig{ID: "floor", X2: ptr(2.0), Y2: ptr(2.0), Height: ptr(1.0), XSpacing: ptr(1.0), YSpacing: ptr(1.0)})
	require.NoError(t, err)
	r.AddZone(p)

	require.NoError(t, r.Calculate())
	assert.Equal(t, []float64{0, 0, 0, 0}, p.Values().Values())
	require.Len(t, *logs, 1)
	assert.Contains(t, (*logs)[0], "no enabled lamps")
}
