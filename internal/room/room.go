// Package room ties lamps and sampling zones to a rectangular room whose
// corner sits at the origin.
package room

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/irradiance"
	"github.com/banshee-data/guv.calcs/internal/lamp"
	"github.com/banshee-data/guv.calcs/internal/monitoring"
	"github.com/banshee-data/guv.calcs/internal/units"
	"github.com/banshee-data/guv.calcs/internal/zone"
)

var (
	// ErrInvalidRoom is returned for unusable dimensions or units.
	ErrInvalidRoom = errors.New("invalid room")
	// ErrNotFound is returned when an ID names no lamp or zone.
	ErrNotFound = errors.New("not found")
)

// Room owns lamps and zones keyed by ID. It is not safe for concurrent
// mutation.
type Room struct {
	dims  geometry.Vec3
	units string
	lamps map[string]*lamp.Lamp
	zones map[string]zone.Zone
}

// New creates an empty room spanning the origin to dims.
func New(dims [3]float64, lengthUnits string) (*Room, error) {
	if !units.IsValidLength(lengthUnits) {
		return nil, fmt.Errorf("%w: unknown length unit %q (valid: %s)", ErrInvalidRoom, lengthUnits, units.GetValidLengthUnitsString())
	}
	r := &Room{
		units: lengthUnits,
		lamps: make(map[string]*lamp.Lamp),
		zones: make(map[string]zone.Zone),
	}
	if err := r.SetDimensions(dims); err != nil {
		return nil, err
	}
	return r, nil
}

// SetDimensions resizes the room and re-checks every lamp and zone.
func (r *Room) SetDimensions(dims [3]float64) error {
	for i, d := range dims {
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return fmt.Errorf("%w: dimension %d = %g must be a positive number", ErrInvalidRoom, i, d)
		}
	}
	r.dims = geometry.Vec3{X: dims[0], Y: dims[1], Z: dims[2]}
	for _, id := range r.LampIDs() {
		r.checkLamp(r.lamps[id])
	}
	for _, id := range r.ZoneIDs() {
		r.checkZone(r.zones[id])
	}
	return nil
}

// Dimensions returns the far corner of the room.
func (r *Room) Dimensions() geometry.Vec3 { return r.dims }

// Units returns the length unit tag.
func (r *Room) Units() string { return r.units }

// Volume returns the room volume in cubic length units.
func (r *Room) Volume() float64 { return r.dims.X * r.dims.Y * r.dims.Z }

func (r *Room) contains(p geometry.Vec3) bool {
	return p.X >= 0 && p.X <= r.dims.X &&
		p.Y >= 0 && p.Y <= r.dims.Y &&
		p.Z >= 0 && p.Z <= r.dims.Z
}

func (r *Room) checkLamp(l *lamp.Lamp) {
	if !r.contains(l.Position()) {
		monitoring.Warnf("lamp %s at %+v is outside the room %+v", l.ID(), l.Position(), r.dims)
	}
}

func (r *Room) checkZone(z zone.Zone) {
	lo, hi := z.Bounds()
	if !r.contains(lo) || !r.contains(hi) {
		monitoring.Warnf("zone %s spanning %+v to %+v exceeds the room %+v", z.ID(), lo, hi, r.dims)
	}
}

// AddLamp adds l, replacing any lamp with the same ID. A lamp outside the
// room is kept and logged.
func (r *Room) AddLamp(l *lamp.Lamp) {
	r.checkLamp(l)
	r.lamps[l.ID()] = l
}

// AddZone adds z, replacing any zone with the same ID. A zone extending past
// the room is kept and logged.
func (r *Room) AddZone(z zone.Zone) {
	r.checkZone(z)
	r.zones[z.ID()] = z
}

// RemoveLamp deletes the lamp with the given ID and reports whether it existed.
func (r *Room) RemoveLamp(id string) bool {
	_, ok := r.lamps[id]
	delete(r.lamps, id)
	return ok
}

// RemoveZone deletes the zone with the given ID and reports whether it existed.
func (r *Room) RemoveZone(id string) bool {
	_, ok := r.zones[id]
	delete(r.zones, id)
	return ok
}

// Lamp looks up a lamp by ID.
func (r *Room) Lamp(id string) (*lamp.Lamp, bool) {
	l, ok := r.lamps[id]
	return l, ok
}

// Zone looks up a zone by ID.
func (r *Room) Zone(id string) (zone.Zone, bool) {
	z, ok := r.zones[id]
	return z, ok
}

// LampIDs returns the lamp IDs in sorted order.
func (r *Room) LampIDs() []string { return sortedKeys(r.lamps) }

// ZoneIDs returns the zone IDs in sorted order.
func (r *Room) ZoneIDs() []string { return sortedKeys(r.zones) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OrientLamp turns a lamp to heading, keeping its aim point on the walls.
func (r *Room) OrientLamp(id string, heading float64) error {
	l, ok := r.lamps[id]
	if !ok {
		return fmt.Errorf("lamp %q: %w", id, ErrNotFound)
	}
	l.SetOrientationWithin(heading, r.dims)
	return nil
}

// TiltLamp tilts a lamp to bank, keeping its aim point on the walls.
func (r *Room) TiltLamp(id string, bank float64) error {
	l, ok := r.lamps[id]
	if !ok {
		return fmt.Errorf("lamp %q: %w", id, ErrNotFound)
	}
	l.SetTiltWithin(bank, r.dims)
	return nil
}

// Sources returns the enabled lamps keyed by ID.
func (r *Room) Sources() map[string]irradiance.Source {
	out := make(map[string]irradiance.Source, len(r.lamps))
	for id, l := range r.lamps {
		if l.Enabled() {
			out[id] = l
		}
	}
	return out
}

// CalculateZone recomputes a single zone against the enabled lamps.
func (r *Room) CalculateZone(id string) (*irradiance.Field, error) {
	z, ok := r.zones[id]
	if !ok {
		return nil, fmt.Errorf("zone %q: %w", id, ErrNotFound)
	}
	return z.Calculate(r.Sources())
}

// Calculate recomputes every zone. Zones are independent and run
// concurrently; the first error is returned.
func (r *Room) Calculate() error {
	sources := r.Sources()
	if len(sources) == 0 {
		monitoring.Warnf("no enabled lamps, all zones will read zero")
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, z := range r.zones {
		g.Go(func() error {
			_, err := z.Calculate(sources)
			return err
		})
	}
	return g.Wait()
}
