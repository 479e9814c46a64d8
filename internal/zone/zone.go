// Package zone defines the regions of a room where irradiance is sampled.
//
// A zone is either a Plane at a fixed height or a Volume. Both hold an
// immutable Grid that every mutator replaces before returning, so the grid
// always matches the current bounds, spacing and offset. Changing the grid
// drops any previously computed field.
package zone

import (
	"fmt"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/irradiance"
	"github.com/banshee-data/guv.calcs/internal/monitoring"
	"github.com/banshee-data/guv.calcs/internal/units"
)

// Kind identifies the zone shape.
type Kind string

const (
	KindPlane  Kind = "plane"
	KindVolume Kind = "volume"
)

// Default zone settings applied to omitted configuration fields.
const (
	DefaultSpacing = 0.1
	DefaultHeight  = 1.9
	DefaultHours   = 8.0
)

var (
	defaultX = Range{Min: 0, Max: 6}
	defaultY = Range{Min: 0, Max: 4}
	defaultZ = Range{Min: 0, Max: 2.7}
)

// Zone is the behaviour shared by planes and volumes. Dimension and spacing
// setters differ in arity and live on the concrete types.
type Zone interface {
	ID() string
	Name() string
	Kind() Kind
	Visible() bool
	SetVisible(visible bool)

	Grid() *Grid
	Bounds() (lo, hi geometry.Vec3)
	Offset() bool
	SetOffset(offset bool)

	Options() irradiance.Options
	SetOptions(opts irradiance.Options)

	Dose() bool
	Hours() float64
	Units() string
	SetValueType(dose bool)
	SetDoseTime(hours float64) error

	Values() *irradiance.Field
	Calculate(sources map[string]irradiance.Source) (*irradiance.Field, error)
}

// base carries the state common to both zone shapes. The embedding type
// owns the grid and rebuilds it on geometric changes.
type base struct {
	id      string
	name    string
	visible bool
	offset  bool
	opts    irradiance.Options
	dose    bool
	hours   float64

	grid  *Grid
	field *irradiance.Field
}

func (b *base) ID() string                  { return b.id }
func (b *base) Name() string                { return b.name }
func (b *base) Visible() bool               { return b.visible }
func (b *base) SetVisible(visible bool)     { b.visible = visible }
func (b *base) Grid() *Grid                 { return b.grid }
func (b *base) Offset() bool                { return b.offset }
func (b *base) Options() irradiance.Options { return b.opts }
func (b *base) Dose() bool                  { return b.dose }
func (b *base) Hours() float64              { return b.hours }

// Units returns the unit tag of the values Calculate produces.
func (b *base) Units() string { return units.FieldUnits(b.dose) }

// Values returns the last computed field, or nil if there is none.
func (b *base) Values() *irradiance.Field { return b.field }

// SetOptions replaces the filtering and projection flags. Any computed field
// is dropped since it no longer reflects the flags.
func (b *base) SetOptions(opts irradiance.Options) {
	b.opts = opts
	b.field = nil
	b.warnOptions()
}

func (b *base) warnOptions() {
	if err := b.opts.Validate(); err != nil {
		monitoring.Warnf("zone %s: %v, values will carry both factors", b.id, err)
	}
}

// SetValueType switches between rate and dose. An existing field is
// rescaled in place of a recomputation.
func (b *base) SetValueType(dose bool) {
	if dose == b.dose {
		return
	}
	b.dose = dose
	if b.field == nil {
		return
	}
	if dose {
		b.field = b.field.Scale(units.DoseFactor(b.hours), units.MillijoulesPerCm2)
	} else {
		b.field = b.field.Scale(1/units.DoseFactor(b.hours), units.MicrowattsPerCm2)
	}
}

// SetDoseTime sets the exposure duration in hours. A computed dose field is
// rescaled to the new duration.
func (b *base) SetDoseTime(hours float64) error {
	if err := checkHours(b.id, hours); err != nil {
		return err
	}
	if b.dose && b.field != nil {
		b.field = b.field.Scale(hours/b.hours, units.MillijoulesPerCm2)
	}
	b.hours = hours
	return nil
}

// setGrid installs a freshly built grid and drops the stale field.
func (b *base) setGrid(g *Grid) {
	b.grid = g
	b.field = nil
}

// Calculate sums the contribution of every source over the grid, converts
// to dose when in dose mode, and stores the result.
func (b *base) Calculate(sources map[string]irradiance.Source) (*irradiance.Field, error) {
	total, err := irradiance.Accumulate(b.grid.coords, sources, b.opts)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", b.id, err)
	}
	field, err := irradiance.NewField(total, b.grid.Shape(), units.MicrowattsPerCm2)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", b.id, err)
	}
	if b.dose {
		field = field.Scale(units.DoseFactor(b.hours), units.MillijoulesPerCm2)
	}
	b.field = field
	return field, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
