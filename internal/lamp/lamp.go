// Package lamp models a UV luminaire placed and oriented in a room.
//
// Orientation is held as three angles in degrees: Angle spins the lamp about
// its own photometric axis, Bank tilts that axis away from straight down,
// and Heading turns the tilt around the vertical. The forward transform
// applies Angle first, then Bank and Heading together.
package lamp

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/banshee-data/guv.calcs/internal/geometry"
	"github.com/banshee-data/guv.calcs/internal/photometry"
	"github.com/banshee-data/guv.calcs/internal/units"
)

// ErrInvalidLamp is returned when a lamp configuration cannot be used.
var ErrInvalidLamp = errors.New("invalid lamp")

// Config describes a lamp. Nil fields take their defaults: name = ID,
// enabled, positioned at the origin, no spin, aimed straight down, and
// intensity in mW/Sr. An empty ID is replaced with a random UUID.
type Config struct {
	ID             string   `json:"id" yaml:"id"`
	Name           *string  `json:"name,omitempty" yaml:"name,omitempty"`
	X              *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y              *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z              *float64 `json:"z,omitempty" yaml:"z,omitempty"`
	Angle          *float64 `json:"angle,omitempty" yaml:"angle,omitempty"`
	AimX           *float64 `json:"aimx,omitempty" yaml:"aimx,omitempty"`
	AimY           *float64 `json:"aimy,omitempty" yaml:"aimy,omitempty"`
	AimZ           *float64 `json:"aimz,omitempty" yaml:"aimz,omitempty"`
	IntensityUnits *string  `json:"intensity_units,omitempty" yaml:"intensity_units,omitempty"`
	Enabled        *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Lamp is a positioned, oriented source with an angular intensity
// distribution. It is not safe for concurrent mutation; concurrent reads
// during a calculation are fine.
type Lamp struct {
	id      string
	name    string
	enabled bool

	position geometry.Vec3
	aimPoint geometry.Vec3
	heading  float64
	bank     float64
	angle    float64

	intensityUnits string
	dist           photometry.Distribution
}

// New builds a lamp from cfg and an intensity distribution.
func New(cfg Config, dist photometry.Distribution) (*Lamp, error) {
	if dist == nil {
		return nil, fmt.Errorf("%w: lamp %q has no intensity distribution", ErrInvalidLamp, cfg.ID)
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	l := &Lamp{
		id:             id,
		name:           valueOr(cfg.Name, id),
		enabled:        valueOr(cfg.Enabled, true),
		angle:          valueOr(cfg.Angle, 0.0),
		intensityUnits: valueOr(cfg.IntensityUnits, units.MilliwattsPerSteradian),
		dist:           dist,
	}
	l.position = geometry.Vec3{
		X: valueOr(cfg.X, 0.0),
		Y: valueOr(cfg.Y, 0.0),
		Z: valueOr(cfg.Z, 0.0),
	}
	if !l.position.IsFinite() {
		return nil, fmt.Errorf("%w: lamp %q position %+v is not finite", ErrInvalidLamp, id, l.position)
	}
	if math.IsNaN(l.angle) || math.IsInf(l.angle, 0) {
		return nil, fmt.Errorf("%w: lamp %q angle is not finite", ErrInvalidLamp, id)
	}

	aim := geometry.Vec3{
		X: valueOr(cfg.AimX, l.position.X),
		Y: valueOr(cfg.AimY, l.position.Y),
		Z: valueOr(cfg.AimZ, l.position.Z-1),
	}
	if !aim.IsFinite() {
		return nil, fmt.Errorf("%w: lamp %q aim point %+v is not finite", ErrInvalidLamp, id, aim)
	}
	l.Aim(aim)
	return l, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// ID returns the lamp identifier.
func (l *Lamp) ID() string { return l.id }

// Name returns the display name.
func (l *Lamp) Name() string { return l.name }

// Enabled reports whether the lamp takes part in calculations.
func (l *Lamp) Enabled() bool { return l.enabled }

// SetEnabled switches the lamp on or off for calculations.
func (l *Lamp) SetEnabled(enabled bool) { l.enabled = enabled }

// Position returns the lamp position.
func (l *Lamp) Position() geometry.Vec3 { return l.position }

// AimPoint returns the point the lamp is aimed at.
func (l *Lamp) AimPoint() geometry.Vec3 { return l.aimPoint }

// Heading returns the heading in degrees.
func (l *Lamp) Heading() float64 { return l.heading }

// Bank returns the tilt in degrees.
func (l *Lamp) Bank() float64 { return l.bank }

// Angle returns the spin about the lamp's own axis in degrees.
func (l *Lamp) Angle() float64 { return l.angle }

// IntensityUnits returns the unit tag of the distribution values.
func (l *Lamp) IntensityUnits() string { return l.intensityUnits }

// Distribution returns the lamp's intensity distribution.
func (l *Lamp) Distribution() photometry.Distribution { return l.dist }

// Intensity returns the radiant intensity in the lamp frame.
func (l *Lamp) Intensity(theta, phi float64) float64 {
	return l.dist.Intensity(theta, phi)
}

// TotalPower integrates the distribution over the sphere.
func (l *Lamp) TotalPower() float64 {
	return photometry.TotalPower(l.dist, photometry.DefaultPowerStep)
}
