package lamp

import (
	"math"

	"github.com/banshee-data/guv.calcs/internal/geometry"
)

// Move places the lamp at p. The aim point moves with it so the lamp keeps
// pointing in the same direction.
func (l *Lamp) Move(p geometry.Vec3) {
	diff := p.Sub(l.position)
	l.aimPoint = l.aimPoint.Add(diff)
	l.position = p
}

// Rotate sets the spin about the lamp's own axis.
func (l *Lamp) Rotate(angle float64) {
	l.angle = angle
}

// Aim points the lamp at target and derives heading and bank from it.
// Aiming straight down gives heading 0 and bank 0.
func (l *Lamp) Aim(target geometry.Vec3) {
	l.aimPoint = target
	d := target.Sub(l.position)
	l.heading = geometry.Degrees(math.Atan2(d.Y, d.X))
	l.bank = geometry.Degrees(math.Atan2(math.Hypot(d.X, d.Y), d.Z) - math.Pi)
}

// SetOrientation sets the heading and moves the aim point to unit distance
// along the new direction.
func (l *Lamp) SetOrientation(heading float64) {
	l.heading = heading
	l.recalculateAimPoint(nil)
}

// SetTilt sets the bank and moves the aim point to unit distance along the
// new direction.
func (l *Lamp) SetTilt(bank float64) {
	l.bank = bank
	l.recalculateAimPoint(nil)
}

// SetOrientationWithin is SetOrientation with the aim point pushed out to
// the first wall of a room spanning the origin to dims.
func (l *Lamp) SetOrientationWithin(heading float64, dims geometry.Vec3) {
	l.heading = heading
	l.recalculateAimPoint(&dims)
}

// SetTiltWithin is SetTilt with the aim point pushed out to the first wall
// of a room spanning the origin to dims.
func (l *Lamp) SetTiltWithin(bank float64, dims geometry.Vec3) {
	l.bank = bank
	l.recalculateAimPoint(&dims)
}

// Direction returns the unit vector along the photometric axis.
func (l *Lamp) Direction() geometry.Vec3 {
	headingRad := geometry.Radians(l.heading)
	bankRad := geometry.Radians(l.bank - 180)
	return geometry.Vec3{
		X: math.Sin(bankRad) * math.Cos(headingRad),
		Y: math.Sin(bankRad) * math.Sin(headingRad),
		Z: math.Cos(bankRad),
	}
}

func (l *Lamp) recalculateAimPoint(dims *geometry.Vec3) {
	dir := l.Direction()
	distance := 1.0
	if dims != nil {
		distance = wallDistance(l.position, dir, *dims)
	}
	l.aimPoint = l.position.Add(dir.Scale(distance))
}

// wallDistance returns how far along dir a ray from pos travels before
// leaving the box [0, dims].
func wallDistance(pos, dir, dims geometry.Vec3) float64 {
	best := math.Inf(1)
	axis := func(p, d, limit float64) {
		switch {
		case d > 0:
			best = math.Min(best, (limit-p)/d)
		case d < 0:
			best = math.Min(best, p/-d)
		}
	}
	axis(pos.X, dir.X, dims.X)
	axis(pos.Y, dir.Y, dims.Y)
	axis(pos.Z, dir.Z, dims.Z)
	if math.IsInf(best, 1) {
		return 1
	}
	return best
}

// Transform maps lamp-frame points into room coordinates: spin by Angle,
// then tilt and turn by Bank and Heading, divide by scale, and translate to
// the lamp position. A non-positive scale is treated as 1.
func (l *Lamp) Transform(p geometry.Points, scale float64) geometry.Points {
	if scale <= 0 {
		scale = 1
	}
	out := geometry.Attitude(p, 0, 0, l.angle)
	out = geometry.Attitude(out, 0, l.bank, l.heading)
	for i := range out.X {
		out.X[i] /= scale
		out.Y[i] /= scale
		out.Z[i] /= scale
	}
	return out.Translate(l.position)
}
