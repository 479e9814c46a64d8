package zone

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidZone is wrapped by every validation failure in this package.
var ErrInvalidZone = errors.New("invalid zone")

// MaxSamples caps the number of grid points in one zone, and on any single
// axis, so a tiny spacing fails validation instead of exhausting memory.
const MaxSamples = 10_000_000

// ValidationError names the zone field that failed validation. It unwraps
// to ErrInvalidZone.
type ValidationError struct {
	Zone   string
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("zone %q: %s = %g: %s", e.Zone, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidZone }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite(zoneID, field string, v float64) error {
	if !finite(v) {
		return &ValidationError{Zone: zoneID, Field: field, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkSpacing(zoneID, field string, v float64) error {
	if !finite(v) || v <= 0 {
		return &ValidationError{Zone: zoneID, Field: field, Value: v, Reason: "must be a positive number"}
	}
	return nil
}

func checkRange(zoneID, axis string, lo, hi float64) error {
	if err := checkFinite(zoneID, axis+"1", lo); err != nil {
		return err
	}
	if err := checkFinite(zoneID, axis+"2", hi); err != nil {
		return err
	}
	if hi < lo {
		return &ValidationError{Zone: zoneID, Field: axis + "2", Value: hi, Reason: fmt.Sprintf("must not be below %s1 (%g)", axis, lo)}
	}
	return nil
}

func checkHours(zoneID string, hours float64) error {
	if !finite(hours) || hours <= 0 {
		return &ValidationError{Zone: zoneID, Field: "hours", Value: hours, Reason: "must be a positive number"}
	}
	return nil
}

// axisCount is the truncated point count of axisPoints, kept in float64 so
// oversized axes cannot overflow int before they are rejected.
func axisCount(r Range, s float64) float64 {
	return math.Floor((r.Max - r.Min) / s)
}

// checkSamples rejects grids whose per-axis or total point count exceeds
// MaxSamples. spacingFields names the spacing of each axis for the error.
func checkSamples(zoneID string, counts []float64, spacingFields []string, spacings []float64) error {
	total := 1.0
	for i, n := range counts {
		if n > MaxSamples {
			return &ValidationError{Zone: zoneID, Field: spacingFields[i], Value: spacings[i],
				Reason: fmt.Sprintf("gives %g points on one axis, more than %d", n, MaxSamples)}
		}
		total *= n
	}
	if total > MaxSamples {
		return &ValidationError{Zone: zoneID, Field: "samples", Value: total,
			Reason: fmt.Sprintf("grid exceeds %d points", MaxSamples)}
	}
	return nil
}
