// Package units provides shared constants, validation and conversion for
// radiometric and length units.
package units

import (
	"errors"
	"fmt"
)

// Source intensity units.
const (
	MilliwattsPerSteradian = "mW/Sr"
)

// Field value units.
const (
	MicrowattsPerCm2  = "uW/cm2" // irradiance rate
	MillijoulesPerCm2 = "mJ/cm2" // dose
)

// Length units for room geometry.
const (
	Meters = "meters"
	Feet   = "feet"
)

// JoulesPerWattHour relates an hourly rate to a dose:
// 1 µW/cm² sustained for one hour is 3.6 mJ/cm².
const JoulesPerWattHour = 3.6

// ErrUnknownUnit is returned when a unit tag is not recognised.
var ErrUnknownUnit = errors.New("unknown unit")

// ValidIntensityUnits contains all recognised source intensity units.
var ValidIntensityUnits = []string{MilliwattsPerSteradian}

// ValidLengthUnits contains all recognised room length units.
var ValidLengthUnits = []string{Meters, Feet}

// IsValidIntensity checks if the given tag is a recognised intensity unit.
func IsValidIntensity(unit string) bool {
	return contains(ValidIntensityUnits, unit)
}

// IsValidLength checks if the given tag is a recognised length unit.
func IsValidLength(unit string) bool {
	return contains(ValidLengthUnits, unit)
}

// GetValidLengthUnitsString returns a comma-separated string of valid length
// units for error messages.
func GetValidLengthUnitsString() string {
	return "meters, feet"
}

// IntensityToIrradiance returns the factor that converts a source intensity
// divided by distance² (metres) into µW/cm². Unrecognised tags are an error;
// there is no fallback unit.
func IntensityToIrradiance(unit string) (float64, error) {
	switch unit {
	case MilliwattsPerSteradian:
		// 1 mW/sr at 1 m = 1000 µW / 10000 cm²
		return 0.1, nil
	default:
		return 0, fmt.Errorf("%w: intensity units %q (valid: %s)", ErrUnknownUnit, unit, MilliwattsPerSteradian)
	}
}

// DoseFactor converts a rate in µW/cm² into a dose in mJ/cm² accumulated
// over the given number of hours.
func DoseFactor(hours float64) float64 {
	return JoulesPerWattHour * hours
}

// FieldUnits returns the unit tag for zone values in rate or dose mode.
func FieldUnits(dose bool) string {
	if dose {
		return MillijoulesPerCm2
	}
	return MicrowattsPerCm2
}

func contains(list []string, unit string) bool {
	for _, valid := range list {
		if unit == valid {
			return true
		}
	}
	return false
}
