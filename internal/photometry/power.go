package photometry

import "math"

// DefaultPowerStep is the angular step, in degrees, used by TotalPower when
// the caller passes a non-positive step.
const DefaultPowerStep = 1.0

// TotalPower integrates intensity over the full sphere with the midpoint
// rule. The result is in the distribution's intensity units times steradians
// (mW/sr gives mW).
func TotalPower(d Distribution, step float64) float64 {
	if step <= 0 || math.IsNaN(step) {
		step = DefaultPowerStep
	}
	nTheta := int(math.Ceil(180 / step))
	nPhi := int(math.Ceil(360 / step))
	dTheta := 180.0 / float64(nTheta)
	dPhi := 360.0 / float64(nPhi)
	solid := (dTheta * math.Pi / 180) * (dPhi * math.Pi / 180)

	total := 0.0
	for i := 0; i < nTheta; i++ {
		theta := (float64(i) + 0.5) * dTheta
		sinTheta := math.Sin(theta * math.Pi / 180)
		for j := 0; j < nPhi; j++ {
			phi := (float64(j) + 0.5) * dPhi
			total += d.Intensity(theta, phi) * sinTheta * solid
		}
	}
	return total
}
