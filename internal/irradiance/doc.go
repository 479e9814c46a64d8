// Package irradiance accumulates the irradiance that a set of sources
// delivers to a list of sample coordinates.
//
// For every source the sample offsets are rotated back into the source's own
// frame (undoing heading, then bank, then spin, one axis at a time) before
// the intensity lookup. Field-of-view filtering and directional projection
// use the zenith angle measured before that undo. Per-source contributions
// are summed in sorted source-ID order, so the result does not depend on map
// iteration or goroutine scheduling.
package irradiance
