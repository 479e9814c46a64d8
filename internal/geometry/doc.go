// Package geometry holds the coordinate conventions shared by lamps and
// sampling zones.
//
// Room frame: X and Y span the floor, Z is up. Lamp frame: the photometric
// axis of an unaimed lamp points straight down (−Z), so the zenith angle
// returned by ToPolar is measured from −Z and azimuth is measured from +Y
// towards +X. Angles are always degrees at package boundaries.
package geometry
