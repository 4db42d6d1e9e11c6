// Package lighting provides the directional light rig used for shading.
package lighting

import "math"

// Rig describes the scene's key light: a directional light positioned by
// azimuth and elevation angles, plus ambient and diffuse colors.
type Rig struct {
	AzimuthDeg   float32    // Rotation around the Y axis (0-360)
	ElevationDeg float32    // Elevation above the horizon (0-90)
	Ambient      [3]float32 // RGB, 0-1 range
	Diffuse      [3]float32 // RGB, 0-1 range
}

// DefaultRig returns a rig with a high three-quarter key light and enough
// ambient fill that unlit faces stay readable.
func DefaultRig() Rig {
	return Rig{
		AzimuthDeg:   135,
		ElevationDeg: 55,
		Ambient:      [3]float32{0.35, 0.35, 0.38},
		Diffuse:      [3]float32{0.85, 0.85, 0.82},
	}
}

// Direction returns the rig's normalized world-space direction pointing
// towards the light.
func (r Rig) Direction() [3]float32 {
	return Direction(r.AzimuthDeg, r.ElevationDeg)
}

// Direction converts azimuth/elevation angles in degrees to a light
// direction vector. Azimuth is rotation around the Y axis, elevation is
// measured up from the horizon. Returns a normalized vector pointing
// towards the light.
func Direction(azimuth, elevation float32) [3]float32 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	// Spherical to Cartesian conversion
	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return [3]float32{x, y, z}
}
