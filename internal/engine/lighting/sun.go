// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/chunkscape/pkg/math"
)

// Sun is a directional light.
type Sun struct {
	Longitude float32 // Degrees around the Y axis
	Latitude  float32 // Degrees above the horizon
	Intensity math.Vec3
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Longitude, s.Latitude)
}

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	sinLon, cosLon := math32.Sincos(math.Radians(longitude))
	sinLat, cosLat := math32.Sincos(math.Radians(latitude))

	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}
