package geodesy

import (
	"math"

	"github.com/paulmach/orb/geo"
	"github.com/tacmap/coordconv"
)

// Bearing returns the initial great circle bearing from one point to another
// in degrees clockwise from true north, in [0, 360).
func Bearing(from, to coordconv.Geodetic) float64 {
	return Normalize(geo.Bearing(from.Point(), to.Point()))
}

// BackBearing returns the reciprocal of the initial bearing.
func BackBearing(from, to coordconv.Geodetic) float64 {
	return Normalize(Bearing(from, to) + 180)
}

// FinalBearing returns the bearing of travel on arrival at to.
func FinalBearing(from, to coordconv.Geodetic) float64 {
	return Normalize(Bearing(to, from) + 180)
}

// Normalize wraps an angle in degrees into [0, 360).
func Normalize(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
