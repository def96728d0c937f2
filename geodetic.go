package coordconv

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Geodetic is a WGS84 latitude/longitude pair in degrees.
type Geodetic struct {
	Latitude  float64
	Longitude float64
}

// NewGeodetic returns a validated geographic coordinate.
func NewGeodetic(latitude, longitude float64) (Geodetic, error) {
	g := Geodetic{Latitude: latitude, Longitude: longitude}
	if err := g.Validate(); err != nil {
		return Geodetic{}, err
	}
	return g, nil
}

// GeodeticFromLatLng converts an s2 latitude/longitude to degrees.
func GeodeticFromLatLng(ll s2.LatLng) Geodetic {
	return Geodetic{Latitude: ll.Lat.Degrees(), Longitude: ll.Lng.Degrees()}
}

// Validate reports ErrInvalidCoordinateRange unless -90 <= lat <= 90 and
// -180 <= lon <= 180.
func (g Geodetic) Validate() error {
	if math.IsNaN(g.Latitude) || g.Latitude < -90 || g.Latitude > 90 {
		return errorf(ErrInvalidCoordinateRange, "latitude %v", g.Latitude)
	}
	if math.IsNaN(g.Longitude) || g.Longitude < -180 || g.Longitude > 180 {
		return errorf(ErrInvalidCoordinateRange, "longitude %v", g.Longitude)
	}
	return nil
}

// LatLng returns the coordinate as an s2.LatLng in radians.
func (g Geodetic) LatLng() s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(g.Latitude) * s1.Degree,
		Lng: s1.Angle(g.Longitude) * s1.Degree,
	}
}

// GeodeticFromPoint converts an orb point, longitude first.
func GeodeticFromPoint(p orb.Point) Geodetic {
	return Geodetic{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Point returns the coordinate as an orb point, longitude first.
func (g Geodetic) Point() orb.Point {
	return orb.Point{g.Longitude, g.Latitude}
}

func (g Geodetic) String() string {
	return fmt.Sprintf("%.6f, %.6f", g.Latitude, g.Longitude)
}
