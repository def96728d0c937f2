package geodesy

import (
	"fmt"
	"math"

	"github.com/paulmach/orb/geo"
	"github.com/tacmap/coordconv"
)

// Destination returns the point reached by travelling distance meters along
// the geodesic leaving from at the given initial bearing.
func Destination(from coordconv.Geodetic, bearing, distance float64) (coordconv.Geodetic, error) {
	return WGS84().Destination(from, bearing, distance)
}

// Destination solves the direct geodesic problem with Vincenty's formulae.
func (c *Calculator) Destination(from coordconv.Geodetic, bearing, distance float64) (coordconv.Geodetic, error) {
	if err := from.Validate(); err != nil {
		return coordconv.Geodetic{}, err
	}
	if math.IsNaN(bearing) || math.IsInf(bearing, 0) {
		return coordconv.Geodetic{}, fmt.Errorf("%w: bearing %v", coordconv.ErrInvalidCoordinateRange, bearing)
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return coordconv.Geodetic{}, fmt.Errorf("%w: distance %v", coordconv.ErrInvalidCoordinateRange, distance)
	}
	if distance == 0 {
		return from, nil
	}

	const rad = math.Pi / 180
	a, b, f := c.a, c.b, c.f

	sinAlpha1, cosAlpha1 := math.Sincos(bearing * rad)
	tanU1 := (1 - f) * math.Tan(from.Latitude*rad)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cos2Alpha := 1 - sinAlpha*sinAlpha
	uSq := cos2Alpha * (a*a - b*b) / (b * b)
	A, B := vincentyAB(uSq)

	sigma := distance / (b * A)
	var sinSigma, cosSigma, cos2SigmaM float64
	for i := 0; i < vincentyMaxIterations; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = distance/(b*A) + deltaSigma
		if math.Abs(sigma-prev) <= vincentyTolerance {
			break
		}
	}
	cos2SigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma, cosSigma = math.Sincos(sigma)

	x := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-f)*math.Sqrt(sinAlpha*sinAlpha+x*x))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
	L := lambda - (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	lon := normalizeRadians(from.Longitude*rad + L)

	return coordconv.Geodetic{Latitude: lat / rad, Longitude: lon / rad}, nil
}

// RangeRing returns a closed ring of points at radius meters around center,
// starting due north and running clockwise. The last point repeats the
// first.
func RangeRing(center coordconv.Geodetic, radius float64, segments int) ([]coordconv.Geodetic, error) {
	return WGS84().RangeRing(center, radius, segments)
}

// RangeRing returns a closed ring of points at radius meters around center.
func (c *Calculator) RangeRing(center coordconv.Geodetic, radius float64, segments int) ([]coordconv.Geodetic, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: a range ring needs at least 3 segments, got %d", ErrDegeneratePolygon, segments)
	}
	ring := make([]coordconv.Geodetic, 0, segments+1)
	for i := 0; i < segments; i++ {
		p, err := c.Destination(center, float64(i)*360/float64(segments), radius)
		if err != nil {
			return nil, err
		}
		ring = append(ring, p)
	}
	return append(ring, ring[0]), nil
}

// Midpoint returns the point halfway along the great circle between a and b.
func Midpoint(a, b coordconv.Geodetic) coordconv.Geodetic {
	m := coordconv.GeodeticFromPoint(geo.Midpoint(a.Point(), b.Point()))
	m.Longitude = math.Remainder(m.Longitude, 360)
	return m
}
