// Package geodesy computes distances, bearings and areas between WGS84
// coordinates.
//
// Distances are ellipsoidal (Vincenty), falling back to a great circle on the
// mean sphere for the nearly antipodal pairs where Vincenty's iteration does
// not converge. Bearings use the spherical initial bearing formula and areas
// the spherical excess on the authalic sphere.
package geodesy

import (
	"math"

	"github.com/paulmach/orb/geo"
	"github.com/tacmap/coordconv"
)

// MeanEarthRadius is the IUGG mean radius of the WGS84 ellipsoid in meters.
const MeanEarthRadius = 6371008.8

const (
	vincentyTolerance     = 1e-12
	vincentyMaxIterations = 200
)

// Calculator solves geodesic problems on one ellipsoid.
type Calculator struct {
	a, b, f float64
	// authalic radius squared
	c2 float64
}

// NewCalculator returns a Calculator for the given ellipsoid.
func NewCalculator(e coordconv.Ellipsoid) (*Calculator, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{a: e.SemiMajorAxis, b: e.SemiMinorAxis(), f: e.Flattening}

	ecc := e.Eccentricity()
	c.c2 = (c.a*c.a + c.b*c.b*math.Atanh(ecc)/ecc) / 2
	return c, nil
}

// WGS84 returns a Calculator for the WGS84 ellipsoid.
func WGS84() *Calculator {
	c, err := NewCalculator(coordconv.WGS84())
	if err != nil {
		panic(err)
	}
	return c
}

// AuthalicRadius returns the radius of the sphere with the ellipsoid's
// surface area.
func (c *Calculator) AuthalicRadius() float64 {
	return math.Sqrt(c.c2)
}

// Distance returns the geodesic distance between two points in meters.
func Distance(a, b coordconv.Geodetic) float64 {
	return WGS84().Distance(a, b)
}

// Distance returns the geodesic distance between two points in meters.
func (c *Calculator) Distance(p1, p2 coordconv.Geodetic) float64 {
	s, ok := c.inverse(p1, p2)
	if !ok {
		return greatCircle(p1, p2)
	}
	return s
}

// inverse solves the inverse geodesic problem with Vincenty's formulae. ok
// is false when the iteration fails to converge.
func (c *Calculator) inverse(p1, p2 coordconv.Geodetic) (s float64, ok bool) {
	const rad = math.Pi / 180
	a, b, f := c.a, c.b, c.f

	L := normalizeRadians((p2.Longitude - p1.Longitude) * rad)
	tanU1 := (1 - f) * math.Tan(p1.Latitude*rad)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - f) * math.Tan(p2.Latitude*rad)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	lambda := L
	for i := 0; ; i++ {
		if i == vincentyMaxIterations {
			return 0, false
		}
		sinLambda, cosLambda := math.Sincos(lambda)
		t := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(cosU2*sinLambda*cosU2*sinLambda + t*t)
		if sinSigma == 0 {
			// coincident points
			return 0, true
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = 0
		if cos2Alpha != 0 {
			// zero on an equatorial line
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		C := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		prev := lambda
		lambda = L + (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lambda) > math.Pi {
			return 0, false
		}
		if math.Abs(lambda-prev) <= vincentyTolerance {
			break
		}
	}

	uSq := cos2Alpha * (a*a - b*b) / (b * b)
	A, B := vincentyAB(uSq)
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	s = b * A * (sigma - deltaSigma)
	if math.IsNaN(s) {
		return 0, false
	}
	return s, true
}

func vincentyAB(uSq float64) (A, B float64) {
	A = 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B = uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	return A, B
}

// greatCircle is the distance along the mean sphere.
func greatCircle(p1, p2 coordconv.Geodetic) float64 {
	return p1.LatLng().Distance(p2.LatLng()).Radians() * MeanEarthRadius
}

// HaversineDistance returns the great circle distance on a sphere with the
// WGS84 semi-major axis as radius. It is cheaper than Distance and good to
// about half a percent.
func HaversineDistance(a, b coordconv.Geodetic) float64 {
	return geo.DistanceHaversine(a.Point(), b.Point())
}

// PathDistance returns the length of a path through the points in order. It
// is zero for fewer than two points.
func PathDistance(points []coordconv.Geodetic) float64 {
	return WGS84().PathDistance(points)
}

// PathDistance returns the length of a path through the points in order.
func (c *Calculator) PathDistance(points []coordconv.Geodetic) float64 {
	total := 0.0
	for _, d := range c.SegmentDistances(points) {
		total += d
	}
	return total
}

// SegmentDistances returns the length of each edge of the path, one shorter
// than points. It is empty for fewer than two points.
func SegmentDistances(points []coordconv.Geodetic) []float64 {
	return WGS84().SegmentDistances(points)
}

// SegmentDistances returns the length of each edge of the path.
func (c *Calculator) SegmentDistances(points []coordconv.Geodetic) []float64 {
	if len(points) < 2 {
		return []float64{}
	}
	segments := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments = append(segments, c.Distance(points[i-1], points[i]))
	}
	return segments
}

// normalizeRadians wraps an angle into [-pi, pi].
func normalizeRadians(x float64) float64 {
	return math.Remainder(x, 2*math.Pi)
}
