package geodesy

import (
	"errors"
	"fmt"
	"math"

	"github.com/tacmap/coordconv"
)

// ErrDegeneratePolygon reports a ring with fewer than three distinct
// vertices. Area functions return it together with a valid area of zero.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// CheckPolygon reports ErrDegeneratePolygon unless the ring has at least
// three distinct vertices.
func CheckPolygon(points []coordconv.Geodetic) error {
	distinct := make(map[coordconv.Geodetic]struct{}, len(points))
	for _, p := range points {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("%w: %d distinct vertices", ErrDegeneratePolygon, len(distinct))
	}
	return nil
}

// PolygonArea returns the area enclosed by a ring in square meters. The ring
// is closed automatically and may wind either way. A ring with fewer than
// three distinct vertices has area 0 and ErrDegeneratePolygon is returned
// alongside it.
func PolygonArea(points []coordconv.Geodetic) (float64, error) {
	return WGS84().PolygonArea(points)
}

// PolygonArea returns the area of the ring on the authalic sphere.
func (c *Calculator) PolygonArea(points []coordconv.Geodetic) (float64, error) {
	if err := CheckPolygon(points); err != nil {
		return 0, err
	}
	excess, winding := sphericalExcess(openRing(points))
	excess = math.Abs(excess)
	if math.Abs(winding) > math.Pi {
		// the ring encircles a pole; the edge sum measured the band between
		// it and the equator
		excess = 2*math.Pi - excess
	}
	return excess * c.c2, nil
}

// sphericalExcess sums, for each edge, the excess of the spherical
// quadrilateral between the edge and the equator, along with the total
// change in longitude around the ring. For a ring that does not encircle a
// pole the sum is the signed solid angle of the ring and winding is zero.
func sphericalExcess(ring []coordconv.Geodetic) (excess, winding float64) {
	const rad = math.Pi / 180
	for i := range ring {
		p1, p2 := ring[i], ring[(i+1)%len(ring)]
		dLon := normalizeRadians((p2.Longitude - p1.Longitude) * rad)
		t1 := math.Tan(p1.Latitude * rad / 2)
		t2 := math.Tan(p2.Latitude * rad / 2)
		excess += 2 * math.Atan2(math.Tan(dLon/2)*(t1+t2), 1+t1*t2)
		winding += dLon
	}
	return excess, winding
}

// PolygonPerimeter returns the length of the ring's boundary in meters,
// adding the closing edge when the last point differs from the first.
func PolygonPerimeter(points []coordconv.Geodetic) float64 {
	return WGS84().PolygonPerimeter(points)
}

// PolygonPerimeter returns the length of the ring's boundary in meters.
func (c *Calculator) PolygonPerimeter(points []coordconv.Geodetic) float64 {
	return c.PathDistance(closeRing(points))
}

func isClosed(points []coordconv.Geodetic) bool {
	return len(points) > 1 && points[0] == points[len(points)-1]
}

// openRing drops a repeated closing vertex.
func openRing(points []coordconv.Geodetic) []coordconv.Geodetic {
	if isClosed(points) {
		return points[:len(points)-1]
	}
	return points
}

// closeRing appends the first vertex when the ring is open.
func closeRing(points []coordconv.Geodetic) []coordconv.Geodetic {
	if len(points) < 2 || isClosed(points) {
		return points
	}
	ring := make([]coordconv.Geodetic, 0, len(points)+1)
	ring = append(ring, points...)
	return append(ring, points[0])
}
