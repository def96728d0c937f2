package coordconv

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Ordnance Survey National Grid projection constants.
const (
	osgbOriginLatitude  = 49.0
	osgbCentralMeridian = -2.0
	osgbFalseEasting    = 400000.0
	osgbFalseNorthing   = -100000.0
	osgbScaleFactor     = 0.9996012717

	osgbMaxEasting  = 700000.0
	osgbMaxNorthing = 1300000.0
)

// osgbBounds is the WGS84 longitude/latitude box the grid is defined over.
func osgbBounds() orb.Bound {
	return orb.Bound{Min: orb.Point{-9.0, 49.75}, Max: orb.Point{2.5, 61.0}}
}

var osgbProjection = mustOSGBProjection()

func mustOSGBProjection() *TransverseMercator {
	const rad = math.Pi / 180
	t, err := NewTransverseMercator(Airy1830(), osgbCentralMeridian*rad, osgbOriginLatitude*rad,
		osgbFalseEasting, osgbFalseNorthing, osgbScaleFactor)
	if err != nil {
		panic(fmt.Sprintf("error constructing OSGB projection: %s", err))
	}
	return t
}

// OSGBCoord is a British National Grid position. Easting and Northing are
// full meters from the false origin; Precision controls the reference's
// digit count when formatted.
type OSGBCoord struct {
	Easting   float64
	Northing  float64
	Precision Precision
}

// ProjectOSGB36 projects a coordinate already on the OSGB36 datum.
func ProjectOSGB36(g Geodetic) (OSGBCoord, error) {
	mc, err := osgbProjection.Forward(g.LatLng())
	if err != nil {
		return OSGBCoord{}, err
	}
	c := OSGBCoord{Easting: mc.Easting, Northing: mc.Northing, Precision: Precision1m}
	if !c.inGrid() {
		return OSGBCoord{}, errorf(ErrOutOfGridCoverage, "%.0f, %.0f outside the national grid", mc.Easting, mc.Northing)
	}
	return c, nil
}

// OSGB36 returns the coordinate on the OSGB36 datum.
func (c OSGBCoord) OSGB36() (Geodetic, error) {
	if !c.inGrid() {
		return Geodetic{}, errorf(ErrOutOfGridCoverage, "%.0f, %.0f outside the national grid", c.Easting, c.Northing)
	}
	ll, err := osgbProjection.Inverse(MapCoords{Easting: c.Easting, Northing: c.Northing})
	if err != nil {
		return Geodetic{}, err
	}
	return GeodeticFromLatLng(ll), nil
}

// Geodetic implements GridCoordinate.
func (c OSGBCoord) Geodetic() (Geodetic, error) {
	g, err := c.OSGB36()
	if err != nil {
		return Geodetic{}, err
	}
	return OSGB36ToWGS84(g), nil
}

func (c OSGBCoord) inGrid() bool {
	return c.Easting >= 0 && c.Easting < osgbMaxEasting && c.Northing >= 0 && c.Northing < osgbMaxNorthing
}

// String formats a lettered grid reference such as "TG 51409 13177",
// truncating to the precision.
func (c OSGBCoord) String() string {
	p := c.Precision
	if !p.Valid() {
		p = Precision1m
	}
	e100k := int(math.Floor(c.Easting / squareSize))
	n100k := int(math.Floor(c.Northing / squareSize))
	if e100k < 0 || e100k > 6 || n100k < 0 || n100k > 12 {
		return fmt.Sprintf("%.0f, %.0f", c.Easting, c.Northing)
	}

	// first letter picks the 500 km square, second the 100 km square inside it
	l1 := (19 - n100k) - (19-n100k)%5 + (e100k+10)/5
	l2 := (19-n100k)*5%25 + e100k%5
	// 'I' is not used
	if l1 > 7 {
		l1++
	}
	if l2 > 7 {
		l2++
	}

	cell := p.GridSize()
	n := p.Digits()
	e := int(math.Floor(math.Mod(c.Easting, squareSize) / cell))
	no := int(math.Floor(math.Mod(c.Northing, squareSize) / cell))
	return fmt.Sprintf("%c%c %0*d %0*d", 'A'+l1, 'A'+l2, n, e, n, no)
}

// ParseOSGB parses a lettered grid reference in spaced or compact form. The
// result is the center of the referenced cell.
func ParseOSGB(s string) (OSGBCoord, error) {
	fields := strings.Fields(s)
	if len(fields) == 3 && len(fields[1]) != len(fields[2]) {
		return OSGBCoord{}, errorf(ErrMalformedGridString, "digit groups of unequal length in %q", s)
	}
	str := strings.Join(fields, "")
	if len(str) < 2 || !isalpha(str[0]) || !isalpha(str[1]) {
		return OSGBCoord{}, errorf(ErrMalformedGridString, "expected two grid letters in %q", s)
	}
	digits := str[2:]
	if !allDigits(digits) || len(digits) == 0 || len(digits)%2 != 0 || len(digits) > maxMGRSDigit {
		return OSGBCoord{}, errorf(ErrMalformedGridString, "need an even count of 2 to 10 digits in %q", s)
	}

	l1 := int(toUpper(str[0]) - 'A')
	l2 := int(toUpper(str[1]) - 'A')
	if l1 == 8 || l2 == 8 {
		return OSGBCoord{}, errorf(ErrMalformedGridString, "letter I is not used in %q", s)
	}
	if l1 > 7 {
		l1--
	}
	if l2 > 7 {
		l2--
	}
	e100k := ((l1-2)%5)*5 + l2%5
	n100k := (19 - (l1/5)*5) - l2/5
	if e100k < 0 || e100k > 6 || n100k < 0 || n100k > 12 {
		return OSGBCoord{}, errorf(ErrOutOfGridCoverage, "square %s is outside the national grid", str[:2])
	}

	n := len(digits) / 2
	p := Precision(n)
	cell := p.GridSize()
	return OSGBCoord{
		Easting:   float64(e100k)*squareSize + float64(parseDigits(digits[:n]))*cell + cell/2,
		Northing:  float64(n100k)*squareSize + float64(parseDigits(digits[n:]))*cell + cell/2,
		Precision: p,
	}, nil
}

// BritishNationalGrid is the Ordnance Survey National Grid as a GridSystem.
// WGS84 input is shifted to OSGB36 with the published Helmert transform.
type BritishNationalGrid struct {
	Precision Precision
}

// Name implements GridSystem.
func (BritishNationalGrid) Name() string { return GridBNG }

// CoverageContains implements GridSystem.
func (BritishNationalGrid) CoverageContains(g Geodetic) bool {
	if g.Validate() != nil || !osgbBounds().Contains(g.Point()) {
		return false
	}
	_, err := ProjectOSGB36(WGS84ToOSGB36(g))
	return err == nil
}

// Encode implements GridSystem.
func (s BritishNationalGrid) Encode(g Geodetic) (GridCoordinate, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if !osgbBounds().Contains(g.Point()) {
		return nil, errorf(ErrOutOfGridCoverage, "%s is outside Great Britain", g)
	}
	c, err := ProjectOSGB36(WGS84ToOSGB36(g))
	if err != nil {
		return nil, err
	}
	if s.Precision.Valid() {
		c.Precision = s.Precision
	}
	return c, nil
}

// Decode implements GridSystem.
func (BritishNationalGrid) Decode(str string) (GridCoordinate, error) {
	c, err := ParseOSGB(str)
	if err != nil {
		return nil, err
	}
	return c, nil
}
