package coordconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return "?"
}

// UTMCoord is a UTM coordinate. Easting carries the 500 km false easting and
// Northing carries the 10000 km false northing in the southern hemisphere.
// Band is the latitude band letter, or zero when unknown.
type UTMCoord struct {
	Zone       int
	Hemisphere Hemisphere
	Easting    float64
	Northing   float64
	Band       byte
}

// UTM is a UTM coordinate converter
type UTM struct {
	ellipsoid             Ellipsoid
	transverseMercatorMap [61]*TransverseMercator
}

// latitudeBandLetters are the 8 degree bands from -80, the last one (X)
// spanning 12 degrees up to 84.
const latitudeBandLetters = "CDEFGHJKLMNPQRSTUVWX"

const (
	utmMinLat       = -80.0
	utmMaxLat       = 84.0
	utmMinEasting   = 100000.0
	utmMaxEasting   = 900000.0
	utmMinNorthing  = 0.0
	utmMaxNorthing  = 10000000.0
	utmFalseEasting = 500000.0
	utmSouthOffset  = 10000000.0
)

// inverse results are accepted half a degree past the coverage band so that
// grid cells straddling its edges still decode
const utmInverseSlack = 0.5

var defaultUTM = mustNewUTM(WGS84())

func mustNewUTM(e Ellipsoid) *UTM {
	u, err := NewUTM(e)
	if err != nil {
		panic(fmt.Sprintf("error constructing UTM converter: %s", err))
	}
	return u
}

// NewUTM constructs a UTM converter for the given ellipsoid.
func NewUTM(ellipsoid Ellipsoid) (*UTM, error) {
	if err := ellipsoid.Validate(); err != nil {
		return nil, err
	}
	u := &UTM{ellipsoid: ellipsoid}
	for zone := 1; zone <= 60; zone++ {
		var err error
		u.transverseMercatorMap[zone], err = NewTransverseMercator(ellipsoid,
			CentralMeridian(zone)*math.Pi/180, 0, utmFalseEasting, 0, UTMScaleFactor)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// CentralMeridian returns the central meridian of a UTM zone in degrees.
func CentralMeridian(zone int) float64 {
	return float64(6*zone - 183)
}

// Zone returns the UTM zone of a coordinate, applying the southern Norway and
// Svalbard exceptions. Longitude 180 wraps to zone 1.
func Zone(g Geodetic) int {
	lat, lon := g.Latitude, g.Longitude
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 1
	} else if zone < 1 {
		zone = 1
	}

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		zone = 32
	}
	if lat >= 72 && lat < 84 {
		switch {
		case lon >= 0 && lon < 9:
			zone = 31
		case lon >= 9 && lon < 21:
			zone = 33
		case lon >= 21 && lon < 33:
			zone = 35
		case lon >= 33 && lon < 42:
			zone = 37
		}
	}
	return zone
}

// LatitudeBand returns the UTM/MGRS latitude band letter for a latitude in
// degrees. Latitudes outside [-80, 84) are ErrOutOfGridCoverage.
func LatitudeBand(latitude float64) (byte, error) {
	if math.IsNaN(latitude) || latitude < utmMinLat || latitude >= utmMaxLat {
		return 0, errorf(ErrOutOfGridCoverage, "latitude %v outside [-80, 84)", latitude)
	}
	i := int(math.Floor((latitude - utmMinLat) / 8))
	if i >= len(latitudeBandLetters) {
		i = len(latitudeBandLetters) - 1
	}
	return latitudeBandLetters[i], nil
}

func bandIndex(letter byte) int {
	return strings.IndexByte(latitudeBandLetters, letter)
}

// ToUTM projects a WGS84 coordinate to UTM.
func ToUTM(g Geodetic) (UTMCoord, error) {
	return defaultUTM.Forward(g)
}

// FromUTM converts a WGS84 UTM coordinate back to latitude/longitude.
func FromUTM(c UTMCoord) (Geodetic, error) {
	return defaultUTM.Inverse(c)
}

// Forward converts geodetic (latitude and longitude) coordinates to UTM
// projection (zone, hemisphere, easting and northing) coordinates.
func (u *UTM) Forward(g Geodetic) (UTMCoord, error) {
	if err := g.Validate(); err != nil {
		return UTMCoord{}, err
	}
	band, err := LatitudeBand(g.Latitude)
	if err != nil {
		return UTMCoord{}, err
	}
	if g.Latitude > -1.0e-9 && g.Latitude < 0 {
		g.Latitude = 0
	}

	zone := Zone(g)
	mc, err := u.transverseMercatorMap[zone].Forward(g.LatLng())
	if err != nil {
		return UTMCoord{}, err
	}

	hemisphere := HemisphereNorth
	northing := mc.Northing
	if g.Latitude < 0 {
		hemisphere = HemisphereSouth
		northing += utmSouthOffset
	}
	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    mc.Easting,
		Northing:   northing,
		Band:       band,
	}, nil
}

// Inverse converts UTM projection (zone, hemisphere, easting and northing)
// coordinates to geodetic (latitude and longitude) coordinates.
func (u *UTM) Inverse(c UTMCoord) (Geodetic, error) {
	if c.Zone < 1 || c.Zone > 60 {
		return Geodetic{}, errorf(ErrInvalidZone, "zone %d out of range", c.Zone)
	}
	if c.Hemisphere != HemisphereSouth && c.Hemisphere != HemisphereNorth {
		return Geodetic{}, errorf(ErrInvalidCoordinateRange, "hemisphere out of range")
	}
	// written so that NaN fails
	if !(c.Easting >= utmMinEasting && c.Easting <= utmMaxEasting) {
		return Geodetic{}, errorf(ErrInvalidCoordinateRange, "easting %v out of range", c.Easting)
	}
	if !(c.Northing >= utmMinNorthing && c.Northing <= utmMaxNorthing) {
		return Geodetic{}, errorf(ErrInvalidCoordinateRange, "northing %v out of range", c.Northing)
	}

	northing := c.Northing
	if c.Hemisphere == HemisphereSouth {
		northing -= utmSouthOffset
	}
	ll, err := u.transverseMercatorMap[c.Zone].Inverse(MapCoords{Easting: c.Easting, Northing: northing})
	if err != nil {
		return Geodetic{}, err
	}
	g := GeodeticFromLatLng(ll)
	if g.Latitude < utmMinLat-utmInverseSlack || g.Latitude >= utmMaxLat+utmInverseSlack {
		return Geodetic{}, errorf(ErrOutOfGridCoverage, "latitude %v out of range", g.Latitude)
	}
	return g, nil
}

// band returns the stored band letter, or derives it from the coordinate.
func (c UTMCoord) band() (byte, error) {
	if bandIndex(c.Band) >= 0 {
		return c.Band, nil
	}
	g, err := FromUTM(c)
	if err != nil {
		return 0, err
	}
	return LatitudeBand(g.Latitude)
}

// String formats the coordinate as "ZZB EEEEEEE NNNNNNNN". When the band is
// unknown and cannot be derived the hemisphere letter is used.
func (c UTMCoord) String() string {
	b, err := c.band()
	if err != nil {
		b = c.Hemisphere.String()[0]
	}
	return fmt.Sprintf("%02d%c %07.0f %08.0f", c.Zone, b, math.Floor(c.Easting), math.Floor(c.Northing))
}

// ParseUTM parses "ZZB EEEEEEE NNNNNNNN". The hemisphere is implied by the
// band letter: C through M are south, N through X north.
func ParseUTM(s string) (UTMCoord, error) {
	fields := strings.Fields(s)
	if len(fields) == 4 {
		// "18 T 585628 4511322"
		fields = []string{fields[0] + fields[1], fields[2], fields[3]}
	}
	if len(fields) != 3 {
		return UTMCoord{}, errorf(ErrMalformedGridString, "expected zone+band, easting and northing in %q", s)
	}
	gzd := fields[0]
	if len(gzd) < 2 || len(gzd) > 3 {
		return UTMCoord{}, errorf(ErrMalformedGridString, "bad grid zone designator %q", gzd)
	}
	zone, err := strconv.Atoi(gzd[:len(gzd)-1])
	if err != nil {
		return UTMCoord{}, errorf(ErrMalformedGridString, "non-numeric zone %q", gzd[:len(gzd)-1])
	}
	if zone < 1 || zone > 60 {
		return UTMCoord{}, errorf(ErrInvalidZone, "zone %d out of range", zone)
	}
	band := toUpper(gzd[len(gzd)-1])
	if bandIndex(band) < 0 {
		return UTMCoord{}, errorf(ErrInvalidBandLetter, "%q", band)
	}
	easting, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(easting) || math.IsInf(easting, 0) {
		return UTMCoord{}, errorf(ErrMalformedGridString, "easting %q", fields[1])
	}
	northing, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || math.IsNaN(northing) || math.IsInf(northing, 0) {
		return UTMCoord{}, errorf(ErrMalformedGridString, "northing %q", fields[2])
	}
	hemisphere := HemisphereNorth
	if band < 'N' {
		hemisphere = HemisphereSouth
	}
	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
		Band:       band,
	}, nil
}
