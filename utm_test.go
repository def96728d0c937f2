package coordconv_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tacmap/coordconv"
)

const meanEarthRadius = 6371008.8

func groundDistance(a, b coordconv.Geodetic) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * meanEarthRadius
}

// offCentral returns the longitude distance from the zone's central meridian.
func offCentral(zone int, lng float64) float64 {
	d := math.Mod(lng-coordconv.CentralMeridian(zone)+540, 360) - 180
	return math.Abs(d)
}

func TestUTMRoundTrip(t *testing.T) {
	const latInc = 0.5
	const lngInc = 0.5
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := coordconv.Geodetic{Latitude: lat, Longitude: lng}
			uc, err := coordconv.ToUTM(geo)
			if err != nil {
				if geo.Validate() == nil && lat >= -80 && lat < 84 {
					t.Fatalf("unexpected error at %s: %s", geo, err)
				}
				continue
			}
			geo2, err := coordconv.FromUTM(uc)
			if err != nil {
				t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
			}
			limit := 1.0 // sub-meter everywhere in coverage
			if offCentral(uc.Zone, lng) <= 2 {
				limit = 0.001
			}
			if d := groundDistance(geo, geo2); d > limit {
				t.Fatalf("round trip of %s moved %.6fm to %s", geo, d, geo2)
			}
		}
	}
}

func TestUTMZone(t *testing.T) {
	for _, tc := range []struct {
		lat, lng float64
		zone     int
	}{
		{0, -180, 1},
		{-45, -180, 1},
		{10, 179.999, 60},
		{0, 180, 1},
		{0, -177, 1},
		{0, 0, 31},
		{0, -0.0001, 30},
		{60, 5, 32},
		{56, 3, 32},
		{63.999, 11.999, 32},
		{64, 5, 31},
		{55.999, 5, 31},
		{60, 2.999, 31},
		{72, 8.999, 31},
		{75, 9, 33},
		{75, 20.999, 33},
		{75, 21, 35},
		{80, 32.999, 35},
		{80, 33, 37},
		{83.999, 41.999, 37},
		{75, 42, 38},
		{71.999, 10, 32},
	} {
		got := coordconv.Zone(coordconv.Geodetic{Latitude: tc.lat, Longitude: tc.lng})
		if got != tc.zone {
			t.Errorf("Zone(%v, %v) = %d, expected %d", tc.lat, tc.lng, got, tc.zone)
		}
	}

	uc, err := coordconv.ToUTM(coordconv.Geodetic{Latitude: 60, Longitude: 5})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if uc.Zone != 32 || uc.Band != 'V' {
		t.Errorf("expected 32V for southern Norway, got %d%c", uc.Zone, uc.Band)
	}
}

func TestLatitudeBand(t *testing.T) {
	for _, tc := range []struct {
		lat  float64
		band byte
	}{
		{-80, 'C'},
		{-72.0001, 'C'},
		{-72, 'D'},
		{-0.1, 'M'},
		{0, 'N'},
		{7.999, 'N'},
		{8, 'P'},
		{40.7, 'T'},
		{56, 'V'},
		{71.999, 'W'},
		{72, 'X'},
		{83.999, 'X'},
	} {
		got, err := coordconv.LatitudeBand(tc.lat)
		if err != nil {
			t.Errorf("LatitudeBand(%v): unexpected error %s", tc.lat, err)
			continue
		}
		if got != tc.band {
			t.Errorf("LatitudeBand(%v) = %c, expected %c", tc.lat, got, tc.band)
		}
	}
	for _, lat := range []float64{-80.0001, 84, 89.9, -90, math.NaN()} {
		if _, err := coordconv.LatitudeBand(lat); !errors.Is(err, coordconv.ErrOutOfGridCoverage) {
			t.Errorf("LatitudeBand(%v): expected ErrOutOfGridCoverage, got %v", lat, err)
		}
	}
}

func TestUTMKnownValues(t *testing.T) {
	for _, tc := range []struct {
		geo        coordconv.Geodetic
		zone       int
		hemisphere coordconv.Hemisphere
		easting    float64
		northing   float64
	}{
		{coordconv.Geodetic{Latitude: 0, Longitude: 3}, 31, coordconv.HemisphereNorth, 500000, 0},
		{coordconv.Geodetic{Latitude: 45, Longitude: -75}, 18, coordconv.HemisphereNorth, 500000, 4982950.400},
		{coordconv.Geodetic{Latitude: -0.5, Longitude: 3}, 31, coordconv.HemisphereSouth, 500000, 9944734.963},
		{coordconv.Geodetic{Latitude: 60, Longitude: 5}, 32, coordconv.HemisphereNorth, 276979.926, 6658157.202},
		{coordconv.Geodetic{Latitude: -33.8568, Longitude: 151.2153}, 56, coordconv.HemisphereSouth, 334900.570, 6252288.753},
	} {
		uc, err := coordconv.ToUTM(tc.geo)
		if err != nil {
			t.Fatalf("%s: unexpected error %s", tc.geo, err)
		}
		if uc.Zone != tc.zone || uc.Hemisphere != tc.hemisphere {
			t.Errorf("%s: got zone %d%s, expected %d%s", tc.geo, uc.Zone, uc.Hemisphere, tc.zone, tc.hemisphere)
		}
		if math.Abs(uc.Easting-tc.easting) > 0.002 || math.Abs(uc.Northing-tc.northing) > 0.002 {
			t.Errorf("%s: got %.3f %.3f, expected %.3f %.3f", tc.geo, uc.Easting, uc.Northing, tc.easting, tc.northing)
		}
	}
}

func TestUTMErrors(t *testing.T) {
	for _, geo := range []coordconv.Geodetic{
		{Latitude: 91, Longitude: 0},
		{Latitude: 0, Longitude: 180.5},
		{Latitude: math.NaN(), Longitude: 0},
	} {
		if _, err := coordconv.ToUTM(geo); !errors.Is(err, coordconv.ErrInvalidCoordinateRange) {
			t.Errorf("%s: expected ErrInvalidCoordinateRange, got %v", geo, err)
		}
	}
	for _, geo := range []coordconv.Geodetic{
		{Latitude: 84, Longitude: 0},
		{Latitude: -80.5, Longitude: 0},
		{Latitude: 90, Longitude: 0},
	} {
		if _, err := coordconv.ToUTM(geo); !errors.Is(err, coordconv.ErrOutOfGridCoverage) {
			t.Errorf("%s: expected ErrOutOfGridCoverage, got %v", geo, err)
		}
	}
	if _, err := coordconv.FromUTM(coordconv.UTMCoord{Zone: 61, Hemisphere: coordconv.HemisphereNorth, Easting: 500000}); !errors.Is(err, coordconv.ErrInvalidZone) {
		t.Errorf("expected ErrInvalidZone, got %v", err)
	}
	if _, err := coordconv.FromUTM(coordconv.UTMCoord{Zone: 18, Hemisphere: coordconv.HemisphereNorth, Easting: 50000}); !errors.Is(err, coordconv.ErrInvalidCoordinateRange) {
		t.Errorf("expected ErrInvalidCoordinateRange, got %v", err)
	}
}

func TestUTMString(t *testing.T) {
	uc, err := coordconv.ToUTM(coordconv.Geodetic{Latitude: 45, Longitude: -75})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	s := uc.String()
	if s != "18T 0500000 04982950" {
		t.Errorf("got %q", s)
	}
	parsed, err := coordconv.ParseUTM(s)
	if err != nil {
		t.Fatalf("ParseUTM(%q): %s", s, err)
	}
	if parsed.Zone != 18 || parsed.Band != 'T' || parsed.Hemisphere != coordconv.HemisphereNorth ||
		parsed.Easting != 500000 || parsed.Northing != 4982950 {
		t.Errorf("ParseUTM(%q) = %+v", s, parsed)
	}

	south, err := coordconv.ParseUTM("56H 334900 6252288")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if south.Hemisphere != coordconv.HemisphereSouth {
		t.Errorf("band H should be southern, got %s", south.Hemisphere)
	}
	geo, err := south.Geodetic()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d := groundDistance(geo, coordconv.Geodetic{Latitude: -33.8568, Longitude: 151.2153}); d > 2 {
		t.Errorf("parsed UTM lands %.2fm away", d)
	}

	for _, tc := range []struct {
		in  string
		err error
	}{
		{"18T 500000", coordconv.ErrMalformedGridString},
		{"xxT 500000 4982950", coordconv.ErrMalformedGridString},
		{"61T 500000 4982950", coordconv.ErrInvalidZone},
		{"18I 500000 4982950", coordconv.ErrInvalidBandLetter},
		{"18T 5000e 4982950", coordconv.ErrMalformedGridString},
		{"18T NaN 4982950", coordconv.ErrMalformedGridString},
		{"18T 500000 NaN", coordconv.ErrMalformedGridString},
		{"18T +Inf 4982950", coordconv.ErrMalformedGridString},
	} {
		if _, err := coordconv.ParseUTM(tc.in); !errors.Is(err, tc.err) {
			t.Errorf("ParseUTM(%q): expected %v, got %v", tc.in, tc.err, err)
		}
	}

	if _, err := (coordconv.UTMGrid{}).Decode("18T NaN 4982950"); err == nil {
		t.Errorf("UTM strategy decoded a NaN easting")
	}
	for _, c := range []coordconv.UTMCoord{
		{Zone: 18, Hemisphere: coordconv.HemisphereNorth, Easting: math.NaN(), Northing: 4982950},
		{Zone: 18, Hemisphere: coordconv.HemisphereNorth, Easting: 500000, Northing: math.NaN()},
	} {
		if g, err := coordconv.FromUTM(c); !errors.Is(err, coordconv.ErrInvalidCoordinateRange) {
			t.Errorf("FromUTM(%+v) = %v, %v, expected ErrInvalidCoordinateRange", c, g, err)
		}
		if _, err := coordconv.EncodeMGRS(c, coordconv.Precision1m); !errors.Is(err, coordconv.ErrInvalidCoordinateRange) {
			t.Errorf("EncodeMGRS(%+v): expected ErrInvalidCoordinateRange, got %v", c, err)
		}
	}
}
