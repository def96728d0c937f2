package units_test

import (
	"math"
	"strings"
	"testing"

	"github.com/tacmap/coordconv/units"
)

func TestFormatDistance(t *testing.T) {
	for _, tc := range []struct {
		meters float64
		out    string
	}{
		{0, "0.0 m"},
		{12.34, "12.3 m"},
		{999.9, "999.9 m"},
		{1000, "1.00 km"},
		{1234.5, "1.23 km"},
		{9999, "10.00 km"},
		{10000, "10.0 km"},
		{123456, "123.5 km"},
	} {
		if got := units.FormatDistance(tc.meters); got != tc.out {
			t.Errorf("FormatDistance(%v) = %q, expected %q", tc.meters, got, tc.out)
		}
	}
}

func TestFormatDistanceIn(t *testing.T) {
	for _, tc := range []struct {
		meters float64
		unit   units.DistanceUnit
		out    string
	}{
		{1000, units.DistanceAuto, "1.00 km"},
		{1000, units.Meters, "1000.0 m"},
		{1500, units.Kilometers, "1.50 km"},
		{1609.344, units.Miles, "1.00 mi"},
		{1852 * 2.5, units.NauticalMiles, "2.50 nmi"},
		{100, units.Feet, "328 ft"},
		{9.144, units.Yards, "10 yd"},
	} {
		if got := units.FormatDistanceIn(tc.meters, tc.unit); got != tc.out {
			t.Errorf("FormatDistanceIn(%v, %s) = %q, expected %q", tc.meters, tc.unit, got, tc.out)
		}
	}
}

func TestFormatBearing(t *testing.T) {
	for _, tc := range []struct {
		degrees float64
		out     string
	}{
		{0, "0.0° N"},
		{22.5, "22.5° NNE"},
		{45, "45.0° NE"},
		{90, "90.0° E"},
		{135, "135.0° SE"},
		{180, "180.0° S"},
		{191.3, "191.3° SSW"},
		{270, "270.0° W"},
		{348.7, "348.7° NNW"},
		{359.9, "359.9° N"},
		{-90, "270.0° W"},
		{725, "5.0° N"},
	} {
		if got := units.FormatBearing(tc.degrees); got != tc.out {
			t.Errorf("FormatBearing(%v) = %q, expected %q", tc.degrees, got, tc.out)
		}
	}
	for _, tc := range []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{90, "E"},
		{359.9, "N"},
	} {
		if got := units.FormatBearing(tc.degrees); !strings.HasSuffix(got, " "+tc.want) {
			t.Errorf("FormatBearing(%v) = %q, expected direction %s", tc.degrees, got, tc.want)
		}
	}
}

func TestCardinalBoundaries(t *testing.T) {
	for _, tc := range []struct {
		degrees float64
		want    string
	}{
		{11.24, "N"},
		{11.25, "NNE"},
		{348.74, "NNW"},
		{348.75, "N"},
		{168.75, "S"},
		{168.74, "SSE"},
	} {
		if got := units.Cardinal(tc.degrees); got != tc.want {
			t.Errorf("Cardinal(%v) = %s, expected %s", tc.degrees, got, tc.want)
		}
	}
}

func TestFormatArea(t *testing.T) {
	for _, tc := range []struct {
		sqMeters float64
		out      string
	}{
		{0, "0.0 m²"},
		{9999.9, "9999.9 m²"},
		{10000, "1.00 ha"},
		{250000, "25.00 ha"},
		{999999, "100.00 ha"},
		{1000000, "1.00 km²"},
		{12364025625.6, "12364.03 km²"},
	} {
		if got := units.FormatArea(tc.sqMeters); got != tc.out {
			t.Errorf("FormatArea(%v) = %q, expected %q", tc.sqMeters, got, tc.out)
		}
	}
	if got := units.FormatAreaIn(units.SquareMetersPerAcre*3, units.Acres); got != "3.00 ac" {
		t.Errorf("got %q", got)
	}
}

func TestConversions(t *testing.T) {
	for _, tc := range []struct {
		name     string
		got      float64
		expected float64
	}{
		{"mile", units.MetersTo(1609.344, units.Miles), 1},
		{"nautical mile", units.ToMeters(1, units.NauticalMiles), 1852},
		{"foot", units.MetersTo(0.3048*5280, units.Feet), 5280},
		{"yard", units.MetersTo(1609.344, units.Yards), 1760},
		{"kilometer", units.ToMeters(2.5, units.Kilometers), 2500},
		{"acre", units.SquareMetersTo(units.SquareMetersPerAcre, units.Acres), 1},
		{"acres per square mile", units.SquareMetersTo(units.SquareMetersPerSquareMile, units.Acres), 640},
		{"hectare", units.SquareMetersTo(1e4, units.Hectares), 1},
		{"square kilometer", units.SquareMetersTo(1e6, units.SquareKilometers), 1},
		{"square feet per acre", units.SquareMetersTo(units.SquareMetersPerAcre, units.SquareFeet), 43560},
		{"nato circle", units.DegreesToMils(360, units.NATOMils), 6400},
		{"warsaw circle", units.DegreesToMils(360, units.WarsawMils), 6000},
		{"nato right angle", units.MilsToDegrees(1600, units.NATOMils), 90},
		{"warsaw right angle", units.MilsToDegrees(1500, units.WarsawMils), 90},
	} {
		if math.Abs(tc.got-tc.expected) > 1e-9*math.Max(1, tc.expected) {
			t.Errorf("%s: got %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestFormatMils(t *testing.T) {
	for _, tc := range []struct {
		degrees float64
		scale   units.MilScale
		out     string
	}{
		{0, units.NATOMils, "0000 mils"},
		{90, units.NATOMils, "1600 mils"},
		{90, units.WarsawMils, "1500 mils"},
		{359.99, units.NATOMils, "0000 mils"},
		{-45, units.NATOMils, "5600 mils"},
	} {
		if got := units.FormatMils(tc.degrees, tc.scale); got != tc.out {
			t.Errorf("FormatMils(%v, %s) = %q, expected %q", tc.degrees, tc.scale, got, tc.out)
		}
	}
}

func TestFormatCoordinates(t *testing.T) {
	if got := units.FormatDecimalDegrees(51.5007, -0.1246); got != "51.500700°N 0.124600°W" {
		t.Errorf("got %q", got)
	}
	if got := units.FormatDecimalDegrees(-33.8568, 151.2153); got != "33.856800°S 151.215300°E" {
		t.Errorf("got %q", got)
	}
	for _, tc := range []struct {
		lat, lng float64
		out      string
	}{
		{51.5007, -0.1246, `51°30'02.5"N 0°07'28.6"W`},
		{-33.8568, 151.2153, `33°51'24.5"S 151°12'55.1"E`},
		{10.99999999, 0, `11°00'00.0"N 0°00'00.0"E`},
	} {
		if got := units.FormatDMS(tc.lat, tc.lng); got != tc.out {
			t.Errorf("FormatDMS(%v, %v) = %q, expected %q", tc.lat, tc.lng, got, tc.out)
		}
	}
}

func TestParseUnits(t *testing.T) {
	for in, want := range map[string]units.DistanceUnit{
		"":      units.DistanceAuto,
		"auto":  units.DistanceAuto,
		"m":     units.Meters,
		"KM":    units.Kilometers,
		"miles": units.Miles,
		"nmi":   units.NauticalMiles,
		" ft ":  units.Feet,
		"yd":    units.Yards,
	} {
		got, err := units.ParseDistanceUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseDistanceUnit(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := units.ParseDistanceUnit("furlong"); err == nil {
		t.Errorf("expected an error for an unknown unit")
	}

	if s, err := units.ParseMilScale("Warsaw"); err != nil || s != units.WarsawMils {
		t.Errorf("ParseMilScale(Warsaw) = %s, %v", s, err)
	}
	if s, err := units.ParseMilScale("nato"); err != nil || s != units.NATOMils {
		t.Errorf("ParseMilScale(nato) = %s, %v", s, err)
	}
	if _, err := units.ParseMilScale("grad"); err == nil {
		t.Errorf("expected an error for an unknown mil scale")
	}
}
