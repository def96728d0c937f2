// Package units converts SI measurements to display units and formats them
// for map labels.
package units

import (
	"fmt"
	"strings"
)

// Length factors, meters per unit. All are exact by definition.
const (
	MetersPerKilometer    = 1000.0
	MetersPerMile         = 1609.344
	MetersPerNauticalMile = 1852.0
	MetersPerFoot         = 0.3048
	MetersPerYard         = 0.9144
)

// Area factors, square meters per unit.
const (
	SquareMetersPerHectare         = 1.0e4
	SquareMetersPerSquareKilometer = 1.0e6
	SquareMetersPerAcre            = 4046.8564224
	SquareMetersPerSquareMile      = MetersPerMile * MetersPerMile
	SquareMetersPerSquareFoot      = MetersPerFoot * MetersPerFoot
)

// Angular mils per degree.
const (
	NATOMilsPerDegree   = 6400.0 / 360.0
	WarsawMilsPerDegree = 6000.0 / 360.0
)

// DistanceUnit selects how distances are displayed.
type DistanceUnit int

// Distance units. DistanceAuto picks meters or kilometers by magnitude.
const (
	DistanceAuto DistanceUnit = iota
	Meters
	Kilometers
	Miles
	NauticalMiles
	Feet
	Yards
)

// MetersPer returns the number of meters in one unit. DistanceAuto counts
// as meters.
func (u DistanceUnit) MetersPer() float64 {
	switch u {
	case Kilometers:
		return MetersPerKilometer
	case Miles:
		return MetersPerMile
	case NauticalMiles:
		return MetersPerNauticalMile
	case Feet:
		return MetersPerFoot
	case Yards:
		return MetersPerYard
	}
	return 1
}

// Symbol returns the abbreviation printed after a value.
func (u DistanceUnit) Symbol() string {
	switch u {
	case Meters:
		return "m"
	case Kilometers:
		return "km"
	case Miles:
		return "mi"
	case NauticalMiles:
		return "nmi"
	case Feet:
		return "ft"
	case Yards:
		return "yd"
	}
	return "auto"
}

func (u DistanceUnit) String() string {
	return u.Symbol()
}

// ParseDistanceUnit accepts a unit symbol or name.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DistanceAuto, nil
	case "m", "meter", "meters", "metre", "metres":
		return Meters, nil
	case "km", "kilometer", "kilometers", "kilometre", "kilometres":
		return Kilometers, nil
	case "mi", "mile", "miles":
		return Miles, nil
	case "nmi", "nm", "nautical", "nautical miles":
		return NauticalMiles, nil
	case "ft", "foot", "feet":
		return Feet, nil
	case "yd", "yard", "yards":
		return Yards, nil
	}
	return DistanceAuto, fmt.Errorf("unknown distance unit %q", s)
}

// MetersTo converts meters to the given unit.
func MetersTo(meters float64, u DistanceUnit) float64 {
	return meters / u.MetersPer()
}

// ToMeters converts a distance in the given unit to meters.
func ToMeters(v float64, u DistanceUnit) float64 {
	return v * u.MetersPer()
}

// AreaUnit selects an area unit.
type AreaUnit int

// Area units.
const (
	SquareMeters AreaUnit = iota
	Hectares
	SquareKilometers
	Acres
	SquareMiles
	SquareFeet
)

// SquareMetersPer returns the number of square meters in one unit.
func (u AreaUnit) SquareMetersPer() float64 {
	switch u {
	case Hectares:
		return SquareMetersPerHectare
	case SquareKilometers:
		return SquareMetersPerSquareKilometer
	case Acres:
		return SquareMetersPerAcre
	case SquareMiles:
		return SquareMetersPerSquareMile
	case SquareFeet:
		return SquareMetersPerSquareFoot
	}
	return 1
}

// Symbol returns the abbreviation printed after a value.
func (u AreaUnit) Symbol() string {
	switch u {
	case Hectares:
		return "ha"
	case SquareKilometers:
		return "km²"
	case Acres:
		return "ac"
	case SquareMiles:
		return "mi²"
	case SquareFeet:
		return "ft²"
	}
	return "m²"
}

func (u AreaUnit) String() string {
	return u.Symbol()
}

// SquareMetersTo converts square meters to the given unit.
func SquareMetersTo(sqMeters float64, u AreaUnit) float64 {
	return sqMeters / u.SquareMetersPer()
}

// MilScale is an angular mil convention.
type MilScale int

// Mil scales. NATO divides the circle into 6400 mils, the Warsaw Pact into
// 6000.
const (
	NATOMils MilScale = iota
	WarsawMils
)

// PerDegree returns the number of mils in one degree.
func (s MilScale) PerDegree() float64 {
	if s == WarsawMils {
		return WarsawMilsPerDegree
	}
	return NATOMilsPerDegree
}

func (s MilScale) String() string {
	if s == WarsawMils {
		return "warsaw"
	}
	return "nato"
}

// ParseMilScale accepts "nato" or "warsaw".
func ParseMilScale(s string) (MilScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nato":
		return NATOMils, nil
	case "warsaw", "warsaw pact", "wp":
		return WarsawMils, nil
	}
	return NATOMils, fmt.Errorf("unknown mil scale %q", s)
}

// DegreesToMils converts degrees to mils on the given scale.
func DegreesToMils(degrees float64, s MilScale) float64 {
	return degrees * s.PerDegree()
}

// MilsToDegrees converts mils on the given scale to degrees.
func MilsToDegrees(mils float64, s MilScale) float64 {
	return mils / s.PerDegree()
}
