// Package measure assembles geodesic measurements into display-ready results
// for map overlays.
package measure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tacmap/coordconv"
	"github.com/tacmap/coordconv/geodesy"
	"github.com/tacmap/coordconv/units"
)

// Kind is the measurement requested.
type Kind int

// Measurement kinds.
const (
	KindDistance Kind = iota + 1
	KindBearing
	KindArea
	KindPerimeter
)

func (k Kind) String() string {
	switch k {
	case KindDistance:
		return "distance"
	case KindBearing:
		return "bearing"
	case KindArea:
		return "area"
	case KindPerimeter:
		return "perimeter"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts a kind name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindDistance, KindBearing, KindArea, KindPerimeter} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown measurement %q", s)
}

// ErrTooFewPoints is returned when a measurement lacks the points it needs.
var ErrTooFewPoints = errors.New("too few points")

// Options control derived units and display strings.
type Options struct {
	Mils         units.MilScale
	DistanceUnit units.DistanceUnit
}

// Distance is a length in meters with its derived units.
type Distance struct {
	Meters        float64 `json:"meters"`
	Kilometers    float64 `json:"kilometers"`
	Miles         float64 `json:"miles"`
	NauticalMiles float64 `json:"nautical_miles"`
	Feet          float64 `json:"feet"`
	Display       string  `json:"display"`
}

// Bearing is an initial bearing in degrees with its reciprocal.
type Bearing struct {
	Degrees      float64 `json:"degrees"`
	Mils         float64 `json:"mils"`
	BackBearing  float64 `json:"back_bearing"`
	FinalBearing float64 `json:"final_bearing"`
	Cardinal     string  `json:"cardinal"`
	Display      string  `json:"display"`
}

// Area is an area in square meters with its derived units.
type Area struct {
	SquareMeters     float64 `json:"square_meters"`
	Hectares         float64 `json:"hectares"`
	Acres            float64 `json:"acres"`
	SquareKilometers float64 `json:"square_kilometers"`
	SquareMiles      float64 `json:"square_miles"`
	Display          string  `json:"display"`
}

// Result holds one measurement. Only the fields belonging to Kind are set;
// a nil field was not computed, which is distinct from a measured zero.
// KindArea also sets Perimeter, since an area overlay is labelled with both.
type Result struct {
	Kind      Kind                 `json:"kind"`
	Points    []coordconv.Geodetic `json:"points"`
	Distance  *Distance            `json:"distance,omitempty"`
	Bearing   *Bearing             `json:"bearing,omitempty"`
	Area      *Area                `json:"area,omitempty"`
	Perimeter *Distance            `json:"perimeter,omitempty"`
	Segments  []Distance           `json:"segments,omitempty"`
}

// Measure computes one kind of measurement over points.
//
// Area over a ring with fewer than three distinct vertices returns a valid
// result with zero area together with an error wrapping
// geodesy.ErrDegeneratePolygon.
func Measure(kind Kind, points []coordconv.Geodetic, opts Options) (Result, error) {
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return Result{}, err
		}
	}
	r := Result{Kind: kind, Points: points}
	switch kind {
	case KindDistance:
		if len(points) < 2 {
			return Result{}, fmt.Errorf("%w: distance needs 2 points, got %d", ErrTooFewPoints, len(points))
		}
		segments := geodesy.SegmentDistances(points)
		total := 0.0
		r.Segments = make([]Distance, len(segments))
		for i, d := range segments {
			total += d
			r.Segments[i] = NewDistance(d, opts)
		}
		r.Distance = distancePtr(NewDistance(total, opts))
	case KindBearing:
		if len(points) != 2 {
			return Result{}, fmt.Errorf("%w: bearing needs exactly 2 points, got %d", ErrTooFewPoints, len(points))
		}
		b := NewBearing(points[0], points[1], opts)
		r.Bearing = &b
	case KindArea:
		area, err := geodesy.PolygonArea(points)
		if err != nil && !errors.Is(err, geodesy.ErrDegeneratePolygon) {
			return Result{}, err
		}
		a := NewArea(area)
		r.Area = &a
		r.Perimeter = distancePtr(NewDistance(geodesy.PolygonPerimeter(points), opts))
		return r, err
	case KindPerimeter:
		if len(points) < 2 {
			return Result{}, fmt.Errorf("%w: perimeter needs 2 points, got %d", ErrTooFewPoints, len(points))
		}
		r.Perimeter = distancePtr(NewDistance(geodesy.PolygonPerimeter(points), opts))
	default:
		return Result{}, fmt.Errorf("unknown measurement kind %d", int(kind))
	}
	return r, nil
}

func distancePtr(d Distance) *Distance {
	return &d
}

// NewDistance derives the display units of a length in meters.
func NewDistance(meters float64, opts Options) Distance {
	return Distance{
		Meters:        meters,
		Kilometers:    units.MetersTo(meters, units.Kilometers),
		Miles:         units.MetersTo(meters, units.Miles),
		NauticalMiles: units.MetersTo(meters, units.NauticalMiles),
		Feet:          units.MetersTo(meters, units.Feet),
		Display:       units.FormatDistanceIn(meters, opts.DistanceUnit),
	}
}

// NewBearing measures the bearing from one point to another.
func NewBearing(from, to coordconv.Geodetic, opts Options) Bearing {
	deg := geodesy.Bearing(from, to)
	return Bearing{
		Degrees:      deg,
		Mils:         units.DegreesToMils(deg, opts.Mils),
		BackBearing:  geodesy.BackBearing(from, to),
		FinalBearing: geodesy.FinalBearing(from, to),
		Cardinal:     units.Cardinal(deg),
		Display:      units.FormatBearing(deg),
	}
}

// NewArea derives the display units of an area in square meters.
func NewArea(sqMeters float64) Area {
	return Area{
		SquareMeters:     sqMeters,
		Hectares:         units.SquareMetersTo(sqMeters, units.Hectares),
		Acres:            units.SquareMetersTo(sqMeters, units.Acres),
		SquareKilometers: units.SquareMetersTo(sqMeters, units.SquareKilometers),
		SquareMiles:      units.SquareMetersTo(sqMeters, units.SquareMiles),
		Display:          units.FormatArea(sqMeters),
	}
}

// Summary is a one-line label for the result.
func (r Result) Summary() string {
	var parts []string
	if r.Distance != nil {
		parts = append(parts, r.Distance.Display)
	}
	if r.Bearing != nil {
		parts = append(parts, r.Bearing.Display)
	}
	if r.Area != nil {
		parts = append(parts, r.Area.Display)
	}
	if r.Perimeter != nil {
		parts = append(parts, "perimeter "+r.Perimeter.Display)
	}
	return strings.Join(parts, ", ")
}
