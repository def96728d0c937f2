package units

import (
	"fmt"
	"math"
)

// FormatDistance formats meters for display: meters with one decimal below
// 1 km, kilometers with two decimals below 10 km, one decimal beyond.
func FormatDistance(meters float64) string {
	switch {
	case meters < 1000:
		return fmt.Sprintf("%.1f m", meters)
	case meters < 10000:
		return fmt.Sprintf("%.2f km", meters/MetersPerKilometer)
	}
	return fmt.Sprintf("%.1f km", meters/MetersPerKilometer)
}

// FormatDistanceIn formats meters in a fixed unit. DistanceAuto behaves like
// FormatDistance.
func FormatDistanceIn(meters float64, u DistanceUnit) string {
	switch u {
	case DistanceAuto:
		return FormatDistance(meters)
	case Meters:
		return fmt.Sprintf("%.1f m", meters)
	case Feet, Yards:
		return fmt.Sprintf("%.0f %s", MetersTo(meters, u), u.Symbol())
	}
	return fmt.Sprintf("%.2f %s", MetersTo(meters, u), u.Symbol())
}

// compassPoint indexes the 16-point rose, starting at north, 22.5 degrees apart.
func compassPoint(i int) string {
	return [16]string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}[i]
}

// normalizeDegrees wraps an angle into [0, 360).
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// Cardinal returns the nearest of the 16 compass points to a bearing.
func Cardinal(degrees float64) string {
	i := int(math.Round(normalizeDegrees(degrees)/22.5)) % 16
	return compassPoint(i)
}

// FormatBearing formats a bearing as "123.4° SE".
func FormatBearing(degrees float64) string {
	d := normalizeDegrees(degrees)
	return fmt.Sprintf("%.1f° %s", d, Cardinal(d))
}

// FormatArea formats square meters for display: square meters below one
// hectare, hectares below one square kilometer, square kilometers beyond.
func FormatArea(sqMeters float64) string {
	switch {
	case sqMeters < SquareMetersPerHectare:
		return fmt.Sprintf("%.1f m²", sqMeters)
	case sqMeters < SquareMetersPerSquareKilometer:
		return fmt.Sprintf("%.2f ha", sqMeters/SquareMetersPerHectare)
	}
	return fmt.Sprintf("%.2f km²", sqMeters/SquareMetersPerSquareKilometer)
}

// FormatAreaIn formats square meters in a fixed unit with two decimals.
func FormatAreaIn(sqMeters float64, u AreaUnit) string {
	return fmt.Sprintf("%.2f %s", SquareMetersTo(sqMeters, u), u.Symbol())
}

// FormatMils formats a bearing in whole mils, e.g. "1600 mils".
func FormatMils(degrees float64, s MilScale) string {
	mils := math.Round(DegreesToMils(normalizeDegrees(degrees), s))
	if full := 360 * s.PerDegree(); mils >= full {
		mils -= full
	}
	return fmt.Sprintf("%04.0f mils", mils)
}

func hemisphereLetter(v float64, positive, negative byte) byte {
	if v < 0 {
		return negative
	}
	return positive
}

// FormatDecimalDegrees formats a position as "51.500700°N 0.124600°W".
func FormatDecimalDegrees(latitude, longitude float64) string {
	return fmt.Sprintf("%.6f°%c %.6f°%c",
		math.Abs(latitude), hemisphereLetter(latitude, 'N', 'S'),
		math.Abs(longitude), hemisphereLetter(longitude, 'E', 'W'))
}

// FormatDMS formats a position in degrees, minutes and seconds to a tenth of
// a second, e.g. `51°30'02.5"N 0°07'28.6"W`.
func FormatDMS(latitude, longitude float64) string {
	return dms(latitude, 'N', 'S') + " " + dms(longitude, 'E', 'W')
}

func dms(v float64, positive, negative byte) string {
	// whole tenths of a second, so rounding carries into minutes and degrees
	tenths := int64(math.Round(math.Abs(v) * 36000))
	d := tenths / 36000
	m := tenths % 36000 / 600
	s := float64(tenths%600) / 10
	return fmt.Sprintf("%d°%02d'%04.1f\"%c", d, m, s, hemisphereLetter(v, positive, negative))
}
