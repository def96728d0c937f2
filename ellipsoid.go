package coordconv

import "math"

// WGS84 defining constants.
const (
	WGS84SemiMajorAxis = 6378137.0
	WGS84Flattening    = 1 / 298.257223563
)

// Airy 1830 ellipsoid used by the Ordnance Survey national grid.
const (
	Airy1830SemiMajorAxis = 6377563.396
	Airy1830SemiMinorAxis = 6356256.909
)

// UTMScaleFactor is the central meridian scale factor of every UTM zone.
const UTMScaleFactor = 0.9996

// Ellipsoid describes a reference ellipsoid by its semi-major axis in meters
// and its flattening.
type Ellipsoid struct {
	SemiMajorAxis float64
	Flattening    float64
}

// WGS84 returns the WGS84 ellipsoid.
func WGS84() Ellipsoid {
	return Ellipsoid{SemiMajorAxis: WGS84SemiMajorAxis, Flattening: WGS84Flattening}
}

// Airy1830 returns the Airy 1830 ellipsoid.
func Airy1830() Ellipsoid {
	return Ellipsoid{
		SemiMajorAxis: Airy1830SemiMajorAxis,
		Flattening:    (Airy1830SemiMajorAxis - Airy1830SemiMinorAxis) / Airy1830SemiMajorAxis,
	}
}

// SemiMinorAxis returns b = a(1-f).
func (e Ellipsoid) SemiMinorAxis() float64 {
	return e.SemiMajorAxis * (1 - e.Flattening)
}

// EccentricitySquared returns e^2 = 2f - f^2.
func (e Ellipsoid) EccentricitySquared() float64 {
	return 2*e.Flattening - e.Flattening*e.Flattening
}

// Eccentricity returns the first eccentricity e.
func (e Ellipsoid) Eccentricity() float64 {
	return math.Sqrt(e.EccentricitySquared())
}

// SecondEccentricitySquared returns e'^2 = e^2 / (1 - e^2).
func (e Ellipsoid) SecondEccentricitySquared() float64 {
	e2 := e.EccentricitySquared()
	return e2 / (1 - e2)
}

// ThirdFlattening returns Helmert's n = (a - b)/(a + b).
func (e Ellipsoid) ThirdFlattening() float64 {
	return e.Flattening / (2 - e.Flattening)
}

// Validate reports ErrInvalidEllipsoid for axes or flattening no earth model
// would use.
func (e Ellipsoid) Validate() error {
	if e.SemiMajorAxis <= 0 {
		return errorf(ErrInvalidEllipsoid, "semi-major axis must be greater than zero")
	}
	invF := 1 / e.Flattening
	if invF < 250 || invF > 350 {
		return errorf(ErrInvalidEllipsoid, "inverse flattening must be between 250 and 350")
	}
	return nil
}
