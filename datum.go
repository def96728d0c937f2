package coordconv

import "math"

// cartesian is an earth-centred earth-fixed position in meters.
type cartesian struct {
	x, y, z float64
}

// helmert is a seven parameter similarity transform between two datums:
// translations in meters, scale in parts per million, rotations in arc
// seconds.
type helmert struct {
	tx, ty, tz float64
	s          float64
	rx, ry, rz float64
}

// wgs84ToOSGB36 returns the Ordnance Survey's published WGS84 to OSGB36
// transformation. Accurate to a few meters over Great Britain.
func wgs84ToOSGB36() helmert {
	return helmert{
		tx: -446.448, ty: 125.157, tz: -542.060,
		s:  20.4894,
		rx: -0.1502, ry: -0.2470, rz: -0.8421,
	}
}

func (h helmert) inverse() helmert {
	return helmert{tx: -h.tx, ty: -h.ty, tz: -h.tz, s: -h.s, rx: -h.rx, ry: -h.ry, rz: -h.rz}
}

func (h helmert) apply(c cartesian) cartesian {
	const arcSecond = math.Pi / (180 * 3600)
	s1 := h.s/1e6 + 1
	rx, ry, rz := h.rx*arcSecond, h.ry*arcSecond, h.rz*arcSecond
	return cartesian{
		x: h.tx + c.x*s1 - c.y*rz + c.z*ry,
		y: h.ty + c.x*rz + c.y*s1 - c.z*rx,
		z: h.tz - c.x*ry + c.y*rx + c.z*s1,
	}
}

// toCartesian converts latitude and longitude in radians at height h.
func toCartesian(e Ellipsoid, latitude, longitude, h float64) cartesian {
	e2 := e.EccentricitySquared()
	sinPhi, cosPhi := math.Sin(latitude), math.Cos(latitude)
	nu := e.SemiMajorAxis / math.Sqrt(1-e2*sinPhi*sinPhi)
	return cartesian{
		x: (nu + h) * cosPhi * math.Cos(longitude),
		y: (nu + h) * cosPhi * math.Sin(longitude),
		z: (nu*(1-e2) + h) * sinPhi,
	}
}

// fromCartesian returns latitude and longitude in radians using Bowring's
// method, good to well under a millimeter at terrestrial heights.
func fromCartesian(e Ellipsoid, c cartesian) (latitude, longitude float64) {
	a, b := e.SemiMajorAxis, e.SemiMinorAxis()
	e2 := e.EccentricitySquared()
	ep2 := e.SecondEccentricitySquared()

	p := math.Hypot(c.x, c.y)
	r := math.Hypot(p, c.z)

	tanBeta := (b * c.z) / (a * p) * (1 + ep2*b/r)
	sinBeta := tanBeta / math.Sqrt(1+tanBeta*tanBeta)
	cosBeta := sinBeta / tanBeta

	if math.IsNaN(cosBeta) {
		latitude = 0
	} else {
		latitude = math.Atan2(c.z+ep2*b*sinBeta*sinBeta*sinBeta, p-e2*a*cosBeta*cosBeta*cosBeta)
	}
	return latitude, math.Atan2(c.y, c.x)
}

func shiftDatum(g Geodetic, from, to Ellipsoid, h helmert) Geodetic {
	const rad = math.Pi / 180
	c := h.apply(toCartesian(from, g.Latitude*rad, g.Longitude*rad, 0))
	lat, lon := fromCartesian(to, c)
	return Geodetic{Latitude: lat / rad, Longitude: lon / rad}
}

// WGS84ToOSGB36 shifts a WGS84 coordinate onto the OSGB36 datum.
func WGS84ToOSGB36(g Geodetic) Geodetic {
	return shiftDatum(g, WGS84(), Airy1830(), wgs84ToOSGB36())
}

// OSGB36ToWGS84 shifts an OSGB36 coordinate onto WGS84.
func OSGB36ToWGS84(g Geodetic) Geodetic {
	return shiftDatum(g, Airy1830(), WGS84(), wgs84ToOSGB36().inverse())
}
