package coordconv

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// nTerms is the number of Krüger series terms evaluated.
const nTerms = 6

// MapCoords is a projected easting/northing pair in meters.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransverseMercator converts between geodetic coordinates and Transverse
// Mercator easting/northing on an arbitrary ellipsoid. It evaluates the Krüger
// series in Helmert's n to sixth order, which keeps forward and inverse
// consistent to well under a millimeter inside a UTM zone. A TransverseMercator
// is immutable once built and safe for concurrent use.
type TransverseMercator struct {
	ellipsoid Ellipsoid
	eps       float64 // first eccentricity

	k0R4    float64 // scale factor * meridional isoperimetric radius
	k0R4inv float64

	aCoeff [8]float64 // conformal to rectifying
	bCoeff [8]float64 // rectifying to conformal

	originLat     float64 // radians
	originLong    float64 // radians, in (-Pi, Pi]
	falseEasting  float64
	falseNorthing float64
	scaleFactor   float64

	// projected northing of the origin latitude on the central meridian
	originNorthing float64

	deltaEasting  float64
	deltaNorthing float64
}

// NewTransverseMercator builds a projection. centralMeridian and
// latitudeOfOrigin are in radians.
func NewTransverseMercator(ellipsoid Ellipsoid, centralMeridian, latitudeOfOrigin,
	falseEasting, falseNorthing, scaleFactor float64) (*TransverseMercator, error) {
	if ellipsoid.SemiMajorAxis <= 0 {
		return nil, errorf(ErrInvalidEllipsoid, "semi-major axis must be greater than zero")
	}
	if 1/ellipsoid.Flattening < 150 {
		return nil, errorf(ErrInvalidEllipsoid, "inverse flattening out of range")
	}
	if latitudeOfOrigin < -math.Pi/2 || latitudeOfOrigin > math.Pi/2 {
		return nil, errorf(ErrInvalidCoordinateRange, "latitude of origin out of range")
	}
	if centralMeridian < -math.Pi || centralMeridian > 2*math.Pi {
		return nil, errorf(ErrInvalidCoordinateRange, "central meridian out of range")
	}
	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if scaleFactor < minScaleFactor || scaleFactor > maxScaleFactor {
		return nil, errorf(ErrInvalidCoordinateRange, "scale factor out of range")
	}
	if centralMeridian > math.Pi {
		centralMeridian -= 2 * math.Pi
	}

	t := &TransverseMercator{
		ellipsoid:     ellipsoid,
		eps:           ellipsoid.Eccentricity(),
		originLat:     latitudeOfOrigin,
		originLong:    centralMeridian,
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
		scaleFactor:   scaleFactor,
		deltaEasting:  20000000.0,
		deltaNorthing: 10000000.0,
	}

	r4oa := krugerCoefficients(ellipsoid.ThirdFlattening(), &t.aCoeff, &t.bCoeff)
	t.k0R4 = r4oa * scaleFactor * ellipsoid.SemiMajorAxis
	t.k0R4inv = 1.0 / t.k0R4

	// The origin may move from the equator; that shows up as a shift of the
	// false northing.
	_, t.originNorthing = t.project(t.originLat, 0)
	return t, nil
}

// krugerCoefficients fills the forward (a) and inverse (b) series
// coefficients for k = 2, 4, ..., 16 and returns R4/a, the ratio of the
// meridional isoperimetric radius to the semi-major axis. The result depends
// only on the ellipsoid's shape.
func krugerCoefficients(n float64, a, b *[8]float64) float64 {
	var p [11]float64 // p[i] = n^i
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * n
	}

	a[0] = -18975107.0*p[8]/50803200.0 + 72161.0*p[7]/387072.0 + 7891.0*p[6]/37800.0 -
		127.0*p[5]/288.0 + 41.0*p[4]/180.0 + 5.0*p[3]/16.0 - 2.0*p[2]/3.0 + p[1]/2.0
	a[1] = 148003883.0*p[8]/174182400.0 + 13769.0*p[7]/28800.0 - 1983433.0*p[6]/1935360.0 +
		281.0*p[5]/630.0 + 557.0*p[4]/1440.0 - 3.0*p[3]/5.0 + 13.0*p[2]/48.0
	a[2] = 79682431.0*p[8]/79833600.0 - 67102379.0*p[7]/29030400.0 + 167603.0*p[6]/181440.0 +
		15061.0*p[5]/26880.0 - 103.0*p[4]/140.0 + 61.0*p[3]/240.0
	a[3] = -40176129013.0*p[8]/7664025600.0 + 97445.0*p[7]/49896.0 + 6601661.0*p[6]/7257600.0 -
		179.0*p[5]/168.0 + 49561.0*p[4]/161280.0
	a[4] = 2605413599.0*p[8]/622702080.0 + 14644087.0*p[7]/9123840.0 - 3418889.0*p[6]/1995840.0 +
		34729.0*p[5]/80640.0
	a[5] = 175214326799.0*p[8]/58118860800.0 - 30705481.0*p[7]/10378368.0 + 212378941.0*p[6]/319334400.0
	a[6] = -16759934899.0*p[8]/3113510400.0 + 1522256789.0*p[7]/1383782400.0
	a[7] = 1424729850961.0 * p[8] / 743921418240.0

	b[0] = -7944359.0*p[8]/67737600.0 + 5406467.0*p[7]/38707200.0 - 96199.0*p[6]/604800.0 +
		81.0*p[5]/512.0 + p[4]/360.0 - 37.0*p[3]/96.0 + 2.0*p[2]/3.0 - p[1]/2.0
	b[1] = -24749483.0*p[8]/348364800.0 - 51841.0*p[7]/1209600.0 + 1118711.0*p[6]/3870720.0 -
		46.0*p[5]/105.0 + 437.0*p[4]/1440.0 - p[3]/15.0 - p[2]/48.0
	b[2] = 6457463.0*p[8]/17740800.0 - 9261899.0*p[7]/58060800.0 - 5569.0*p[6]/90720.0 +
		209.0*p[5]/4480.0 + 37.0*p[4]/840.0 - 17.0*p[3]/480.0
	b[3] = -324154477.0*p[8]/7664025600.0 - 466511.0*p[7]/2494800.0 + 830251.0*p[6]/7257600.0 +
		11.0*p[5]/504.0 - 4397.0*p[4]/161280.0
	b[4] = -22894433.0*p[8]/124540416.0 + 8005831.0*p[7]/63866880.0 + 108847.0*p[6]/3991680.0 -
		4583.0*p[5]/161280.0
	b[5] = 2204645983.0*p[8]/12915302400.0 + 16363163.0*p[7]/518918400.0 - 20648693.0*p[6]/638668800.0
	b[6] = 497323811.0*p[8]/12454041600.0 - 219941297.0*p[7]/5535129600.0
	b[7] = -191773887257.0 * p[8] / 3719607091200.0

	r4 := 1 + p[2]/4 + p[4]/64 + p[6]/256 + 25*p[8]/16384.0 + 49*p[10]/65536.0
	return r4 / (1 + n)
}

// lambdaFromCentralMeridian wraps lon - lon0 into (-Pi, Pi].
func (t *TransverseMercator) lambdaFromCentralMeridian(longitude float64) float64 {
	lambda := longitude - t.originLong
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	}
	if lambda <= -math.Pi {
		lambda += 2 * math.Pi
	}
	return lambda
}

// checkLatLon rejects points more than 70 degrees from the central meridian,
// where the series diverges. Points near the poles are always accepted.
func checkLatLon(latitude, lambda float64) error {
	testAngle := math.Abs(lambda)
	testAngle = math.Min(testAngle, math.Abs(lambda-math.Pi))
	testAngle = math.Min(testAngle, math.Abs(lambda+math.Pi))
	testAngle = math.Min(testAngle, math.Pi/2-latitude)
	testAngle = math.Min(testAngle, math.Pi/2+latitude)

	const maxDeltaLong = (math.Pi * 70) / 180.0
	if testAngle > maxDeltaLong {
		return errorf(ErrInvalidCoordinateRange, "longitude too far from central meridian")
	}
	return nil
}

// project maps latitude and longitude offset lambda (radians) to unshifted
// easting/northing.
func (t *TransverseMercator) project(latitude, lambda float64) (easting, northing float64) {
	cosLam, sinLam := math.Cos(lambda), math.Sin(lambda)
	cosPhi, sinPhi := math.Cos(latitude), math.Sin(latitude)

	// geodetic latitude phi to conformal latitude chi
	p := math.Exp(t.eps * math.Atanh(t.eps*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	// spherical transverse Mercator
	u := math.Atanh(cosChi * sinLam)
	v := math.Atan2(sinChi, cosChi*cosLam)

	var c2ku, s2ku, c2kv, s2kv [8]float64
	hyperbolicSeries(2*u, &c2ku, &s2ku)
	trigSeries(2*v, &c2kv, &s2kv)

	xStar, yStar := 0.0, 0.0
	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.aCoeff[k] * s2ku[k] * c2kv[k]
		yStar += t.aCoeff[k] * c2ku[k] * s2kv[k]
	}
	xStar += u
	yStar += v

	return t.k0R4 * xStar, t.k0R4 * yStar
}

// unproject is the inverse of project.
func (t *TransverseMercator) unproject(easting, northing float64) (latitude, lambda float64) {
	xStar := t.k0R4inv * easting
	yStar := t.k0R4inv * northing

	var c2kx, s2kx, c2ky, s2ky [8]float64
	hyperbolicSeries(2*xStar, &c2kx, &s2kx)
	trigSeries(2*yStar, &c2ky, &s2ky)

	u, v := 0.0, 0.0
	for k := nTerms - 1; k >= 0; k-- {
		u += t.bCoeff[k] * s2kx[k] * c2ky[k]
		v += t.bCoeff[k] * c2kx[k] * s2ky[k]
	}
	u += xStar
	v += yStar

	coshU, sinhU := math.Cosh(u), math.Sinh(u)
	cosV, sinV := math.Cos(v), math.Sin(v)

	if math.Abs(cosV) < 10e-12 && math.Abs(coshU) < 10e-12 {
		lambda = 0
	} else {
		lambda = math.Atan2(sinhU, cosV)
	}
	return geodeticLat(sinV/coshU, t.eps), lambda
}

// Forward projects a geodetic coordinate to easting/northing.
func (t *TransverseMercator) Forward(ll s2.LatLng) (MapCoords, error) {
	latitude := ll.Lat.Radians()
	if latitude < -math.Pi/2 || latitude > math.Pi/2 {
		return MapCoords{}, errorf(ErrInvalidCoordinateRange, "latitude out of range")
	}
	lambda := t.lambdaFromCentralMeridian(ll.Lng.Radians())
	if err := checkLatLon(latitude, lambda); err != nil {
		return MapCoords{}, err
	}
	easting, northing := t.project(latitude, lambda)
	return MapCoords{
		Easting:  easting + t.falseEasting,
		Northing: northing - t.originNorthing + t.falseNorthing,
	}, nil
}

// Inverse recovers the geodetic coordinate of a projected point.
func (t *TransverseMercator) Inverse(mc MapCoords) (s2.LatLng, error) {
	easting, northing := mc.Easting, mc.Northing
	if easting < t.falseEasting-t.deltaEasting || easting > t.falseEasting+t.deltaEasting {
		return s2.LatLng{}, errorf(ErrInvalidCoordinateRange, "easting out of range")
	}
	if northing < t.falseNorthing-t.deltaNorthing || northing > t.falseNorthing+t.deltaNorthing {
		return s2.LatLng{}, errorf(ErrInvalidCoordinateRange, "northing out of range")
	}

	latitude, lambda := t.unproject(easting-t.falseEasting, northing-t.falseNorthing+t.originNorthing)
	if math.Abs(latitude) > math.Pi/2 {
		return s2.LatLng{}, errorf(ErrInvalidCoordinateRange, "northing out of range")
	}
	longitude := t.originLong + lambda
	if longitude > math.Pi {
		longitude -= 2 * math.Pi
	}
	if longitude <= -math.Pi {
		longitude += 2 * math.Pi
	}
	return s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, nil
}

// geodeticLat converts the sine of the conformal latitude back to geodetic
// latitude by fixed-point iteration.
func geodeticLat(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlusSinChi := 1.0 + sinChi
	oneMinusSinChi := 1.0 - sinChi

	for n := 0; n < 30; n++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlusSinChi*pSq - oneMinusSinChi) / (onePlusSinChi*pSq + oneMinusSinChi)
		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

// hyperbolicSeries fills c[k] = cosh(2(k+1)x), s[k] = sinh(2(k+1)x) using
// double and sum angle identities.
func hyperbolicSeries(twoX float64, c, s *[8]float64) {
	c[0], s[0] = math.Cosh(twoX), math.Sinh(twoX)
	for k := 1; k < len(c); k++ {
		if k%2 == 1 {
			h := k / 2
			c[k] = 2.0*c[h]*c[h] - 1.0
			s[k] = 2.0 * c[h] * s[h]
		} else {
			c[k] = c[0]*c[k-1] + s[0]*s[k-1]
			s[k] = c[k-1]*s[0] + c[0]*s[k-1]
		}
	}
}

// trigSeries fills c[k] = cos(2(k+1)y), s[k] = sin(2(k+1)y).
func trigSeries(twoY float64, c, s *[8]float64) {
	c[0], s[0] = math.Cos(twoY), math.Sin(twoY)
	for k := 1; k < len(c); k++ {
		if k%2 == 1 {
			h := k / 2
			c[k] = 2.0*c[h]*c[h] - 1.0
			s[k] = 2.0 * c[h] * s[h]
		} else {
			c[k] = c[k-1]*c[0] - s[k-1]*s[0]
			s[k] = c[k-1]*s[0] + c[0]*s[k-1]
		}
	}
}
