package coordconv

import (
	"fmt"
	"math"
	"strings"
)

// Precision selects the size of an MGRS grid cell.
type Precision int

// MGRS precisions, from a 10 km square (1 digit per axis) down to 1 m
// (5 digits per axis).
const (
	Precision10km Precision = iota + 1
	Precision1km
	Precision100m
	Precision10m
	Precision1m
)

// Digits returns the number of easting (and northing) digits.
func (p Precision) Digits() int {
	return int(p)
}

// GridSize returns the edge length of a grid cell in meters.
func (p Precision) GridSize() float64 {
	switch p {
	case Precision10km:
		return 1.0e4
	case Precision1km:
		return 1.0e3
	case Precision100m:
		return 1.0e2
	case Precision10m:
		return 1.0e1
	case Precision1m:
		return 1.0e0
	}
	return 1.0e5
}

// Valid reports whether p is one of the five defined precisions.
func (p Precision) Valid() bool {
	return p >= Precision10km && p <= Precision1m
}

func (p Precision) String() string {
	switch p {
	case Precision10km:
		return "10km"
	case Precision1km:
		return "1km"
	case Precision100m:
		return "100m"
	case Precision10m:
		return "10m"
	case Precision1m:
		return "1m"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// ParsePrecision accepts a digit count ("1".."5") or a cell size ("10km",
// "1km", "100m", "10m", "1m").
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "10km":
		return Precision10km, nil
	case "2", "1km":
		return Precision1km, nil
	case "3", "100m":
		return Precision100m, nil
	case "4", "10m":
		return Precision10m, nil
	case "5", "1m":
		return Precision1m, nil
	}
	return 0, errorf(ErrInvalidPrecision, "%q", s)
}

// MGRSCoord is a parsed or encoded MGRS reference. Easting and Northing are
// the digit groups, always in [0, 10^Precision.Digits()).
type MGRSCoord struct {
	Zone      int
	Band      byte
	Column    byte
	Row       byte
	Easting   uint32
	Northing  uint32
	Precision Precision
}

// MGRS 100 km square letters. Columns rotate through three sets by zone;
// rows restart every 2000 km, even zones shifted by five letters.
const (
	columnLettersSet1 = "ABCDEFGH"
	columnLettersSet2 = "JKLMNPQR"
	columnLettersSet3 = "STUVWXYZ"
	rowLettersOdd     = "ABCDEFGHJKLMNPQRSTUV"
	rowLettersEven    = "FGHJKLMNPQRSTUVABCDE"
)

// mgrsEpsilon keeps values a hair under a cell edge from truncating into the
// cell below.
const mgrsEpsilon = 4.99e-4

const (
	squareSize   = 100000.0
	rowCycle     = 2000000.0
	maxMGRSDigit = 10
)

func columnLetters(zone int) string {
	switch zone % 3 {
	case 1:
		return columnLettersSet1
	case 2:
		return columnLettersSet2
	}
	return columnLettersSet3
}

func rowLetters(zone int) string {
	if zone%2 == 0 {
		return rowLettersEven
	}
	return rowLettersOdd
}

// bandMinNorthing returns the lowest 100 km northing found in a latitude
// band, used to pick the right 2000 km row cycle when decoding.
func bandMinNorthing(band byte) (float64, error) {
	minNorthing := [20]float64{
		1100000, 2000000, 2800000, 3700000, 4600000, // C D E F G
		5500000, 6400000, 7300000, 8200000, 9100000, // H J K L M
		0, 800000, 1700000, 2600000, 3500000, // N P Q R S
		4400000, 5300000, 6200000, 7000000, 7900000, // T U V W X
	}
	i := bandIndex(band)
	if i < 0 {
		return 0, errorf(ErrInvalidBandLetter, "%q", band)
	}
	return minNorthing[i], nil
}

// bandLatitudes returns the southern and northern limits of a band.
func bandLatitudes(band byte) (south, north float64) {
	i := bandIndex(band)
	south = utmMinLat + 8*float64(i)
	north = south + 8
	if band == 'X' {
		north = utmMaxLat
	}
	return south, north
}

// MGRSFromGeodetic encodes a WGS84 coordinate as MGRS.
func MGRSFromGeodetic(g Geodetic, precision Precision) (MGRSCoord, error) {
	utm, err := ToUTM(g)
	if err != nil {
		return MGRSCoord{}, err
	}
	return EncodeMGRS(utm, precision)
}

// EncodeMGRS converts a UTM coordinate to an MGRS reference. The offsets
// inside the 100 km square are truncated, not rounded, to the precision.
func EncodeMGRS(utm UTMCoord, precision Precision) (MGRSCoord, error) {
	if !precision.Valid() {
		return MGRSCoord{}, errorf(ErrInvalidPrecision, "%d", int(precision))
	}
	if utm.Zone < 1 || utm.Zone > 60 {
		return MGRSCoord{}, errorf(ErrInvalidZone, "zone %d out of range", utm.Zone)
	}
	if math.IsNaN(utm.Easting) || math.IsInf(utm.Easting, 0) {
		return MGRSCoord{}, errorf(ErrInvalidCoordinateRange, "easting %v out of range", utm.Easting)
	}
	if !(utm.Northing >= utmMinNorthing && utm.Northing <= utmMaxNorthing) {
		return MGRSCoord{}, errorf(ErrInvalidCoordinateRange, "northing %v out of range", utm.Northing)
	}
	band, err := utm.band()
	if err != nil {
		return MGRSCoord{}, err
	}

	divisor := precision.GridSize()
	easting := math.Floor((utm.Easting+mgrsEpsilon)/divisor) * divisor
	northing := math.Floor((utm.Northing+mgrsEpsilon)/divisor) * divisor

	column := int(easting/squareSize) - 1
	if column < 0 || column >= len(columnLettersSet1) {
		return MGRSCoord{}, errorf(ErrOutOfGridCoverage, "easting %v outside the zone's 100 km columns", utm.Easting)
	}
	row := int(northing/squareSize) % len(rowLettersOdd)

	return MGRSCoord{
		Zone:      utm.Zone,
		Band:      band,
		Column:    columnLetters(utm.Zone)[column],
		Row:       rowLetters(utm.Zone)[row],
		Easting:   uint32(math.Round(math.Mod(easting, squareSize) / divisor)),
		Northing:  uint32(math.Round(math.Mod(northing, squareSize) / divisor)),
		Precision: precision,
	}, nil
}

// String formats the reference as "ZZB CC EEEEE NNNNN".
func (m MGRSCoord) String() string {
	n := m.Precision.Digits()
	return fmt.Sprintf("%02d%c %c%c %0*d %0*d", m.Zone, m.Band, m.Column, m.Row, n, m.Easting, n, m.Northing)
}

// Compact formats the reference without spaces.
func (m MGRSCoord) Compact() string {
	n := m.Precision.Digits()
	return fmt.Sprintf("%02d%c%c%c%0*d%0*d", m.Zone, m.Band, m.Column, m.Row, n, m.Easting, n, m.Northing)
}

// ParseMGRS decodes an MGRS string to the WGS84 coordinate of its cell center.
func ParseMGRS(s string) (Geodetic, error) {
	m, err := DecodeMGRS(s)
	if err != nil {
		return Geodetic{}, err
	}
	return m.Geodetic()
}

// DecodeMGRS parses an MGRS string in spaced ("18S UJ 23480 06470") or
// compact ("18SUJ2348006470") form.
func DecodeMGRS(s string) (MGRSCoord, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "empty string")
	}

	// separated digit groups must have equal length
	trailing := 0
	for i := len(fields) - 1; i > 0 && allDigits(fields[i]); i-- {
		trailing++
	}
	if trailing > 2 {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "too many digit groups in %q", s)
	}
	if trailing == 2 && len(fields[len(fields)-1]) != len(fields[len(fields)-2]) {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "digit groups of unequal length in %q", s)
	}
	if trailing == 1 && len(fields) > 1 {
		// "18SUJ2348 06483": the easting digits close the previous field
		prev := fields[len(fields)-2]
		run := 0
		for run < len(prev) && isdigit(prev[len(prev)-1-run]) {
			run++
		}
		if run > 0 && run != len(fields[len(fields)-1]) {
			return MGRSCoord{}, errorf(ErrMalformedGridString, "digit groups of unequal length in %q", s)
		}
	}

	str := strings.Join(fields, "")
	for i := 0; i < len(str); i++ {
		if !isdigit(str[i]) && !isalpha(str[i]) {
			return MGRSCoord{}, errorf(ErrMalformedGridString, "invalid character %q", str[i])
		}
	}

	i := 0
	for i < len(str) && isdigit(str[i]) {
		i++
	}
	if i == 0 || i > 2 {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "zone must be 1 or 2 digits in %q", s)
	}
	zone := 0
	for _, c := range str[:i] {
		zone = zone*10 + int(c-'0')
	}
	if zone < 1 || zone > 60 {
		return MGRSCoord{}, errorf(ErrInvalidZone, "zone %d out of range", zone)
	}

	if i >= len(str) || !isalpha(str[i]) {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "missing latitude band in %q", s)
	}
	band := toUpper(str[i])
	if bandIndex(band) < 0 {
		return MGRSCoord{}, errorf(ErrInvalidBandLetter, "%q", band)
	}
	i++

	j := i
	for i < len(str) && isalpha(str[i]) {
		i++
	}
	if i-j != 2 {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "expected two 100 km square letters in %q", s)
	}
	column, row := toUpper(str[j]), toUpper(str[j+1])

	digits := str[i:]
	if !allDigits(digits) {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "unexpected characters after digits in %q", s)
	}
	if len(digits) == 0 || len(digits)%2 != 0 || len(digits) > maxMGRSDigit {
		return MGRSCoord{}, errorf(ErrMalformedGridString, "need an even count of 2 to 10 digits, got %d", len(digits))
	}
	n := len(digits) / 2

	m := MGRSCoord{
		Zone:      zone,
		Band:      band,
		Column:    column,
		Row:       row,
		Easting:   parseDigits(digits[:n]),
		Northing:  parseDigits(digits[n:]),
		Precision: Precision(n),
	}
	if err := m.validate(); err != nil {
		return MGRSCoord{}, err
	}
	return m, nil
}

// validate checks the letters against the zone's cycles and the zone
// against the Norway and Svalbard carve-outs.
func (m MGRSCoord) validate() error {
	if m.Zone < 1 || m.Zone > 60 {
		return errorf(ErrInvalidZone, "zone %d out of range", m.Zone)
	}
	if bandIndex(m.Band) < 0 {
		return errorf(ErrInvalidBandLetter, "%q", m.Band)
	}
	if !m.Precision.Valid() {
		return errorf(ErrInvalidPrecision, "%d", int(m.Precision))
	}
	limit := uint32(math.Pow10(m.Precision.Digits()))
	if m.Easting >= limit || m.Northing >= limit {
		return errorf(ErrMalformedGridString, "digits exceed precision %s", m.Precision)
	}
	if strings.IndexByte(columnLetters(m.Zone), m.Column) < 0 {
		return errorf(ErrMalformedGridString, "column letter %q not used in zone %d", m.Column, m.Zone)
	}
	if strings.IndexByte(rowLetters(m.Zone), m.Row) < 0 {
		return errorf(ErrMalformedGridString, "row letter %q not used in zone %d", m.Row, m.Zone)
	}
	if m.Band == 'X' && (m.Zone == 32 || m.Zone == 34 || m.Zone == 36) {
		return errorf(ErrInvalidZone, "zone %d does not exist in band X", m.Zone)
	}
	if m.Band == 'V' && m.Zone == 31 && m.Column > 'D' {
		return errorf(ErrInvalidZone, "31V%c lies in zone 32", m.Column)
	}
	return nil
}

// UTM converts the reference to the UTM coordinate of its cell center.
func (m MGRSCoord) UTM() (UTMCoord, error) {
	if err := m.validate(); err != nil {
		return UTMCoord{}, err
	}
	column := strings.IndexByte(columnLetters(m.Zone), m.Column)
	row := strings.IndexByte(rowLetters(m.Zone), m.Row)

	minNorthing, err := bandMinNorthing(m.Band)
	if err != nil {
		return UTMCoord{}, err
	}
	gridNorthing := float64(row) * squareSize
	for gridNorthing < minNorthing {
		gridNorthing += rowCycle
	}

	cell := m.Precision.GridSize()
	hemisphere := HemisphereNorth
	if m.Band < 'N' {
		hemisphere = HemisphereSouth
	}
	utm := UTMCoord{
		Zone:       m.Zone,
		Hemisphere: hemisphere,
		Easting:    float64(column+1)*squareSize + float64(m.Easting)*cell + cell/2,
		Northing:   gridNorthing + float64(m.Northing)*cell + cell/2,
		Band:       m.Band,
	}

	// the cell must fall inside its band, with a border scaled to the cell
	g, err := FromUTM(utm)
	if err != nil {
		return UTMCoord{}, err
	}
	border := cell / squareSize
	south, north := bandLatitudes(m.Band)
	if g.Latitude < south-border || g.Latitude > north+border {
		return UTMCoord{}, errorf(ErrOutOfGridCoverage, "%s lies outside latitude band %c", m, m.Band)
	}
	return utm, nil
}

// Geodetic returns the WGS84 coordinate of the cell center.
func (m MGRSCoord) Geodetic() (Geodetic, error) {
	utm, err := m.UTM()
	if err != nil {
		return Geodetic{}, err
	}
	return FromUTM(utm)
}

func parseDigits(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		v = v*10 + uint32(s[i]-'0')
	}
	return v
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isdigit(s[i]) {
			return false
		}
	}
	return true
}

func isdigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isalpha(r byte) bool {
	return r >= 'a' && r <= 'z' ||
		r >= 'A' && r <= 'Z'
}

func toUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
