package coordconv

import (
	"fmt"
	"strings"
)

// GridCoordinate is a position expressed in some grid reference system.
type GridCoordinate interface {
	fmt.Stringer
	// Geodetic returns the WGS84 position the reference denotes (the cell
	// center for references with limited precision).
	Geodetic() (Geodetic, error)
}

// GridSystem is the contract shared by MGRS, UTM and national grids. Callers
// pick a strategy and use it without knowing which grid it is.
type GridSystem interface {
	Name() string
	// CoverageContains reports whether Encode can succeed for g.
	CoverageContains(g Geodetic) bool
	Encode(g Geodetic) (GridCoordinate, error)
	Decode(s string) (GridCoordinate, error)
}

// Grid system names accepted by GridSystemByName.
const (
	GridMGRS = "mgrs"
	GridUTM  = "utm"
	GridBNG  = "bng"
)

// GridSystemByName returns the strategy registered under name.
func GridSystemByName(name string, precision Precision) (GridSystem, error) {
	if !precision.Valid() {
		return nil, errorf(ErrInvalidPrecision, "%d", int(precision))
	}
	switch strings.ToLower(name) {
	case GridMGRS:
		return MGRSGrid{Precision: precision}, nil
	case GridUTM:
		return UTMGrid{}, nil
	case GridBNG, "osgb", "british":
		return BritishNationalGrid{Precision: precision}, nil
	}
	return nil, fmt.Errorf("unknown grid system %q", name)
}

// MGRSGrid encodes to MGRS at a fixed precision.
type MGRSGrid struct {
	Precision Precision
}

// Name implements GridSystem.
func (MGRSGrid) Name() string { return GridMGRS }

// CoverageContains implements GridSystem.
func (MGRSGrid) CoverageContains(g Geodetic) bool {
	return utmCoverageContains(g)
}

// Encode implements GridSystem.
func (s MGRSGrid) Encode(g Geodetic) (GridCoordinate, error) {
	m, err := MGRSFromGeodetic(g, s.Precision)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Decode implements GridSystem.
func (MGRSGrid) Decode(str string) (GridCoordinate, error) {
	m, err := DecodeMGRS(str)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UTMGrid encodes to plain UTM coordinates.
type UTMGrid struct{}

// Name implements GridSystem.
func (UTMGrid) Name() string { return GridUTM }

// CoverageContains implements GridSystem.
func (UTMGrid) CoverageContains(g Geodetic) bool {
	return utmCoverageContains(g)
}

// Encode implements GridSystem.
func (UTMGrid) Encode(g Geodetic) (GridCoordinate, error) {
	c, err := ToUTM(g)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Decode implements GridSystem.
func (UTMGrid) Decode(str string) (GridCoordinate, error) {
	c, err := ParseUTM(str)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Geodetic implements GridCoordinate.
func (c UTMCoord) Geodetic() (Geodetic, error) {
	return FromUTM(c)
}

func utmCoverageContains(g Geodetic) bool {
	return g.Validate() == nil && g.Latitude >= utmMinLat && g.Latitude < utmMaxLat
}
