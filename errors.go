package coordconv

import (
	"errors"
	"fmt"
)

// Conversion errors. Every fallible operation in this package returns one of
// these, possibly wrapped with detail; test with errors.Is.
var (
	ErrInvalidCoordinateRange = errors.New("coordinate out of range")
	ErrOutOfGridCoverage      = errors.New("outside grid coverage")
	ErrInvalidZone            = errors.New("invalid zone")
	ErrInvalidBandLetter      = errors.New("invalid latitude band letter")
	ErrMalformedGridString    = errors.New("malformed grid string")
	ErrInvalidPrecision       = errors.New("invalid precision")
	ErrInvalidEllipsoid       = errors.New("invalid ellipsoid")
)

func errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
