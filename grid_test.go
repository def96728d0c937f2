package coordconv_test

import (
	"errors"
	"testing"

	"github.com/tacmap/coordconv"
)

func TestGridSystemByName(t *testing.T) {
	for _, tc := range []struct {
		name string
		want string
	}{
		{"mgrs", coordconv.GridMGRS},
		{"MGRS", coordconv.GridMGRS},
		{"utm", coordconv.GridUTM},
		{"bng", coordconv.GridBNG},
		{"osgb", coordconv.GridBNG},
		{"british", coordconv.GridBNG},
	} {
		gs, err := coordconv.GridSystemByName(tc.name, coordconv.Precision1m)
		if err != nil {
			t.Fatalf("GridSystemByName(%q): %s", tc.name, err)
		}
		if gs.Name() != tc.want {
			t.Errorf("GridSystemByName(%q).Name() = %q, expected %q", tc.name, gs.Name(), tc.want)
		}
	}
	if _, err := coordconv.GridSystemByName("georef", coordconv.Precision1m); err == nil {
		t.Errorf("expected an error for an unknown grid system")
	}
	if _, err := coordconv.GridSystemByName("mgrs", coordconv.Precision(0)); !errors.Is(err, coordconv.ErrInvalidPrecision) {
		t.Errorf("expected ErrInvalidPrecision, got %v", err)
	}
}

func TestGridSystemsRoundTrip(t *testing.T) {
	london := coordconv.Geodetic{Latitude: 51.5007, Longitude: -0.1246}
	for _, name := range []string{coordconv.GridMGRS, coordconv.GridUTM, coordconv.GridBNG} {
		gs, err := coordconv.GridSystemByName(name, coordconv.Precision1m)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !gs.CoverageContains(london) {
			t.Errorf("%s: expected coverage of %s", name, london)
			continue
		}
		ref, err := gs.Encode(london)
		if err != nil {
			t.Fatalf("%s: encode: %s", name, err)
		}
		decoded, err := gs.Decode(ref.String())
		if err != nil {
			t.Fatalf("%s: decode %q: %s", name, ref, err)
		}
		g, err := decoded.Geodetic()
		if err != nil {
			t.Fatalf("%s: geodetic: %s", name, err)
		}
		if d := groundDistance(london, g); d > 1.5 {
			t.Errorf("%s: %q decoded %.2fm away", name, ref, d)
		}
	}
}

func TestGridSystemsCoverage(t *testing.T) {
	pole := coordconv.Geodetic{Latitude: 88, Longitude: 10}
	for _, name := range []string{coordconv.GridMGRS, coordconv.GridUTM, coordconv.GridBNG} {
		gs, _ := coordconv.GridSystemByName(name, coordconv.Precision1m)
		if gs.CoverageContains(pole) {
			t.Errorf("%s: unexpected coverage of %s", name, pole)
		}
		if _, err := gs.Encode(pole); !errors.Is(err, coordconv.ErrOutOfGridCoverage) {
			t.Errorf("%s: expected ErrOutOfGridCoverage, got %v", name, err)
		}
	}

	sydney := coordconv.Geodetic{Latitude: -33.8568, Longitude: 151.2153}
	mgrs, _ := coordconv.GridSystemByName(coordconv.GridMGRS, coordconv.Precision1m)
	bng, _ := coordconv.GridSystemByName(coordconv.GridBNG, coordconv.Precision1m)
	if !mgrs.CoverageContains(sydney) || bng.CoverageContains(sydney) {
		t.Errorf("unexpected coverage for %s", sydney)
	}
}
