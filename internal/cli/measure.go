package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"github.com/paulmach/orb/geojson"
	"github.com/tacmap/coordconv/geodesy"
	"github.com/tacmap/coordconv/measure"
	"github.com/tacmap/coordconv/units"
)

// Measure measures distance, bearing, area or perimeter over "lat,lon"
// points and prints a summary or a GeoJSON overlay.
func Measure(env Env, flagSet *flag.FlagSet, args []string) error {
	kindPtr := flagSet.String("kind", "distance", "Measurement: distance, bearing, area or perimeter")
	geojsonPtr := flagSet.Bool("geojson", false, "Print a GeoJSON feature collection instead of text")
	ringPtr := flagSet.Float64("ring", 0, "Add a range ring of this radius in meters around the first point (GeoJSON only)")
	unitPtr := flagSet.String("unit", "", "Distance unit: auto, m, km, mi, nmi, ft or yd (default from config)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	kind, err := measure.ParseKind(*kindPtr)
	if err != nil {
		return err
	}
	points, err := parsePoints(flagSet.Args())
	if err != nil {
		return err
	}

	opts := measure.Options{Mils: env.Config.MilScale(), DistanceUnit: env.Config.DistanceUnit()}
	if *unitPtr != "" {
		if opts.DistanceUnit, err = units.ParseDistanceUnit(*unitPtr); err != nil {
			return err
		}
	}

	result, err := measure.Measure(kind, points, opts)
	if errors.Is(err, geodesy.ErrDegeneratePolygon) {
		env.Logger.Warn("degenerate polygon, area is zero", "points", len(points))
	} else if err != nil {
		return err
	}

	if *geojsonPtr {
		fc := measure.FeatureCollection(result)
		if *ringPtr > 0 && len(points) > 0 {
			ring, err := measure.RangeRingFeature(points[0], *ringPtr, 72, opts)
			if err != nil {
				return err
			}
			fc.Append(ring)
		}
		return writeGeoJSON(env, fc)
	}

	return writeResult(env, result, opts)
}

func writeGeoJSON(env Env, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, string(data))
	return err
}

func writeResult(env Env, r measure.Result, opts measure.Options) error {
	w := env.Stdout
	if r.Distance != nil {
		fmt.Fprintf(w, "distance   %s\n", r.Distance.Display)
		if len(r.Segments) > 1 {
			for i, s := range r.Segments {
				fmt.Fprintf(w, "  leg %-3d  %s\n", i+1, s.Display)
			}
		}
	}
	if r.Bearing != nil {
		fmt.Fprintf(w, "bearing    %s  %s\n", r.Bearing.Display, units.FormatMils(r.Bearing.Degrees, opts.Mils))
		fmt.Fprintf(w, "back       %s\n", units.FormatBearing(r.Bearing.BackBearing))
		fmt.Fprintf(w, "final      %s\n", units.FormatBearing(r.Bearing.FinalBearing))
	}
	if r.Area != nil {
		fmt.Fprintf(w, "area       %s\n", r.Area.Display)
	}
	if r.Perimeter != nil {
		_, err := fmt.Fprintf(w, "perimeter  %s\n", r.Perimeter.Display)
		return err
	}
	return nil
}
