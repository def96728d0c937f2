package measure

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tacmap/coordconv"
	"github.com/tacmap/coordconv/geodesy"
)

func lineString(points []coordconv.Geodetic) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, p.Point())
	}
	return ls
}

// ring returns the points as a closed orb ring.
func ring(points []coordconv.Geodetic) orb.Ring {
	r := orb.Ring(lineString(points))
	if len(r) > 0 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

// Feature returns the measurement as a GeoJSON feature: a line for
// distances and bearings, a polygon for areas and perimeters. Computed
// values are copied into the properties, unset ones are left out.
func (r Result) Feature() *geojson.Feature {
	var g orb.Geometry
	switch r.Kind {
	case KindArea, KindPerimeter:
		g = orb.Polygon{ring(r.Points)}
	default:
		g = lineString(r.Points)
	}

	f := geojson.NewFeature(g)
	f.Properties["kind"] = r.Kind.String()
	f.Properties["label"] = r.Summary()
	if r.Distance != nil {
		f.Properties["distance_m"] = r.Distance.Meters
	}
	if len(r.Segments) > 0 {
		segments := make([]float64, len(r.Segments))
		for i, s := range r.Segments {
			segments[i] = s.Meters
		}
		f.Properties["segments_m"] = segments
	}
	if r.Bearing != nil {
		f.Properties["bearing_deg"] = r.Bearing.Degrees
		f.Properties["back_bearing_deg"] = r.Bearing.BackBearing
		f.Properties["bearing_mils"] = r.Bearing.Mils
	}
	if r.Area != nil {
		f.Properties["area_m2"] = r.Area.SquareMeters
	}
	if r.Perimeter != nil {
		f.Properties["perimeter_m"] = r.Perimeter.Meters
	}
	return f
}

// FeatureCollection gathers results into one overlay.
func FeatureCollection(results ...Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range results {
		fc.Append(r.Feature())
	}
	return fc
}

// RangeRingFeature returns a polygon at radius meters around center for
// range ring overlays.
func RangeRingFeature(center coordconv.Geodetic, radius float64, segments int, opts Options) (*geojson.Feature, error) {
	points, err := geodesy.RangeRing(center, radius, segments)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(orb.Polygon{ring(points)})
	f.Properties["kind"] = "range_ring"
	f.Properties["radius_m"] = radius
	f.Properties["label"] = NewDistance(radius, opts).Display
	return f, nil
}
