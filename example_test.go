package coordconv_test

import (
	"fmt"

	"github.com/tacmap/coordconv"
)

func ExampleMGRSFromGeodetic() {
	mgrs, _ := coordconv.MGRSFromGeodetic(coordconv.Geodetic{Latitude: 0, Longitude: 0}, coordconv.Precision1m)
	fmt.Println(mgrs)
	// Output: 31N AA 66021 00000
}

func ExampleParseMGRS() {
	geo, _ := coordconv.ParseMGRS("16SGC3855124838")
	fmt.Println(geo)
	// Output: 33.636667, -84.428052
}

func ExampleGridSystemByName() {
	grid, _ := coordconv.GridSystemByName("mgrs", coordconv.Precision100m)
	ref, _ := grid.Encode(coordconv.Geodetic{Latitude: 38.8895, Longitude: -77.0352})
	fmt.Println(ref)
	// Output: 18S UJ 234 064
}
