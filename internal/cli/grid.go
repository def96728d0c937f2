package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/tacmap/coordconv/units"
)

// Grid converts a latitude/longitude to a grid reference.
func Grid(env Env, flagSet *flag.FlagSet, args []string) error {
	systemPtr := flagSet.String("system", "", "Grid system: mgrs, utm or bng (default from config)")
	precisionPtr := flagSet.Int("precision", 0, "Digits per axis, 1 (10 km) to 5 (1 m) (default from config)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	g, err := parseGeodetic(flagSet.Args())
	if err != nil {
		return err
	}
	gs, err := gridSystem(env, *systemPtr, *precisionPtr)
	if err != nil {
		return err
	}
	if !gs.CoverageContains(g) {
		env.Logger.Debug("outside coverage", "system", gs.Name(), "position", g.String())
	}
	ref, err := gs.Encode(g)
	if err != nil {
		return err
	}
	env.Logger.Debug("encoded", "system", gs.Name(), "position", g.String(), "reference", ref.String())

	_, err = fmt.Fprintln(env.Stdout, ref)
	return err
}

// Geo converts a grid reference back to latitude/longitude.
func Geo(env Env, flagSet *flag.FlagSet, args []string) error {
	systemPtr := flagSet.String("system", "", "Grid system: mgrs, utm or bng (default from config)")
	formatPtr := flagSet.String("format", "dd", "Output format: dd, dms or raw")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return fmt.Errorf("no grid reference given")
	}

	gs, err := gridSystem(env, *systemPtr, 0)
	if err != nil {
		return err
	}
	ref, err := gs.Decode(strings.Join(flagSet.Args(), " "))
	if err != nil {
		return err
	}
	g, err := ref.Geodetic()
	if err != nil {
		return err
	}

	var out string
	switch *formatPtr {
	case "dd":
		out = units.FormatDecimalDegrees(g.Latitude, g.Longitude)
	case "dms":
		out = units.FormatDMS(g.Latitude, g.Longitude)
	case "raw":
		out = g.String()
	default:
		return fmt.Errorf("unknown format %q", *formatPtr)
	}
	_, err = fmt.Fprintln(env.Stdout, out)
	return err
}
