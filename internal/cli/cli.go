// Package cli implements the gridconv subcommands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tacmap/coordconv"
	"github.com/tacmap/coordconv/internal/config"
)

// Env is what every subcommand shares.
type Env struct {
	Stdout io.Writer
	Config *config.Config
	Logger *slog.Logger
}

// parseGeodetic reads "lat,lon" or the two halves as separate arguments.
func parseGeodetic(args []string) (coordconv.Geodetic, error) {
	if len(args) == 1 {
		args = strings.Split(args[0], ",")
	}
	if len(args) != 2 {
		return coordconv.Geodetic{}, fmt.Errorf("expected latitude and longitude, got %q", strings.Join(args, " "))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return coordconv.Geodetic{}, fmt.Errorf("latitude %q: %w", args[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
	if err != nil {
		return coordconv.Geodetic{}, fmt.Errorf("longitude %q: %w", args[1], err)
	}
	return coordconv.NewGeodetic(lat, lon)
}

// parsePoints reads one "lat,lon" per argument.
func parsePoints(args []string) ([]coordconv.Geodetic, error) {
	points := make([]coordconv.Geodetic, 0, len(args))
	for _, a := range args {
		p, err := parseGeodetic([]string{a})
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// gridSystem picks the strategy from the flags, falling back to the config
// for whichever is unset.
func gridSystem(env Env, name string, precision int) (coordconv.GridSystem, error) {
	if name == "" && precision == 0 {
		return env.Config.GridSystem()
	}
	if name == "" {
		name = env.Config.Grid.System
	}
	p := coordconv.Precision(precision)
	if precision == 0 {
		p = env.Config.Precision()
	}
	return coordconv.GridSystemByName(name, p)
}
