package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tacmap/coordconv"
	"github.com/tacmap/coordconv/internal/config"
	"github.com/tacmap/coordconv/units"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Grid.System != "mgrs" || cfg.Precision() != coordconv.Precision1m {
		t.Errorf("unexpected grid defaults %+v", cfg.Grid)
	}
	if cfg.MilScale() != units.NATOMils || cfg.DistanceUnit() != units.DistanceAuto {
		t.Errorf("unexpected display defaults %+v", cfg.Display)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
	gs, err := cfg.GridSystem()
	if err != nil || gs.Name() != coordconv.GridMGRS {
		t.Errorf("GridSystem() = %v, %v", gs, err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "gridconv.yaml")
	yaml := `grid:
  system: bng
  precision: 3
display:
  mils: warsaw
  distance_unit: nmi
`
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Grid.System != "bng" || cfg.Precision() != coordconv.Precision100m {
		t.Errorf("unexpected grid %+v", cfg.Grid)
	}
	if cfg.MilScale() != units.WarsawMils || cfg.DistanceUnit() != units.NauticalMiles {
		t.Errorf("unexpected display %+v", cfg.Display)
	}

	// the environment overrides the file
	t.Setenv("GRIDCONV_GRID_SYSTEM", "utm")
	t.Setenv("GRIDCONV_LOG_LEVEL", "debug")
	cfg, err = config.Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Grid.System != "utm" || cfg.Log.Level != "debug" {
		t.Errorf("environment not applied: %+v", cfg)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Config{
		Grid:    config.GridConfig{System: "georef", Precision: 7},
		Display: config.DisplayConfig{Mils: "grad", DistanceUnit: "furlong"},
		Log:     config.LogConfig{Level: "loud", Format: "xml"},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	for _, key := range []string{"grid.system", "grid.precision", "display.mils", "display.distance_unit", "log.level", "log.format"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected %s in %q", key, err)
		}
	}

	cfg = config.Config{
		Grid:    config.GridConfig{System: "MGRS", Precision: 1},
		Display: config.DisplayConfig{Mils: "nato", DistanceUnit: "km"},
		Log:     config.LogConfig{Level: "warn", Format: "json"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}
