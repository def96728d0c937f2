package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/tacmap/coordconv"
	"github.com/tacmap/coordconv/units"
)

// Config holds the gridconv configuration.
type Config struct {
	Grid    GridConfig    `mapstructure:"grid"`
	Display DisplayConfig `mapstructure:"display"`
	Log     LogConfig     `mapstructure:"log"`
}

type GridConfig struct {
	System    string `mapstructure:"system"`
	Precision int    `mapstructure:"precision"`
}

type DisplayConfig struct {
	Mils         string `mapstructure:"mils"`
	DistanceUnit string `mapstructure:"distance_unit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional gridconv.yaml and
// environment variables, in increasing priority. A non-empty file names the
// config file explicitly, in which case it must exist.
func Load(file string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("grid.system", coordconv.GridMGRS)
	v.SetDefault("grid.precision", int(coordconv.Precision1m))
	v.SetDefault("display.mils", "nato")
	v.SetDefault("display.distance_unit", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("gridconv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gridconv")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: GRIDCONV_GRID_SYSTEM → grid.system
	v.SetEnvPrefix("GRIDCONV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := coordconv.GridSystemByName(c.Grid.System, coordconv.Precision1m); err != nil {
		errs = append(errs, fmt.Sprintf("grid.system must be mgrs, utm or bng, got %q", c.Grid.System))
	}
	if !coordconv.Precision(c.Grid.Precision).Valid() {
		errs = append(errs, fmt.Sprintf("grid.precision must be 1-5, got %d", c.Grid.Precision))
	}
	if _, err := units.ParseMilScale(c.Display.Mils); err != nil {
		errs = append(errs, fmt.Sprintf("display.mils must be nato or warsaw, got %q", c.Display.Mils))
	}
	if _, err := units.ParseDistanceUnit(c.Display.DistanceUnit); err != nil {
		errs = append(errs, fmt.Sprintf("display.distance_unit must be auto, m, km, mi, nmi, ft or yd, got %q", c.Display.DistanceUnit))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// GridSystem returns the configured grid strategy.
func (c *Config) GridSystem() (coordconv.GridSystem, error) {
	return coordconv.GridSystemByName(c.Grid.System, c.Precision())
}

// Precision returns the configured MGRS/BNG precision.
func (c *Config) Precision() coordconv.Precision {
	return coordconv.Precision(c.Grid.Precision)
}

// MilScale returns the configured mil convention.
func (c *Config) MilScale() units.MilScale {
	s, _ := units.ParseMilScale(c.Display.Mils)
	return s
}

// DistanceUnit returns the configured display unit for distances.
func (c *Config) DistanceUnit() units.DistanceUnit {
	u, _ := units.ParseDistanceUnit(c.Display.DistanceUnit)
	return u
}
