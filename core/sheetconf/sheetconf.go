// Package sheetconf loads panel tuning from toml files and environment variables.
package sheetconf

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jmigpin/sheet/core/sheet"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "SHEETSIM"

// File layout of the config file. Env var overrides use the prefix and the key path (ex: SHEETSIM_FLING_MIN).
type File struct {
	Panel  PanelSection  `toml:"panel" mapstructure:"panel"`
	Touch  TouchSection  `toml:"touch" mapstructure:"touch"`
	Fling  FlingSection  `toml:"fling" mapstructure:"fling"`
	Settle SettleSection `toml:"settle" mapstructure:"settle"`
}

type PanelSection struct {
	Peek         float64 `toml:"peek" mapstructure:"peek"`
	HalfExpanded bool    `toml:"half_expanded" mapstructure:"half_expanded"`
	HalfRatio    float64 `toml:"half_ratio" mapstructure:"half_ratio"`
	InitialState string  `toml:"initial_state" mapstructure:"initial_state"`
	Draggable    bool    `toml:"draggable" mapstructure:"draggable"`
}

type TouchSection struct {
	DensityDPI float64 `toml:"density_dpi" mapstructure:"density_dpi"`
	Slop       float64 `toml:"slop" mapstructure:"slop"`
}

type FlingSection struct {
	Min               float64 `toml:"min" mapstructure:"min"`
	Max               float64 `toml:"max" mapstructure:"max"`
	ThresholdFraction float64 `toml:"threshold_fraction" mapstructure:"threshold_fraction"`
}

type SettleSection struct {
	Speed float64 `toml:"speed" mapstructure:"speed"`
}

//----------

func FromConfig(cfg sheet.Config) File {
	return File{
		Panel: PanelSection{
			Peek:         cfg.PeekDp,
			HalfExpanded: cfg.HalfExpandedEnabled,
			HalfRatio:    cfg.HalfExpandedRatio,
			InitialState: cfg.InitialState.String(),
			Draggable:    cfg.Draggable,
		},
		Touch: TouchSection{
			DensityDPI: cfg.DensityDPI,
			Slop:       cfg.TouchSlopDp,
		},
		Fling: FlingSection{
			Min:               cfg.MinFlingDp,
			Max:               cfg.MaxFlingDp,
			ThresholdFraction: cfg.FlingThresholdFraction,
		},
		Settle: SettleSection{Speed: cfg.SettleSpeedDp},
	}
}

func (f *File) Config() (sheet.Config, error) {
	st, err := sheet.ParseState(f.Panel.InitialState)
	if err != nil {
		return sheet.Config{}, errors.Wrapf(sheet.ErrInvalidConfig, "initial state: %v", err)
	}
	cfg := sheet.Config{
		DensityDPI:             f.Touch.DensityDPI,
		PeekDp:                 f.Panel.Peek,
		HalfExpandedEnabled:    f.Panel.HalfExpanded,
		HalfExpandedRatio:      f.Panel.HalfRatio,
		TouchSlopDp:            f.Touch.Slop,
		MinFlingDp:             f.Fling.Min,
		MaxFlingDp:             f.Fling.Max,
		FlingThresholdFraction: f.Fling.ThresholdFraction,
		SettleSpeedDp:          f.Settle.Speed,
		InitialState:           st,
		Draggable:              f.Panel.Draggable,
	}
	if err := cfg.Validate(); err != nil {
		return sheet.Config{}, err
	}
	return cfg, nil
}

//----------

// Reads the config file at path (or $SHEETSIM_CONFIG) if any, then applies env overrides on top of the defaults.
func Load(path string) (sheet.Config, error) {
	v := newViper(true)
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return sheet.Config{}, errors.Wrap(err, "read config")
		}
	}
	return unmarshal(v)
}

// Parses a toml config with no env overrides. Used by replay archives.
func Parse(data []byte) (sheet.Config, error) {
	v := newViper(false)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return sheet.Config{}, errors.Wrap(err, "parse config")
	}
	return unmarshal(v)
}

func WriteDefault(w io.Writer) error {
	return Write(w, sheet.DefaultConfig())
}

func Write(w io.Writer, cfg sheet.Config) error {
	f := FromConfig(cfg)
	return toml.NewEncoder(w).Encode(&f)
}

//----------

func newViper(env bool) *viper.Viper {
	v := viper.New()

	// default values
	d := FromConfig(sheet.DefaultConfig())
	v.SetDefault("panel.peek", d.Panel.Peek)
	v.SetDefault("panel.half_expanded", d.Panel.HalfExpanded)
	v.SetDefault("panel.half_ratio", d.Panel.HalfRatio)
	v.SetDefault("panel.initial_state", d.Panel.InitialState)
	v.SetDefault("panel.draggable", d.Panel.Draggable)
	v.SetDefault("touch.density_dpi", d.Touch.DensityDPI)
	v.SetDefault("touch.slop", d.Touch.Slop)
	v.SetDefault("fling.min", d.Fling.Min)
	v.SetDefault("fling.max", d.Fling.Max)
	v.SetDefault("fling.threshold_fraction", d.Fling.ThresholdFraction)
	v.SetDefault("settle.speed", d.Settle.Speed)

	v.SetConfigType("toml")

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}
	return v
}

func unmarshal(v *viper.Viper) (sheet.Config, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return sheet.Config{}, errors.Wrap(err, "unmarshal config")
	}
	return f.Config()
}
