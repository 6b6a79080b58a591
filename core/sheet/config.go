package sheet

import (
	"math"

	"github.com/pkg/errors"
)

// Distances and velocities are in density independent units (dp); DensityDPI converts them to pixels (160dpi: 1dp=1px).
type Config struct {
	DensityDPI float64

	PeekDp              float64 // distance between the expanded and collapsed anchors
	HalfExpandedEnabled bool    // only used by axes that support it
	HalfExpandedRatio   float64 // 0=collapsed, 1=expanded

	TouchSlopDp float64

	MinFlingDp             float64 // dp/s
	MaxFlingDp             float64 // dp/s
	FlingThresholdFraction float64 // fraction between min and max fling below which a release is a slow drag

	SettleSpeedDp float64 // minimum settle speed, dp/s

	InitialState State
	Draggable    bool
}

func DefaultConfig() Config {
	return Config{
		DensityDPI:             160,
		PeekDp:                 56,
		HalfExpandedRatio:      0.5,
		TouchSlopDp:            8,
		MinFlingDp:             50,
		MaxFlingDp:             8000,
		FlingThresholdFraction: 0.1,
		SettleSpeedDp:          1500,
		InitialState:           Collapsed,
		Draggable:              true,
	}
}

func (cfg *Config) Validate() error {
	bad := func(f string, a ...any) error {
		return errors.Wrapf(ErrInvalidConfig, f, a...)
	}
	if !(cfg.DensityDPI > 0) {
		return bad("density dpi: %v", cfg.DensityDPI)
	}
	if !(cfg.PeekDp > 0) {
		return bad("peek: %v", cfg.PeekDp)
	}
	if !(cfg.HalfExpandedRatio >= 0 && cfg.HalfExpandedRatio <= 1) {
		return bad("half expanded ratio: %v", cfg.HalfExpandedRatio)
	}
	if !(cfg.TouchSlopDp >= 0) {
		return bad("touch slop: %v", cfg.TouchSlopDp)
	}
	if !(cfg.MinFlingDp >= 0 && cfg.MaxFlingDp >= cfg.MinFlingDp) {
		return bad("fling range: %v..%v", cfg.MinFlingDp, cfg.MaxFlingDp)
	}
	if !(cfg.FlingThresholdFraction >= 0 && cfg.FlingThresholdFraction <= 1) {
		return bad("fling threshold fraction: %v", cfg.FlingThresholdFraction)
	}
	if !(cfg.SettleSpeedDp > 0) {
		return bad("settle speed: %v", cfg.SettleSpeedDp)
	}
	if !cfg.InitialState.Stable() {
		return bad("initial state: %v", cfg.InitialState)
	}
	return nil
}

//----------

func (cfg Config) Density() float64 {
	return cfg.DensityDPI / 160
}

func (cfg Config) dpToPx(v float64) float64 {
	return v * cfg.Density()
}

func (cfg Config) PeekPx() int {
	return int(math.Round(cfg.dpToPx(cfg.PeekDp)))
}

func (cfg Config) TouchSlopPx() int {
	return int(math.Round(cfg.dpToPx(cfg.TouchSlopDp)))
}

func (cfg Config) SettleSpeedPx() float64 {
	return cfg.dpToPx(cfg.SettleSpeedDp)
}

// Release velocities (px/s) below this value settle by position.
func (cfg Config) FlingThresholdPx() float64 {
	min := cfg.dpToPx(cfg.MinFlingDp)
	max := cfg.dpToPx(cfg.MaxFlingDp)
	return min + cfg.FlingThresholdFraction*(max-min)
}
