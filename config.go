package easel

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Tuning carries the interaction constants of a canvas. Values are loadable
// from a TOML file so designers can adjust drag feel without a rebuild.
type Tuning struct {
	// SnapThreshold is the snap distance in device pixels at zoom 1. The
	// effective scene-space threshold divides by the current zoom.
	SnapThreshold float64 `toml:"snap_threshold"`

	// DragDeadZone is the pointer travel in pixels below which a press is
	// not yet a drag.
	DragDeadZone float64 `toml:"drag_dead_zone"`

	// OpticalNudge is the downward correction for horizontally-centered
	// single-line text, as a fraction of font size.
	OpticalNudge float64 `toml:"optical_nudge"`

	// IndicatorFade is the fade-in duration, in seconds, of insertion
	// indicators and drop highlights.
	IndicatorFade float64 `toml:"indicator_fade"`

	// LogLevel selects canvas logging: "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
}

// DefaultTuning returns the stock interaction constants.
func DefaultTuning() Tuning {
	return Tuning{
		SnapThreshold: 5,
		DragDeadZone:  4,
		OpticalNudge:  defaultOpticalNudge,
		IndicatorFade: 0.12,
		LogLevel:      "warn",
	}
}

// LoadTuning reads a TOML tuning file, filling unset keys with defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("load tuning: %w", err)
	}
	return t, nil
}

// ParseTuning decodes TOML tuning data, filling unset keys with defaults.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := toml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("parse tuning: %w", err)
	}
	return t, nil
}
