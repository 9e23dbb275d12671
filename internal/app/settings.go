package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ayusman/airpaint/internal/paint"
	"github.com/ayusman/airpaint/internal/store"
)

// ErrInvalidSetting is returned for unknown keys or unparsable values.
var ErrInvalidSetting = errors.New("invalid setting")

// ApplySettings overlays stored settings on cfg. On any error cfg is
// returned unchanged.
func ApplySettings(cfg paint.Config, values map[string]string) (paint.Config, error) {
	out := cfg
	for key, value := range values {
		var err error
		switch key {
		case store.KeyAlpha:
			out.Alpha, err = strconv.ParseFloat(value, 64)
		case store.KeyBrushThickness:
			out.BrushThickness, err = strconv.Atoi(value)
		case store.KeyEraserThickness:
			out.EraserThickness, err = strconv.Atoi(value)
		case store.KeyBandHeight:
			out.BandHeight, err = strconv.Atoi(value)
		default:
			return cfg, fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
		}
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrInvalidSetting, key, value)
		}
	}

	if err := out.Validate(); err != nil {
		return cfg, err
	}
	return out, nil
}

// SettingsOf returns the tunable values of cfg keyed like the settings table.
func SettingsOf(cfg paint.Config) map[string]string {
	return map[string]string{
		store.KeyAlpha:           strconv.FormatFloat(cfg.Alpha, 'g', -1, 64),
		store.KeyBrushThickness:  strconv.Itoa(cfg.BrushThickness),
		store.KeyEraserThickness: strconv.Itoa(cfg.EraserThickness),
		store.KeyBandHeight:      strconv.Itoa(cfg.BandHeight),
	}
}
