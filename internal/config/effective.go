package config

import (
	"fmt"
)

// ValidationError reports an invalid value together with its YAML path and,
// when known, the file position it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw overrides on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Magnet != nil {
		cfg.Magnet = *raw.Magnet
	}
	if raw.Transparency != nil {
		cfg.Transparency = *raw.Transparency
	}
	if raw.Alpha != nil {
		cfg.Alpha = *raw.Alpha
	}
	if raw.MoveAlpha != nil {
		cfg.MoveAlpha = *raw.MoveAlpha
	}
	if raw.Skin != nil {
		cfg.Skin = *raw.Skin
	}
	if raw.StateFile != nil {
		cfg.StateFile = *raw.StateFile
	}
	if raw.WorkArea != nil {
		if raw.WorkArea.X != nil {
			cfg.WorkArea.X = *raw.WorkArea.X
		}
		if raw.WorkArea.Y != nil {
			cfg.WorkArea.Y = *raw.WorkArea.Y
		}
		if raw.WorkArea.Width != nil {
			cfg.WorkArea.Width = *raw.WorkArea.Width
		}
		if raw.WorkArea.Height != nil {
			cfg.WorkArea.Height = *raw.WorkArea.Height
		}
	}
	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.WatchSkin != nil {
		cfg.WatchSkin = *raw.WatchSkin
	}
	if raw.DragTimeout != nil {
		cfg.DragTimeout = *raw.DragTimeout
	}
	return cfg
}
