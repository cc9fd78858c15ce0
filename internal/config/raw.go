package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWorkArea struct {
	X      *int `yaml:"x"`
	Y      *int `yaml:"y"`
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

// RawConfig mirrors Config with optional fields so that files can be
// layered: a nil field leaves the value below it untouched.
type RawConfig struct {
	Include      IncludeList  `yaml:"include"`
	Magnet       *int         `yaml:"magnet"`
	Transparency *bool        `yaml:"transparency"`
	Alpha        *int         `yaml:"alpha"`
	MoveAlpha    *int         `yaml:"move_alpha"`
	Skin         *string      `yaml:"skin"`
	StateFile    *string      `yaml:"state_file"`
	WorkArea     *RawWorkArea `yaml:"work_area"`
	Backend      *string      `yaml:"backend"`
	Display      *string      `yaml:"display"`
	LogLevel     *string      `yaml:"log_level"`
	WatchSkin    *bool        `yaml:"watch_skin"`
	DragTimeout  *int         `yaml:"drag_timeout"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Magnet != nil {
		out.Magnet = overlay.Magnet
	}
	if overlay.Transparency != nil {
		out.Transparency = overlay.Transparency
	}
	if overlay.Alpha != nil {
		out.Alpha = overlay.Alpha
	}
	if overlay.MoveAlpha != nil {
		out.MoveAlpha = overlay.MoveAlpha
	}
	if overlay.Skin != nil {
		out.Skin = overlay.Skin
	}
	if overlay.StateFile != nil {
		out.StateFile = overlay.StateFile
	}
	if overlay.WorkArea != nil {
		base := RawWorkArea{}
		if out.WorkArea != nil {
			base = *out.WorkArea
		}
		merged := mergeRawWorkArea(base, *overlay.WorkArea)
		out.WorkArea = &merged
	}
	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.WatchSkin != nil {
		out.WatchSkin = overlay.WatchSkin
	}
	if overlay.DragTimeout != nil {
		out.DragTimeout = overlay.DragTimeout
	}
	return out
}

func mergeRawWorkArea(base RawWorkArea, overlay RawWorkArea) RawWorkArea {
	out := base
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}
