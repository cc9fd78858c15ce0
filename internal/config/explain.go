package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	magnet
//	transparency
//	alpha
//	move_alpha
//	skin
//	state_file
//	work_area
//	work_area.x | y | width | height
//	backend
//	display
//	log_level
//	watch_skin
//	drag_timeout
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// FormatSource renders a source the way `config explain` prints it.
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	case SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "work_area" {
		if len(parts) == 1 {
			return cfg.WorkArea, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "x":
			return cfg.WorkArea.X, nil
		case "y":
			return cfg.WorkArea.Y, nil
		case "width":
			return cfg.WorkArea.Width, nil
		case "height":
			return cfg.WorkArea.Height, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	}

	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	switch path {
	case "magnet":
		return cfg.Magnet, nil
	case "transparency":
		return cfg.Transparency, nil
	case "alpha":
		return cfg.Alpha, nil
	case "move_alpha":
		return cfg.MoveAlpha, nil
	case "skin":
		return cfg.Skin, nil
	case "state_file":
		return cfg.StateFile, nil
	case "backend":
		return cfg.Backend, nil
	case "display":
		return cfg.Display, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "watch_skin":
		return cfg.WatchSkin, nil
	case "drag_timeout":
		return cfg.DragTimeout, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
