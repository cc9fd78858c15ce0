package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/skindock/internal/skin"
)

// WorkArea overrides the usable screen region reported by the backend.
// A zero width or height means "ask the backend".
type WorkArea struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// IsSet reports whether the override carries a usable rectangle.
func (w WorkArea) IsSet() bool {
	return w.Width > 0 && w.Height > 0
}

// Rect converts the override to a skin rectangle.
func (w WorkArea) Rect() skin.Rect {
	return skin.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Backend names accepted by the backend key.
const (
	BackendAuto     = "auto"
	BackendX11      = "x11"
	BackendHeadless = "headless"
)

const (
	DefaultMagnet    = 15
	DefaultAlpha     = 255
	DefaultMoveAlpha = 160

	DefaultDragTimeout = 30
)

// Config is the effective daemon configuration.
type Config struct {
	// Magnet is the distance in pixels at which dragged windows snap to
	// the work-area edges. 0 disables edge snapping.
	Magnet       int    `yaml:"magnet"`
	Transparency bool   `yaml:"transparency"`
	Alpha        int    `yaml:"alpha"`      // 1-255, idle opacity
	MoveAlpha    int    `yaml:"move_alpha"` // 1-255, opacity while dragging
	Skin         string `yaml:"skin"`
	// StateFile records window positions between daemon runs.
	StateFile string   `yaml:"state_file"`
	WorkArea  WorkArea `yaml:"work_area"`
	Backend   string   `yaml:"backend"`
	// Display overrides $DISPLAY for the X11 backend.
	Display   string `yaml:"display,omitempty"`
	LogLevel  string `yaml:"log_level"`
	WatchSkin bool   `yaml:"watch_skin"`
	// DragTimeout is how many seconds a drag session may go without a move
	// before the daemon ends it. 0 disables the timeout.
	DragTimeout int `yaml:"drag_timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Magnet:    DefaultMagnet,
		Alpha:     DefaultAlpha,
		MoveAlpha: DefaultMoveAlpha,
		Skin:      "~/.config/skindock/skin.yaml",
		StateFile: "~/.local/state/skindock/windows.yaml",
		Backend:   BackendAuto,
		LogLevel:  "info",
		WatchSkin: true,

		DragTimeout: DefaultDragTimeout,
	}
}

func (c *Config) Validate() error {
	if c.Magnet < 0 {
		return &ValidationError{Path: "magnet", Err: fmt.Errorf("magnet must be >= 0")}
	}
	if c.Alpha < 1 || c.Alpha > 255 {
		return &ValidationError{Path: "alpha", Err: fmt.Errorf("alpha must be between 1 and 255")}
	}
	if c.MoveAlpha < 1 || c.MoveAlpha > 255 {
		return &ValidationError{Path: "move_alpha", Err: fmt.Errorf("move_alpha must be between 1 and 255")}
	}
	if strings.TrimSpace(c.Skin) == "" {
		return &ValidationError{Path: "skin", Err: fmt.Errorf("skin is required")}
	}
	if c.DragTimeout < 0 {
		return &ValidationError{Path: "drag_timeout", Err: fmt.Errorf("drag_timeout must be >= 0")}
	}
	if c.WorkArea.Width < 0 || c.WorkArea.Height < 0 {
		return &ValidationError{Path: "work_area", Err: fmt.Errorf("work_area width and height must be >= 0")}
	}
	switch c.Backend {
	case BackendAuto, BackendX11, BackendHeadless:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, headless")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// DragIdleTimeout returns drag_timeout as a duration; 0 means never.
func (c *Config) DragIdleTimeout() time.Duration {
	return time.Duration(c.DragTimeout) * time.Second
}

// SkinPath returns the skin file path with a leading ~ expanded.
func (c *Config) SkinPath() (string, error) {
	return expandHome(c.Skin)
}

// StatePath returns the window state file path with a leading ~ expanded.
// An empty state_file disables persistence and yields "".
func (c *Config) StatePath() (string, error) {
	if strings.TrimSpace(c.StateFile) == "" {
		return "", nil
	}
	return expandHome(c.StateFile)
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
