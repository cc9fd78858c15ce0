package skinfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/skindock/internal/skin"
)

// WindowState is the saved geometry of one window.
type WindowState struct {
	Layout  string `yaml:"layout"`
	Left    int    `yaml:"left"`
	Top     int    `yaml:"top"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Visible bool   `yaml:"visible"`
}

// State records where the user left the skin windows, keyed by window id.
type State struct {
	Windows map[string]WindowState `yaml:"windows"`
}

// Capture records the current geometry of windows.
func Capture(windows []*skin.Window) State {
	s := State{Windows: make(map[string]WindowState, len(windows))}
	for _, w := range windows {
		ws := WindowState{
			Left:    w.Left(),
			Top:     w.Top(),
			Width:   w.Width(),
			Height:  w.Height(),
			Visible: w.Visible(),
		}
		if l := w.ActiveLayout(); l != nil {
			ws.Layout = l.ID
		}
		s.Windows[w.ID] = ws
	}
	return s
}

// Apply restores saved geometry onto matching windows and returns how many
// windows were restored. Entries for unknown windows or layouts are skipped.
func (s State) Apply(windows []*skin.Window) int {
	n := 0
	for _, w := range windows {
		ws, ok := s.Windows[w.ID]
		if !ok {
			continue
		}
		if ws.Layout != "" {
			if err := w.SetActiveLayout(ws.Layout); err != nil {
				continue
			}
		}
		if ws.Width > 0 && ws.Height > 0 {
			w.Resize(ws.Width, ws.Height)
		}
		w.Move(ws.Left, ws.Top)
		w.SetVisible(ws.Visible)
		n++
	}
	return n
}

// LoadState reads a state file. A missing file yields an empty state.
func LoadState(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{Windows: map[string]WindowState{}}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}
	if s.Windows == nil {
		s.Windows = map[string]WindowState{}
	}
	return s, nil
}

// SaveState writes s to path atomically, creating parent directories.
func SaveState(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
