// Package skinfile loads the YAML description of skin windows, layouts and
// anchors and turns it into the skin object graph.
package skinfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/skindock/internal/curve"
	"github.com/1broseidon/skindock/internal/skin"
)

// File is a decoded skin file.
type File struct {
	Path    string       `yaml:"-"`
	Windows []WindowSpec `yaml:"windows"`
}

type WindowSpec struct {
	ID           string       `yaml:"id"`
	Left         int          `yaml:"left"`
	Top          int          `yaml:"top"`
	Visible      bool         `yaml:"visible"`
	X11Class     string       `yaml:"x11_class,omitempty"`
	ActiveLayout string       `yaml:"active_layout,omitempty"`
	Layouts      []LayoutSpec `yaml:"layouts"`
}

type LayoutSpec struct {
	ID        string       `yaml:"id"`
	Width     int          `yaml:"width"`
	Height    int          `yaml:"height"`
	MinWidth  int          `yaml:"min_width,omitempty"`
	MinHeight int          `yaml:"min_height,omitempty"`
	MaxWidth  int          `yaml:"max_width,omitempty"`  // 0 = unlimited
	MaxHeight int          `yaml:"max_height,omitempty"` // 0 = unlimited
	Anchors   []AnchorSpec `yaml:"anchors,omitempty"`
}

// AnchorSpec describes one anchor. Points are [x, y] pairs relative to the
// anchor position; a single pair makes a point anchor. Filter picks which
// curve samples are kept: both (default), x or y.
type AnchorSpec struct {
	Name     string      `yaml:"name"`
	X        int         `yaml:"x"`
	Y        int         `yaml:"y"`
	Ref      string      `yaml:"ref,omitempty"`
	Points   [][]float64 `yaml:"points"`
	Filter   string      `yaml:"filter,omitempty"`
	Range    int         `yaml:"range"`
	Priority int         `yaml:"priority"`
}

// Skin is the object graph built from a File.
type Skin struct {
	// Windows in declaration order.
	Windows []*skin.Window
	// Classes maps window ids to the X11 WM_CLASS they are bound to.
	Classes map[string]string
}

// Window returns the window with the given id.
func (s *Skin) Window(id string) (*skin.Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// Load reads and decodes the skin file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a skin document. name is used in error messages.
func Parse(data []byte, name string) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	f.Path = name
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &f, nil
}

// Validate checks the structure of the file without building anything.
func (f *File) Validate() error {
	if len(f.Windows) == 0 {
		return fmt.Errorf("windows: at least one window is required")
	}
	seen := make(map[string]struct{}, len(f.Windows))
	for i, w := range f.Windows {
		path := fmt.Sprintf("windows[%d]", i)
		if strings.TrimSpace(w.ID) == "" {
			return fmt.Errorf("%s.id: must not be empty", path)
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("%s.id: duplicate window id %q", path, w.ID)
		}
		seen[w.ID] = struct{}{}
		if err := w.validate(path); err != nil {
			return err
		}
	}
	return nil
}

func (w WindowSpec) validate(path string) error {
	if len(w.Layouts) == 0 {
		return fmt.Errorf("%s.layouts: window %q has no layouts", path, w.ID)
	}
	layouts := make(map[string]struct{}, len(w.Layouts))
	for i, l := range w.Layouts {
		lpath := fmt.Sprintf("%s.layouts[%d]", path, i)
		if strings.TrimSpace(l.ID) == "" {
			return fmt.Errorf("%s.id: must not be empty", lpath)
		}
		if _, dup := layouts[l.ID]; dup {
			return fmt.Errorf("%s.id: duplicate layout id %q", lpath, l.ID)
		}
		layouts[l.ID] = struct{}{}
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("%s: width and height must be > 0", lpath)
		}
		if (l.MaxWidth > 0 && l.MaxWidth < l.MinWidth) || (l.MaxHeight > 0 && l.MaxHeight < l.MinHeight) {
			return fmt.Errorf("%s: max size is smaller than min size", lpath)
		}
		for j, a := range l.Anchors {
			if err := a.validate(fmt.Sprintf("%s.anchors[%d]", lpath, j)); err != nil {
				return err
			}
		}
	}
	if w.ActiveLayout != "" {
		if _, ok := layouts[w.ActiveLayout]; !ok {
			return fmt.Errorf("%s.active_layout: unknown layout %q", path, w.ActiveLayout)
		}
	}
	return nil
}

func (a AnchorSpec) validate(path string) error {
	if len(a.Points) == 0 {
		return fmt.Errorf("%s.points: %w", path, curve.ErrNoControlPoints)
	}
	for i, p := range a.Points {
		if len(p) != 2 {
			return fmt.Errorf("%s.points[%d]: want [x, y], got %d values", path, i, len(p))
		}
	}
	if a.Range < 0 {
		return fmt.Errorf("%s.range: must be >= 0", path)
	}
	if _, err := skin.ParseRef(a.Ref); err != nil {
		return fmt.Errorf("%s.ref: %w", path, err)
	}
	if _, err := curve.ParseFilter(a.Filter); err != nil {
		return fmt.Errorf("%s.filter: %w", path, err)
	}
	return nil
}

// Build creates the windows described by the file. Windows start with the
// visibility given in the file and no surface.
func (f *File) Build() (*Skin, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := &Skin{Classes: make(map[string]string)}
	for _, ws := range f.Windows {
		w := skin.NewWindow(ws.ID, ws.Left, ws.Top)
		for _, ls := range ws.Layouts {
			l := skin.NewLayout(ls.ID, ls.Width, ls.Height)
			l.SetSizeLimits(ls.MinWidth, ls.MinHeight, ls.MaxWidth, ls.MaxHeight)
			for _, as := range ls.Anchors {
				ref, _ := skin.ParseRef(as.Ref)
				pos := skin.At(as.X, as.Y)
				pos.Ref = ref
				filter, _ := curve.ParseFilter(as.Filter)
				c, err := curve.NewFiltered(toPoints(as.Points), filter)
				if err != nil {
					return nil, fmt.Errorf("window %q layout %q anchor %q: %w", ws.ID, ls.ID, as.Name, err)
				}
				skin.NewAnchor(l, as.Name, pos, c, as.Range, as.Priority)
			}
			if err := w.AddLayout(l); err != nil {
				return nil, err
			}
		}
		if ws.ActiveLayout != "" {
			if err := w.SetActiveLayout(ws.ActiveLayout); err != nil {
				return nil, err
			}
		}
		w.SetVisible(ws.Visible)
		if ws.X11Class != "" {
			out.Classes[ws.ID] = ws.X11Class
		}
		out.Windows = append(out.Windows, w)
	}
	return out, nil
}

// LoadSkin loads and builds the skin file at path.
func LoadSkin(path string) (*Skin, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func toPoints(pairs [][]float64) []curve.Point {
	pts := make([]curve.Point, len(pairs))
	for i, p := range pairs {
		pts[i] = curve.Point{X: p[0], Y: p[1]}
	}
	return pts
}
