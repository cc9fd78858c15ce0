package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source tells where a config value came from.
type Source struct {
	Kind   SourceKind
	Name   string // for defaults
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // key path -> file position of the winning value
	Files   []string          // files read, includes before their parent
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "skindock", "config.yaml"), nil
}

// Load reads the configuration from DefaultConfigPath.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load keeping the position of every key.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		done:    make(map[string]bool),
		sources: make(map[string]Source),
	}
	raw := RawConfig{}
	if _, err := os.Stat(path); err == nil {
		if raw, err = l.load(path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := BuildEffectiveConfig(raw)
	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			if src, ok := l.sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}
	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader merges a config file over its includes, depth first. A file
// reached twice through different includes is merged once.
type loader struct {
	done    map[string]bool
	stack   []string
	sources map[string]Source
	files   []string
}

func (l *loader) load(path string) (RawConfig, error) {
	file, err := filepath.Abs(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(file); err == nil {
		file = real
	}
	if slices.Contains(l.stack, file) {
		return RawConfig{}, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.stack, " -> "), file)
	}
	if l.done[file] {
		return RawConfig{}, nil
	}
	l.done[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var raw RawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return RawConfig{}, fmt.Errorf("%s: %w", file, err)
	}

	own := make(map[string]Source)
	if len(doc.Content) > 0 {
		recordSources(doc.Content[0], file, "", own)
	}

	l.stack = append(l.stack, file)
	merged := RawConfig{}
	for _, inc := range raw.Include {
		paths, err := includePaths(file, inc)
		if err != nil {
			return RawConfig{}, fmt.Errorf("%s: include %q: %w", FormatSource(own["include"]), inc, err)
		}
		for _, p := range paths {
			incRaw, err := l.load(p)
			if err != nil {
				return RawConfig{}, err
			}
			merged = merged.merge(incRaw)
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	// The including file wins over everything it includes.
	for k, src := range own {
		l.sources[k] = src
	}
	l.files = append(l.files, file)
	return merged.merge(raw), nil
}

// includePaths resolves an include entry against the including file. A
// directory expands to its *.yaml and *.yml files in name order.
func includePaths(from, inc string) ([]string, error) {
	if inc == "" {
		return nil, errors.New("path is empty")
	}
	if inc == "~" || strings.HasPrefix(inc, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		inc = filepath.Join(home, strings.TrimPrefix(inc[1:], "/"))
	}
	if !filepath.IsAbs(inc) {
		inc = filepath.Join(filepath.Dir(from), inc)
	}

	info, err := os.Stat(inc)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{inc}, nil
	}
	entries, err := os.ReadDir(inc)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, ent := range entries {
		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !ent.IsDir() && (ext == ".yaml" || ext == ".yml") {
			out = append(out, filepath.Join(inc, ent.Name()))
		}
	}
	return out, nil
}

// recordSources stores the position of every mapping value under its
// dotted key path. Sequences are recorded as a whole.
func recordSources(node *yaml.Node, file, prefix string, out map[string]Source) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
		recordSources(val, file, key, out)
	}
}
