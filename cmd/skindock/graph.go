package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/1broseidon/skindock/internal/config"
	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skinfile"
)

const svgTimeout = 30 * time.Second

// emitGraph writes g in format to the file at out, or to stdout when out
// is empty.
func emitGraph(g skinfile.Graph, format, out string) error {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeGraph(w, g, format)
}

func writeGraph(w io.Writer, g skinfile.Graph, format string) error {
	switch format {
	case "text", "":
		return skinfile.WriteText(w, g)
	case "dot":
		return skinfile.WriteDOT(w, g)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	case "svg":
		ctx, cancel := context.WithTimeout(context.Background(), svgTimeout)
		defer cancel()
		svg, err := skinfile.RenderSVG(ctx, skinfile.ToDOT(g))
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		return fmt.Errorf("unknown graph format %q (want text, dot, svg or json)", format)
	}
}

// offlineGraph builds the docking graph of a skin file without a daemon.
func offlineGraph(sk *skinfile.Skin, cfg *config.Config) skinfile.Graph {
	engine := docking.New(docking.Options{Magnet: cfg.Magnet})
	for _, w := range sk.Windows {
		engine.Register(w)
	}
	return skinfile.GraphOf(engine)
}

func printSkinUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  skindock skin validate [--skin PATH]")
	fmt.Fprintln(w, "  skindock skin graph [--skin PATH] [--format text|dot|svg|json] [--out FILE]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without --skin the skin configured in config.yaml is used.")
}

func runSkin(args []string) int {
	if len(args) == 0 {
		printSkinUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printSkinUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		fs := newFlagSet("validate", "skin validate [--skin PATH]", "Check that a skin file parses and every anchor is well formed.")
		skinPath := fs.String("skin", "", "Skin file path (default: skin from config)")
		if code := parseFlags(fs, args[1:]); code >= 0 {
			return code
		}
		sk, _, err := loadSkinArg(*skinPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("skin: ok (%d windows)\n", len(sk.Windows))
		return 0

	case "graph":
		fs := newFlagSet("graph", "skin graph [--skin PATH] [--format text|dot|svg|json] [--out FILE]", "Print which windows move together when a window is dragged.")
		skinPath := fs.String("skin", "", "Skin file path (default: skin from config)")
		format := fs.String("format", "text", "Output format: text, dot, svg or json")
		out := fs.String("out", "", "Write to FILE instead of stdout")
		if code := parseFlags(fs, args[1:]); code >= 0 {
			return code
		}
		sk, cfg, err := loadSkinArg(*skinPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := emitGraph(offlineGraph(sk, cfg), *format, *out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown skin command: %s\n\n", args[0])
		printSkinUsage(os.Stderr)
		return 2
	}
}

// loadSkinArg loads the skin at path, falling back to the configured skin.
func loadSkinArg(path string) (*skinfile.Skin, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		path, err = cfg.SkinPath()
		if err != nil {
			return nil, nil, err
		}
	}
	sk, err := skinfile.LoadSkin(path)
	if err != nil {
		return nil, nil, err
	}
	return sk, cfg, nil
}
