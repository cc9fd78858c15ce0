package main

import (
	"fmt"
	"os"

	"github.com/1broseidon/skindock/internal/tui"
)

func runTUI(args []string) int {
	fs := newFlagSet("tui", "tui [--skin PATH]", "Load a skin into an offline engine and drag its windows with the keyboard.")
	skinPath := fs.String("skin", "", "Skin file path (default: skin from config)")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	_, cfg, err := loadSkinArg(*skinPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	path := *skinPath
	if path == "" {
		path, _ = cfg.SkinPath()
	}
	if err := tui.Run(path, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
