// Package tui is an interactive playground that loads a skin into a
// headless docking engine and lets the user drag windows around with the
// keyboard.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/skindock/internal/config"
	"github.com/1broseidon/skindock/internal/docking"
	"github.com/1broseidon/skindock/internal/skinfile"
)

// Run loads the skin at skinPath and runs the playground until the user
// quits. Nothing is written back to the skin or the state file.
func Run(skinPath string, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	sk, err := skinfile.LoadSkin(skinPath)
	if err != nil {
		return err
	}
	area := defaultArea
	if cfg.WorkArea.IsSet() {
		area = cfg.WorkArea.Rect()
	}
	engine := docking.New(docking.Options{
		Magnet:    cfg.Magnet,
		Alpha:     uint8(cfg.Alpha),
		MoveAlpha: uint8(cfg.MoveAlpha),
		WorkArea:  docking.StaticWorkArea(area),
	})

	p := tea.NewProgram(newModel(sk, engine, area), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
